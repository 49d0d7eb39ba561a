package quality

import (
	"fmt"
	"strings"
)

// severityOrder fixes the rendering order of the warning sections.
var severityOrder = []Severity{SeverityCritical, SeverityWarning, SeverityInfo}

var severityLabels = map[Severity]string{
	SeverityCritical: "CRITIQUE",
	SeverityWarning:  "AVERTISSEMENT",
	SeverityInfo:     "INFO",
}

// Format renders the report as a fixed-layout text block for operator and
// debug logging. It is not a machine contract.
func (r *Report) Format() string {
	var sb strings.Builder

	sb.WriteString("=== Rapport qualité du profil ===\n")
	if r.IsValid {
		sb.WriteString("Statut : VALIDE\n")
	} else {
		sb.WriteString("Statut : INVALIDE\n")
	}
	sb.WriteString("\nMétriques :\n")
	fmt.Fprintf(&sb, "  Pitch           : %d caractères, %d chiffres\n",
		r.Metrics.PitchLength, r.Metrics.PitchNumberCount)
	fmt.Fprintf(&sb, "  Réalisations    : %d/%d quantifiées (%.0f%%)\n",
		r.Metrics.QuantifiedBullets, r.Metrics.TotalBullets, r.Metrics.QuantifiedRatio*100)
	fmt.Fprintf(&sb, "  Clients         : %d\n", r.Metrics.ClientCount)
	fmt.Fprintf(&sb, "  Certifications  : %d\n", r.Metrics.CertificationCount)
	fmt.Fprintf(&sb, "  Inférées valides: %d/%d\n",
		r.Metrics.InferredSkillsValid, r.Metrics.InferredSkillsTotal)

	if len(r.Warnings) == 0 {
		sb.WriteString("\nAucun avertissement.\n")
		return sb.String()
	}

	for _, severity := range severityOrder {
		var lines []string
		for _, w := range r.Warnings {
			if w.Severity == severity {
				lines = append(lines, fmt.Sprintf("  [%s] %s", w.Section, w.Message))
			}
		}
		if len(lines) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n%s :\n", severityLabels[severity])
		sb.WriteString(strings.Join(lines, "\n"))
		sb.WriteString("\n")
	}
	return sb.String()
}
