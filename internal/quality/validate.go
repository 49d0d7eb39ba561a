// Package quality scores a canonical profile against fixed content
// heuristics and reports actionable warnings without ever blocking
// normalization.
package quality

import (
	"fmt"
	"regexp"

	"github.com/camille/cv-forge/internal/types"
)

// Severity classifies a warning. Critical findings flip IsValid to false;
// warnings and infos are advisory.
type Severity string

// Severity levels, from blocking to informational.
const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Warning is one actionable finding.
type Warning struct {
	Severity Severity `json:"severity"`
	Section  string   `json:"section"`
	Message  string   `json:"message"`
}

// Metrics aggregates the measured quality signals.
type Metrics struct {
	PitchLength         int     `json:"pitch_length"`
	PitchNumberCount    int     `json:"pitch_number_count"`
	QuantifiedBullets   int     `json:"quantified_bullets"`
	TotalBullets        int     `json:"total_bullets"`
	QuantifiedRatio     float64 `json:"quantified_ratio"`
	ClientCount         int     `json:"client_count"`
	CertificationCount  int     `json:"certification_count"`
	InferredSkillsValid int     `json:"inferred_skills_valid"`
	InferredSkillsTotal int     `json:"inferred_skills_total"`
}

// Report is the structured validation result.
type Report struct {
	IsValid  bool      `json:"is_valid"`
	Warnings []Warning `json:"warnings"`
	Metrics  Metrics   `json:"metrics"`
}

// Fixed quality targets. Thresholds come from the source heuristics and are
// kept as named constants rather than re-derived.
const (
	pitchTargetLength   = 200
	pitchCriticalLength = 100
	pitchMinNumbers     = 3
	quantifiedRatioMin  = 0.60

	inferredConfidenceMin   = 60
	inferredReasoningMinLen = 50
)

var reNumber = regexp.MustCompile(`\d+`)

// quantificationPatterns detect measurable impact in a bullet: percentages,
// currency amounts, "X+" counts, team-size phrases, and before→after arrows.
var quantificationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+\s*%`),
	regexp.MustCompile(`\d+\s*[k€$MK]`),
	regexp.MustCompile(`\d+\s*\+`),
	regexp.MustCompile(`(?i)équipe\s+de\s+\d+`),
	regexp.MustCompile(`(?i)\d+\s+(personnes|collaborateurs|développeurs|consultants)`),
	regexp.MustCompile(`(→|->)`),
}

// isQuantified reports whether a bullet carries at least one measurable
// impact signal.
func isQuantified(text string) bool {
	for _, p := range quantificationPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// Validate scores profile against the fixed heuristics. It never fails and
// never mutates its input; a nil profile yields an empty valid report.
func Validate(profile *types.CanonicalProfile) *Report {
	report := &Report{IsValid: true, Warnings: []Warning{}}
	if profile == nil {
		return report
	}

	checkPitch(profile, report)
	checkBullets(profile, report)
	checkCounts(profile, report)
	checkInferredSkills(profile, report)

	for _, w := range report.Warnings {
		if w.Severity == SeverityCritical {
			report.IsValid = false
			break
		}
	}
	return report
}

func (r *Report) warn(severity Severity, section, format string, args ...any) {
	r.Warnings = append(r.Warnings, Warning{
		Severity: severity,
		Section:  section,
		Message:  fmt.Sprintf(format, args...),
	})
}

func checkPitch(profile *types.CanonicalProfile, report *Report) {
	pitch := profile.Profil.ElevatorPitch
	report.Metrics.PitchLength = len([]rune(pitch))
	report.Metrics.PitchNumberCount = len(reNumber.FindAllString(pitch, -1))

	switch {
	case report.Metrics.PitchLength < pitchCriticalLength:
		report.warn(SeverityCritical, "elevator_pitch",
			"pitch fait %d caractères, minimum critique %d", report.Metrics.PitchLength, pitchCriticalLength)
	case report.Metrics.PitchLength < pitchTargetLength:
		report.warn(SeverityWarning, "elevator_pitch",
			"pitch fait %d caractères, cible %d", report.Metrics.PitchLength, pitchTargetLength)
	}
	if report.Metrics.PitchNumberCount < pitchMinNumbers {
		report.warn(SeverityWarning, "elevator_pitch",
			"pitch contient %d chiffres, %d recommandés", report.Metrics.PitchNumberCount, pitchMinNumbers)
	}
}

func checkBullets(profile *types.CanonicalProfile, report *Report) {
	for _, e := range profile.Experiences {
		for _, r := range e.Realisations {
			text := r.Description
			if r.Impact != "" {
				text += " " + r.Impact
			}
			if text == "" {
				continue
			}
			report.Metrics.TotalBullets++
			if isQuantified(text) {
				report.Metrics.QuantifiedBullets++
			}
		}
	}
	if report.Metrics.TotalBullets == 0 {
		report.warn(SeverityWarning, "experiences", "aucune réalisation mesurable trouvée")
		return
	}
	report.Metrics.QuantifiedRatio = float64(report.Metrics.QuantifiedBullets) / float64(report.Metrics.TotalBullets)
	if report.Metrics.QuantifiedRatio < quantifiedRatioMin {
		report.warn(SeverityWarning, "experiences",
			"%.0f%% des réalisations sont quantifiées, cible %.0f%%",
			report.Metrics.QuantifiedRatio*100, quantifiedRatioMin*100)
	}
}

func checkCounts(profile *types.CanonicalProfile, report *Report) {
	clientSet := make(map[string]struct{})
	if profile.References != nil {
		for _, c := range profile.References.Clients {
			if c.Nom != "" {
				clientSet[c.Nom] = struct{}{}
			}
		}
	}
	for _, e := range profile.Experiences {
		for _, c := range e.ClientsReferences {
			if c != "" {
				clientSet[c] = struct{}{}
			}
		}
	}
	report.Metrics.ClientCount = len(clientSet)
	report.Metrics.CertificationCount = len(profile.Certifications)

	if report.Metrics.ClientCount == 0 {
		report.warn(SeverityInfo, "references", "aucun client référencé")
	}
	if report.Metrics.CertificationCount == 0 {
		report.warn(SeverityInfo, "certifications", "aucune certification")
	}
}

// checkInferredSkills flags incomplete inferred items: each needs a
// confidence of at least 60, a reasoning of at least 50 characters, and one
// source citation. Failing items are flagged, never silently dropped.
func checkInferredSkills(profile *types.CanonicalProfile, report *Report) {
	if profile.ContexteEnrichi == nil {
		return
	}
	items := append([]types.InferredItem{},
		profile.ContexteEnrichi.ResponsabilitesImplicites...)
	items = append(items, profile.ContexteEnrichi.CompetencesTacites...)

	for _, item := range items {
		report.Metrics.InferredSkillsTotal++
		var problems []string
		if item.Confidence == nil || *item.Confidence < inferredConfidenceMin {
			problems = append(problems, fmt.Sprintf("confiance insuffisante (minimum %d)", inferredConfidenceMin))
		}
		if len([]rune(item.Justification)) < inferredReasoningMinLen {
			problems = append(problems, fmt.Sprintf("justification trop courte (minimum %d caractères)", inferredReasoningMinLen))
		}
		if len(item.Sources) == 0 {
			problems = append(problems, "aucune source citée")
		}
		if len(problems) == 0 {
			report.Metrics.InferredSkillsValid++
			continue
		}
		for _, p := range problems {
			report.warn(SeverityWarning, "contexte_enrichi", "%s : %s", item.Nom, p)
		}
	}
}
