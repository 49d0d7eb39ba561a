// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/camille/cv-forge/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfileSummary outputs a human-readable summary of a canonical profile
// after folding, with per-section counts.
func (p *Printer) PrintProfileSummary(profile *types.CanonicalProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	name := strings.TrimSpace(profile.Profil.Prenom + " " + profile.Profil.Nom)
	if name != "" {
		sb.WriteString(fmt.Sprintf("Candidat:  %s\n", name))
	}
	if profile.Profil.Titre != "" {
		sb.WriteString(fmt.Sprintf("Titre:     %s\n", profile.Profil.Titre))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Expériences:    %d\n", len(profile.Experiences)))
	bullets := 0
	for _, exp := range profile.Experiences {
		bullets += len(exp.Realisations)
	}
	sb.WriteString(fmt.Sprintf("Réalisations:   %d\n", bullets))
	sb.WriteString(fmt.Sprintf("Formations:     %d\n", len(profile.Formations)))
	sb.WriteString(fmt.Sprintf("Certifications: %d\n", len(profile.Certifications)))
	sb.WriteString(fmt.Sprintf("Langues:        %d\n", len(profile.Langues)))
	sb.WriteString(fmt.Sprintf("Projets:        %d", len(profile.Projets)))

	if len(profile.Experiences) > 0 {
		sb.WriteString("\n\nDernières expériences:\n")
		count := min(len(profile.Experiences), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := profile.Experiences[i]
			sb.WriteString(fmt.Sprintf("  • %s", exp.Poste))
			if exp.Entreprise != "" {
				sb.WriteString(fmt.Sprintf(" @ %s", exp.Entreprise))
			}
			sb.WriteString("\n")
		}
		if len(profile.Experiences) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... et %d de plus\n", len(profile.Experiences)-maxItemsToShow))
		}
	}

	p.printBox("PROFIL CANONIQUE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRenderSummary outputs kept-versus-available counts after rendering,
// so budget truncation is visible at a glance.
func (p *Printer) PrintRenderSummary(cv *types.CVData) {
	if cv == nil {
		return
	}

	var sb strings.Builder

	keptBullets := 0
	for _, exp := range cv.Experiences {
		keptBullets += len(exp.Realisations)
	}

	sb.WriteString(fmt.Sprintf("Expériences:      %d / %d\n", len(cv.Experiences), cv.Totaux.Experiences))
	sb.WriteString(fmt.Sprintf("Réalisations:     %d / %d\n", keptBullets, cv.Totaux.Realisations))
	sb.WriteString(fmt.Sprintf("Comp. techniques: %d / %d\n", len(cv.CompetencesTechniques), cv.Totaux.CompetencesTechniques))
	sb.WriteString(fmt.Sprintf("Soft skills:      %d / %d\n", len(cv.SoftSkills), cv.Totaux.SoftSkills))
	sb.WriteString(fmt.Sprintf("Formations:       %d / %d\n", len(cv.Formations), cv.Totaux.Formations))
	sb.WriteString(fmt.Sprintf("Langues:          %d / %d\n", len(cv.Langues), cv.Totaux.Langues))
	sb.WriteString(fmt.Sprintf("Certifications:   %d / %d\n", len(cv.Certifications), cv.Totaux.Certifications))
	sb.WriteString(fmt.Sprintf("Projets:          %d / %d", len(cv.Projets), cv.Totaux.Projets))

	if cv.ClientsReferences != nil {
		sb.WriteString(fmt.Sprintf("\nClients:          %d groupes", len(cv.ClientsReferences.Groupes)))
	}

	p.printBox("RENDU CV (conservé / disponible)", sb.String())
}

// PrintJobContext outputs the extracted job targeting context.
func (p *Printer) PrintJobContext(job *types.JobContext) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Poste ciblé: %s\n", job.RoleTitle))

	if len(job.Keywords) > 0 {
		kw := strings.Join(job.Keywords, ", ")
		if len(kw) > 45 {
			kw = kw[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("Mots-clés:   %s\n", kw))
	}

	if len(job.ExcludeTitleKeywords) > 0 {
		sb.WriteString("Exclusions de titre:\n")
		count := min(len(job.ExcludeTitleKeywords), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", job.ExcludeTitleKeywords[i]))
		}
		if len(job.ExcludeTitleKeywords) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... et %d de plus\n", len(job.ExcludeTitleKeywords)-maxItemsToShow))
		}
	}

	p.printBox("CONTEXTE POSTE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport outputs a pre-formatted report verbatim.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintReport(report string) {
	fmt.Fprintln(p.out, report)
}
