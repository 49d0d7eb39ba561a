package render

import (
	"strings"

	"github.com/camille/cv-forge/internal/textutil"
	"github.com/camille/cv-forge/internal/types"
)

// presentMarkers are end-date spellings that mean "still employed".
var presentMarkers = map[string]struct{}{
	"present":    {},
	"now":        {},
	"aujourdhui": {},
	"aujourd":    {},
	"en cours":   {},
}

func isPresentMarker(dateFin string) bool {
	c := textutil.Comparable(dateFin)
	if c == "" {
		return false
	}
	if _, ok := presentMarkers[c]; ok {
		return true
	}
	// "aujourd'hui" folds to "aujourd hui".
	return strings.HasPrefix(c, "aujourd")
}

// deriveActuel resolves current-employment status. The explicit flag may
// arrive as the string "false" and must coerce, never truthy-check. An
// explicit real end date always wins over a "present" marker or flag.
func deriveActuel(e types.Experience) (actuel bool, dateFin string) {
	fin := strings.TrimSpace(e.DateFin)
	if isPresentMarker(fin) {
		return true, ""
	}
	if fin != "" && !textutil.IsPlaceholder(fin) {
		return false, fin
	}
	return e.Actuel.True(), ""
}

// essentialFieldCount counts the non-empty essential identity fields of an
// experience: poste, entreprise, start date.
func essentialFieldCount(e types.Experience) int {
	count := 0
	for _, field := range []string{e.Poste, e.Entreprise, e.DateDebut} {
		if !textutil.IsPlaceholder(field) {
			count++
		}
	}
	return count
}

// excludedByJobContext reports whether the experience's role title matches
// an exclusion keyword of the targeted role family (e.g. a "développeur"
// side project on a project-management CV).
func excludedByJobContext(e types.Experience, job *types.JobContext) bool {
	if job == nil || len(job.ExcludeTitleKeywords) == 0 {
		return false
	}
	title := textutil.Comparable(e.Poste)
	for _, kw := range job.ExcludeTitleKeywords {
		k := textutil.Comparable(kw)
		if k != "" && strings.Contains(title, k) {
			return true
		}
	}
	return false
}

// bulletText converts one achievement into its display string: sanitized
// description, joined with a sanitized impact by " - " when the impact is
// present and distinct.
func bulletText(r types.Realisation) string {
	desc := RepairText(r.Description)
	impact := RepairText(r.Impact)
	if desc == "" {
		return impact
	}
	if impact == "" || textutil.Comparable(impact) == textutil.Comparable(desc) {
		return desc
	}
	return desc + " - " + impact
}

// projectExperiences filters, sanitizes, and bounds the experience section.
// It returns the rendered entries plus pre-truncation experience and bullet
// counts.
func projectExperiences(experiences []types.Experience, opts Options) (entries []types.ExperienceCV, totalExps, totalBullets int) {
	kept := make([]types.ExperienceCV, 0, len(experiences))

	for _, e := range experiences {
		if excludedByJobContext(e, opts.Job) {
			continue
		}
		// An entry missing most of its identity is worse than omitting it.
		if essentialFieldCount(e) < opts.EssentialFieldsMin {
			continue
		}

		actuel, dateFin := deriveActuel(e)

		bullets := make([]string, 0, len(e.Realisations))
		for _, r := range e.Realisations {
			if r.Display != nil && !*r.Display {
				continue
			}
			if text := bulletText(r); text != "" {
				bullets = append(bullets, text)
			}
		}
		totalBullets += len(bullets)

		kept = append(kept, types.ExperienceCV{
			ID:           e.ID,
			Poste:        RepairText(e.Poste),
			Entreprise:   RepairText(e.Entreprise),
			Lieu:         RepairText(e.Lieu),
			DateDebut:    strings.TrimSpace(e.DateDebut),
			DateFin:      dateFin,
			Actuel:       actuel,
			Realisations: capList(bullets, opts.MaxBulletsPerExperience),
			Technologies: e.Technologies,
			Clients:      capList(cleanClientNames(e.ClientsReferences), opts.MaxClientsPerExperience),
		})
	}

	totalExps = len(kept)
	return capList(kept, opts.MaxExperiences), totalExps, totalBullets
}

// cleanClientNames drops placeholder entries from a client list.
func cleanClientNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !textutil.IsPlaceholder(n) {
			out = append(out, strings.TrimSpace(n))
		}
	}
	return out
}
