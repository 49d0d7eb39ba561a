package normalize

import (
	"sort"
	"strconv"
	"strings"

	"github.com/camille/cv-forge/internal/textutil"
	"github.com/camille/cv-forge/internal/types"
)

// endOrPresent returns the end-date component of an identity key. An
// experience without an explicit end is keyed on "present" so that a later
// extraction adding the marker does not change the ID.
func endOrPresent(e types.Experience) string {
	if strings.TrimSpace(e.DateFin) != "" {
		return e.DateFin
	}
	return "present"
}

// experienceKey builds the normalized identity tuple
// poste|entreprise|start|end-or-present. Each part is trimmed, lowercased,
// whitespace-collapsed, and stripped of punctuation noise while keeping
// accented letters (see textutil.KeyPart).
func experienceKey(e types.Experience) string {
	parts := []string{
		textutil.KeyPart(e.Poste),
		textutil.KeyPart(e.Entreprise),
		textutil.KeyPart(e.DateDebut),
		textutil.KeyPart(endOrPresent(e)),
	}
	return strings.Join(parts, "|")
}

// ExperienceID derives the stable identity of an experience. Identical
// logical input always yields an identical ID.
func ExperienceID(e types.Experience) string {
	return "exp_" + hashString(experienceKey(e))
}

// RealisationID derives the stable identity of an achievement bullet,
// scoped by its parent experience and position.
func RealisationID(expID string, r types.Realisation, position int) string {
	key := strings.Join([]string{
		expID,
		textutil.KeyPart(r.Description),
		textutil.KeyPart(r.Impact),
		strconv.Itoa(position),
	}, "|")
	return "real_" + hashString(key)
}

// hasDateInfo reports whether the experience carries any date signal.
func hasDateInfo(e types.Experience) bool {
	return strings.TrimSpace(e.DateDebut) != "" ||
		strings.TrimSpace(e.DateFin) != "" ||
		e.Actuel.Set
}

// mergeKey determines which experiences denote the same real-world job.
// Dated experiences use the identity tuple. Undated experiences fall back
// to poste|entreprise|content-hash-of-sorted-bullets, which avoids
// collapsing two genuinely different undated roles at the same company
// while still catching true duplicates.
func mergeKey(e types.Experience) string {
	if hasDateInfo(e) {
		return experienceKey(e)
	}
	descs := make([]string, 0, len(e.Realisations))
	for _, r := range e.Realisations {
		if d := textutil.KeyPart(r.Description); d != "" {
			descs = append(descs, d)
		}
	}
	sort.Strings(descs)
	return textutil.KeyPart(e.Poste) + "|" + textutil.KeyPart(e.Entreprise) + "|" +
		hashString(strings.Join(descs, "|"))
}

// AssignIDs stamps stable IDs on every experience and realisation,
// overwriting whatever the fragment carried so IDs always reflect current
// content.
func AssignIDs(profile *types.CanonicalProfile) {
	for i := range profile.Experiences {
		exp := &profile.Experiences[i]
		exp.ID = ExperienceID(*exp)
		for j := range exp.Realisations {
			r := &exp.Realisations[j]
			if r.Position == 0 {
				r.Position = j
			}
			r.ID = RealisationID(exp.ID, *r, r.Position)
		}
	}
}
