package normalize

import (
	"strings"

	"github.com/camille/cv-forge/internal/textutil"
	"github.com/camille/cv-forge/internal/types"
)

// dedupeExperiences groups experiences by merge key and collapses each
// group pairwise in encounter order. The result preserves first-seen order.
func dedupeExperiences(experiences []types.Experience) []types.Experience {
	merged := make([]types.Experience, 0, len(experiences))
	index := make(map[string]int, len(experiences))

	for _, exp := range experiences {
		key := mergeKey(exp)
		if at, seen := index[key]; seen {
			merged[at] = mergeExperience(merged[at], exp)
			continue
		}
		index[key] = len(merged)
		merged = append(merged, exp)
	}
	return merged
}

// mergeExperience folds src into dst. Entreprise and poste keep the longer,
// more descriptive string; technologies and client references are
// set-unioned; realisations are unioned by normalized description; every
// other scalar takes the later fragment's value when it has one.
func mergeExperience(dst, src types.Experience) types.Experience {
	dst.Poste = longerString(dst.Poste, src.Poste)
	dst.Entreprise = longerString(dst.Entreprise, src.Entreprise)

	dst.Lieu = lastNonEmpty(dst.Lieu, src.Lieu)
	dst.DateDebut = lastNonEmpty(dst.DateDebut, src.DateDebut)
	dst.DateFin = lastNonEmpty(dst.DateFin, src.DateFin)
	dst.Description = lastNonEmpty(dst.Description, src.Description)
	if src.Actuel.Set {
		dst.Actuel = src.Actuel
	}

	dst.Technologies = unionStrings(dst.Technologies, src.Technologies)
	dst.ClientsReferences = unionStrings(dst.ClientsReferences, src.ClientsReferences)
	dst.Realisations = unionRealisations(dst.Realisations, src.Realisations)
	return dst
}

// unionRealisations merges bullet lists by normalized description. The
// first-seen object is preserved; a duplicate only fills fields the
// first-seen entry is missing. No bullet is ever dropped.
func unionRealisations(dst, src []types.Realisation) []types.Realisation {
	out := make([]types.Realisation, 0, len(dst)+len(src))
	index := make(map[string]int, len(dst)+len(src))

	add := func(r types.Realisation) {
		key := textutil.KeyPart(r.Description)
		if key == "" {
			// Descriptionless entries cannot be matched; keep them all.
			out = append(out, r)
			return
		}
		if at, seen := index[key]; seen {
			if out[at].Impact == "" {
				out[at].Impact = r.Impact
			}
			if out[at].Display == nil {
				out[at].Display = r.Display
			}
			return
		}
		index[key] = len(out)
		out = append(out, r)
	}

	for _, r := range dst {
		add(r)
	}
	for _, r := range src {
		add(r)
	}
	return out
}

// unionStrings merges two lists with set semantics, deduplicating on the
// accent-folded comparable form while keeping the first-seen display form.
func unionStrings(dst, src []string) []string {
	if len(src) == 0 {
		return dst
	}
	out := make([]string, 0, len(dst)+len(src))
	seen := make(map[string]struct{}, len(dst)+len(src))
	for _, list := range [][]string{dst, src} {
		for _, s := range list {
			s = strings.TrimSpace(s)
			key := textutil.Comparable(s)
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

func longerString(a, b string) string {
	if len(strings.TrimSpace(b)) > len(strings.TrimSpace(a)) {
		return strings.TrimSpace(b)
	}
	return strings.TrimSpace(a)
}

func lastNonEmpty(prev, next string) string {
	if strings.TrimSpace(next) != "" {
		return strings.TrimSpace(next)
	}
	return prev
}

// unionFormations deduplicates education rows on their full identity tuple.
func unionFormations(dst, src []types.Formation) []types.Formation {
	out := make([]types.Formation, 0, len(dst)+len(src))
	seen := make(map[string]struct{})
	for _, list := range [][]types.Formation{dst, src} {
		for _, f := range list {
			key := textutil.Comparable(f.Diplome) + "|" + textutil.Comparable(f.Etablissement) + "|" + textutil.Comparable(f.Annee)
			if key == "||" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, f)
		}
	}
	return out
}

// unionCertifications deduplicates certifications by name.
func unionCertifications(dst, src []types.Certification) []types.Certification {
	out := make([]types.Certification, 0, len(dst)+len(src))
	seen := make(map[string]struct{})
	for _, list := range [][]types.Certification{dst, src} {
		for _, c := range list {
			key := textutil.Comparable(c.Nom)
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

// unionLangues deduplicates exact (language, level) pairs. Consolidating
// different levels of the same language is the renderer's job, not the
// normalizer's: the knowledge base keeps every distinct observation.
func unionLangues(dst, src []types.Langue) []types.Langue {
	out := make([]types.Langue, 0, len(dst)+len(src))
	seen := make(map[string]struct{})
	for _, list := range [][]types.Langue{dst, src} {
		for _, l := range list {
			key := textutil.Comparable(l.Nom) + "|" + textutil.Comparable(l.Niveau)
			if textutil.Comparable(l.Nom) == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, l)
		}
	}
	return out
}

// unionProjets deduplicates projects by name, unioning technology lists.
func unionProjets(dst, src []types.Projet) []types.Projet {
	out := make([]types.Projet, 0, len(dst)+len(src))
	index := make(map[string]int)
	for _, list := range [][]types.Projet{dst, src} {
		for _, p := range list {
			key := textutil.Comparable(p.Nom)
			if key == "" {
				continue
			}
			if at, seen := index[key]; seen {
				out[at].Description = lastNonEmpty(out[at].Description, p.Description)
				out[at].Technologies = unionStrings(out[at].Technologies, p.Technologies)
				continue
			}
			index[key] = len(out)
			out = append(out, p)
		}
	}
	return out
}

// unionClientRefs deduplicates referenced clients by name, keeping the
// first-seen sector and description and filling gaps from duplicates.
func unionClientRefs(dst, src []types.ClientRef) []types.ClientRef {
	out := make([]types.ClientRef, 0, len(dst)+len(src))
	index := make(map[string]int)
	for _, list := range [][]types.ClientRef{dst, src} {
		for _, c := range list {
			key := textutil.Comparable(c.Nom)
			if key == "" {
				continue
			}
			if at, seen := index[key]; seen {
				if out[at].Secteur == "" {
					out[at].Secteur = c.Secteur
				}
				if out[at].Description == "" {
					out[at].Description = c.Description
				}
				continue
			}
			index[key] = len(out)
			out = append(out, c)
		}
	}
	return out
}

// unionSkillGroups merges two skill groups bucket by bucket.
func unionSkillGroups(dst, src types.SkillGroup) types.SkillGroup {
	return types.SkillGroup{
		Techniques: unionSkillItems(dst.Techniques, src.Techniques),
		SoftSkills: unionSkillItems(dst.SoftSkills, src.SoftSkills),
	}
}

// unionSkillItems deduplicates skills by normalized name, filling level and
// confidence gaps from later duplicates.
func unionSkillItems(dst, src []types.SkillItem) []types.SkillItem {
	out := make([]types.SkillItem, 0, len(dst)+len(src))
	index := make(map[string]int)
	for _, list := range [][]types.SkillItem{dst, src} {
		for _, s := range list {
			key := textutil.Comparable(s.Nom)
			if key == "" {
				continue
			}
			if at, seen := index[key]; seen {
				if out[at].Niveau == "" {
					out[at].Niveau = s.Niveau
				}
				if out[at].Confidence == nil {
					out[at].Confidence = s.Confidence
				}
				continue
			}
			index[key] = len(out)
			out = append(out, s)
		}
	}
	return out
}

// unionCategories merges skill categories by category name.
func unionCategories(dst, src []types.SkillCategory) []types.SkillCategory {
	out := make([]types.SkillCategory, 0, len(dst)+len(src))
	index := make(map[string]int)
	for _, list := range [][]types.SkillCategory{dst, src} {
		for _, c := range list {
			key := textutil.Comparable(c.Nom)
			if key == "" && len(c.Items) == 0 {
				continue
			}
			if at, seen := index[key]; seen {
				out[at].Items = unionSkillItems(out[at].Items, c.Items)
				if out[at].Display == nil {
					out[at].Display = c.Display
				}
				continue
			}
			index[key] = len(out)
			out = append(out, c)
		}
	}
	return out
}
