package render

import (
	"sort"
	"strings"

	"github.com/camille/cv-forge/internal/textutil"
	"github.com/camille/cv-forge/internal/types"
)

// softSkillKeywords route a category or skill_map name into the soft-skill
// bucket. Matched against the accent-folded comparable form.
var softSkillKeywords = []string{
	"soft", "humaine", "interpersonnel", "comportemental", "savoir etre",
	"communication", "leadership", "management", "equipe", "relationnel",
	"adaptabilite", "autonomie", "rigueur", "organisation", "ecoute",
	"empathie", "negociation", "pedagogie", "esprit",
}

func isSoftSkillName(name string) bool {
	c := textutil.Comparable(name)
	for _, kw := range softSkillKeywords {
		if strings.Contains(c, kw) {
			return true
		}
	}
	return false
}

// skillAccumulator deduplicates skills with set semantics while keeping the
// first-seen display form.
type skillAccumulator struct {
	names []string
	seen  map[string]struct{}
}

func newSkillAccumulator() *skillAccumulator {
	return &skillAccumulator{seen: make(map[string]struct{})}
}

func (a *skillAccumulator) add(name string) {
	name = strings.TrimSpace(name)
	key := textutil.Comparable(name)
	if key == "" || textutil.IsPlaceholder(name) {
		return
	}
	if _, dup := a.seen[key]; dup {
		return
	}
	a.seen[key] = struct{}{}
	a.names = append(a.names, name)
}

// consolidateSkills merges skills from every shape the knowledge base may
// carry: explicit groups (flat arrays are hoisted there at parse time),
// inferred groups gated on confidence, named categories routed by keyword,
// and the flattened skill_map split by the soft-skill keyword list.
func consolidateSkills(c types.Competences, confidenceMin float64) (technical, soft []string) {
	tech := newSkillAccumulator()
	softAcc := newSkillAccumulator()

	for _, s := range c.Explicit.Techniques {
		tech.add(s.Nom)
	}
	for _, s := range c.Explicit.SoftSkills {
		softAcc.add(s.Nom)
	}

	admit := func(s types.SkillItem) bool {
		return s.Confidence == nil || *s.Confidence >= confidenceMin
	}
	for _, s := range c.Inferred.Techniques {
		if admit(s) {
			tech.add(s.Nom)
		}
	}
	for _, s := range c.Inferred.SoftSkills {
		if admit(s) {
			softAcc.add(s.Nom)
		}
	}

	for _, cat := range c.Categories {
		if cat.Display != nil && !*cat.Display {
			continue
		}
		bucket := tech
		if isSoftSkillName(cat.Nom) {
			bucket = softAcc
		}
		for _, item := range cat.Items {
			bucket.add(item.Nom)
		}
	}

	// skill_map keys are skill names; values vary by extraction run and
	// carry nothing the renderer needs. Sorted for determinism.
	mapKeys := make([]string, 0, len(c.SkillMap))
	for name := range c.SkillMap {
		mapKeys = append(mapKeys, name)
	}
	sort.Strings(mapKeys)
	for _, name := range mapKeys {
		if isSoftSkillName(name) {
			softAcc.add(name)
		} else {
			tech.add(name)
		}
	}

	return tech.names, softAcc.names
}
