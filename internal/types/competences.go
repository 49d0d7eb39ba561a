//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"strings"
)

// Competences unifies the skill shapes observed across extraction runs:
// flat arrays at the competences root, explicit/inferred nested groups,
// per-category item lists, and a flattened skill_map keyed by skill name.
// UnmarshalJSON sniffs the shape and hoists flat arrays into Explicit so
// downstream logic only ever sees the nested canonical form.
type Competences struct {
	Explicit   SkillGroup                 `json:"explicit,omitempty"`
	Inferred   SkillGroup                 `json:"inferred,omitempty"`
	Categories []SkillCategory            `json:"categories,omitempty"`
	SkillMap   map[string]json.RawMessage `json:"skill_map,omitempty"`
}

// SkillGroup splits skills into technical and soft buckets.
type SkillGroup struct {
	Techniques []SkillItem `json:"techniques,omitempty"`
	SoftSkills []SkillItem `json:"soft_skills,omitempty"`
}

// SkillCategory is one named bucket of skills with an optional display flag
// set by an upstream compression step.
type SkillCategory struct {
	Nom     string      `json:"nom,omitempty"`
	Items   []SkillItem `json:"items,omitempty"`
	Display *bool       `json:"display,omitempty"`
}

// SkillItem is one skill, bare string or object. Inferred items may carry a
// confidence score; nil means unset, which the renderer treats as passing.
type SkillItem struct {
	Nom        string   `json:"nom,omitempty"`
	Niveau     string   `json:"niveau,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// UnmarshalJSON upgrades the bare-string dialect to the object form.
func (s *SkillItem) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		s.Nom = strings.TrimSpace(name)
		return nil
	}
	type alias SkillItem
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return nil
	}
	*s = SkillItem(a)
	return nil
}

// competencesShadow mirrors Competences plus the flat legacy keys.
type competencesShadow struct {
	Explicit   SkillGroup                 `json:"explicit"`
	Inferred   SkillGroup                 `json:"inferred"`
	Categories []SkillCategory            `json:"categories"`
	SkillMap   map[string]json.RawMessage `json:"skill_map"`

	// Flat legacy dialect: arrays directly under competences.
	Techniques []SkillItem `json:"techniques"`
	SoftSkills []SkillItem `json:"soft_skills"`
}

// UnmarshalJSON detects the flat legacy shape and hoists it under Explicit.
// Malformed payloads decode to an empty value, never an error.
func (c *Competences) UnmarshalJSON(data []byte) error {
	var shadow competencesShadow
	if err := json.Unmarshal(data, &shadow); err != nil {
		// Shape variant where competences itself is a flat array.
		var items []SkillItem
		if err := json.Unmarshal(data, &items); err == nil {
			c.Explicit.Techniques = items
			return nil
		}
		*c = Competences{}
		return nil
	}

	c.Explicit = shadow.Explicit
	c.Inferred = shadow.Inferred
	c.Categories = shadow.Categories
	c.SkillMap = shadow.SkillMap

	if len(shadow.Techniques) > 0 {
		c.Explicit.Techniques = append(c.Explicit.Techniques, shadow.Techniques...)
	}
	if len(shadow.SoftSkills) > 0 {
		c.Explicit.SoftSkills = append(c.Explicit.SoftSkills, shadow.SoftSkills...)
	}
	return nil
}

// IsZero reports whether no skills are present in any shape.
func (c Competences) IsZero() bool {
	return len(c.Explicit.Techniques) == 0 && len(c.Explicit.SoftSkills) == 0 &&
		len(c.Inferred.Techniques) == 0 && len(c.Inferred.SoftSkills) == 0 &&
		len(c.Categories) == 0 && len(c.SkillMap) == 0
}
