// Package render projects a canonical profile into a bounded,
// display-ready document: multi-dialect fields resolved, text repaired,
// languages consolidated, and every list truncated to its budget while
// keeping pre-truncation counts.
package render

import (
	"github.com/go-playground/validator/v10"

	"github.com/camille/cv-forge/internal/types"
)

// Default section budgets. A zero Options field means "use the default";
// Unlimited disables the cap. Elevator pitch and bullet text are never
// truncated, only list lengths are.
const (
	DefaultMaxExperiences          = 10
	DefaultMaxBulletsPerExperience = 20
	DefaultMaxTechnicalSkills      = 28
	DefaultMaxSoftSkills           = 14
	DefaultMaxFormations           = 5
	DefaultMaxLanguages            = 6
	DefaultMaxCertifications       = 8
	DefaultMaxProjects             = 6
	DefaultMaxClientsPerExperience = 6
	DefaultMaxClients              = 8
	DefaultMaxClientGroups         = 4

	// Unlimited disables a cap. Used by the dry-run mode that reports how
	// many items exist so the UI can bound its limit sliders.
	Unlimited = int(^uint(0) >> 1)
)

// Options is the caller-supplied budget configuration.
type Options struct {
	MinRelevanceScore       float64 `validate:"gte=0,lte=100"`
	MaxExperiences          int     `validate:"gte=0"`
	MaxBulletsPerExperience int     `validate:"gte=0"`
	MaxTechnicalSkills      int     `validate:"gte=0"`
	MaxSoftSkills           int     `validate:"gte=0"`
	MaxFormations           int     `validate:"gte=0"`
	MaxLanguages            int     `validate:"gte=0"`
	MaxCertifications       int     `validate:"gte=0"`
	MaxProjects             int     `validate:"gte=0"`
	MaxClientsPerExperience int     `validate:"gte=0"`
	MaxClients              int     `validate:"gte=0"`
	MaxClientGroups         int     `validate:"gte=0"`

	// Job, when set, activates the relevance filter on experience titles.
	Job *types.JobContext

	// InferredConfidenceMin admits inferred skills at or above this
	// confidence (unset confidence always passes). The 70 threshold comes
	// from the source heuristics; it is configurable, not re-derived.
	InferredConfidenceMin float64 `validate:"gte=0,lte=100"`

	// EssentialFieldsMin is how many of (poste, entreprise, start date) an
	// experience needs to be rendered. Same provenance as above.
	EssentialFieldsMin int `validate:"gte=0,lte=3"`
}

// DefaultOptions returns the documented default budgets.
func DefaultOptions() Options {
	return Options{
		MaxExperiences:          DefaultMaxExperiences,
		MaxBulletsPerExperience: DefaultMaxBulletsPerExperience,
		MaxTechnicalSkills:      DefaultMaxTechnicalSkills,
		MaxSoftSkills:           DefaultMaxSoftSkills,
		MaxFormations:           DefaultMaxFormations,
		MaxLanguages:            DefaultMaxLanguages,
		MaxCertifications:       DefaultMaxCertifications,
		MaxProjects:             DefaultMaxProjects,
		MaxClientsPerExperience: DefaultMaxClientsPerExperience,
		MaxClients:              DefaultMaxClients,
		MaxClientGroups:         DefaultMaxClientGroups,
		InferredConfidenceMin:   70,
		EssentialFieldsMin:      2,
	}
}

// UnlimitedOptions lifts every cap. Callers use this dry-run mode to learn
// pre-truncation counts; Convert stays a pure function so repeated calls
// with different options are consistent.
func UnlimitedOptions() Options {
	opts := DefaultOptions()
	opts.MaxExperiences = Unlimited
	opts.MaxBulletsPerExperience = Unlimited
	opts.MaxTechnicalSkills = Unlimited
	opts.MaxSoftSkills = Unlimited
	opts.MaxFormations = Unlimited
	opts.MaxLanguages = Unlimited
	opts.MaxCertifications = Unlimited
	opts.MaxProjects = Unlimited
	opts.MaxClientsPerExperience = Unlimited
	opts.MaxClients = Unlimited
	opts.MaxClientGroups = Unlimited
	return opts
}

// withDefaults fills zero caps with their defaults and clamps negatives.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	fill := func(v, d int) int {
		if v <= 0 {
			return d
		}
		return v
	}
	o.MaxExperiences = fill(o.MaxExperiences, def.MaxExperiences)
	o.MaxBulletsPerExperience = fill(o.MaxBulletsPerExperience, def.MaxBulletsPerExperience)
	o.MaxTechnicalSkills = fill(o.MaxTechnicalSkills, def.MaxTechnicalSkills)
	o.MaxSoftSkills = fill(o.MaxSoftSkills, def.MaxSoftSkills)
	o.MaxFormations = fill(o.MaxFormations, def.MaxFormations)
	o.MaxLanguages = fill(o.MaxLanguages, def.MaxLanguages)
	o.MaxCertifications = fill(o.MaxCertifications, def.MaxCertifications)
	o.MaxProjects = fill(o.MaxProjects, def.MaxProjects)
	o.MaxClientsPerExperience = fill(o.MaxClientsPerExperience, def.MaxClientsPerExperience)
	o.MaxClients = fill(o.MaxClients, def.MaxClients)
	o.MaxClientGroups = fill(o.MaxClientGroups, def.MaxClientGroups)
	if o.InferredConfidenceMin <= 0 {
		o.InferredConfidenceMin = def.InferredConfidenceMin
	}
	if o.EssentialFieldsMin <= 0 {
		o.EssentialFieldsMin = def.EssentialFieldsMin
	}
	return o
}

var validate = validator.New()

// Validate checks option bounds. Convert itself never fails on bad options
// (it clamps); this is for surfacing caller mistakes at the API edge.
func (o Options) Validate() error {
	return validate.Struct(o)
}

// capList truncates a list to max entries. Truncation only shortens the
// list, never the items.
func capList[T any](list []T, max int) []T {
	if max >= 0 && len(list) > max {
		return list[:max]
	}
	return list
}
