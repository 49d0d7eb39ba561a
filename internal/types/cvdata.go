//nolint:revive // types is a standard Go package name pattern
package types

// CVData is the bounded, display-ready document handed to a template
// renderer. It is built fresh on every render request and never mutated in
// place; each option change produces a new document.
type CVData struct {
	Identite              IdentiteCV     `json:"identite"`
	ElevatorPitch         string         `json:"elevator_pitch,omitempty"`
	Experiences           []ExperienceCV `json:"experiences"`
	CompetencesTechniques []string       `json:"competences_techniques,omitempty"`
	SoftSkills            []string       `json:"soft_skills,omitempty"`
	Formations            []FormationCV  `json:"formations,omitempty"`
	Langues               []LangueCV     `json:"langues,omitempty"`
	Certifications        []string       `json:"certifications,omitempty"`
	Projets               []ProjetCV     `json:"projets,omitempty"`
	ClientsReferences     *ClientsCV     `json:"clients_references,omitempty"`

	// Totaux records section sizes before truncation so the UI can show
	// "N of M" feedback and bound its limit sliders.
	Totaux SectionTotals `json:"totaux"`
}

// IdentiteCV is the sanitized identity block.
type IdentiteCV struct {
	Nom          string `json:"nom,omitempty"`
	Prenom       string `json:"prenom,omitempty"`
	Titre        string `json:"titre,omitempty"`
	Email        string `json:"email,omitempty"`
	Telephone    string `json:"telephone,omitempty"`
	Localisation string `json:"localisation,omitempty"`
	LinkedIn     string `json:"linkedin,omitempty"`
	GitHub       string `json:"github,omitempty"`
	Portfolio    string `json:"portfolio,omitempty"`
}

// ExperienceCV is one bounded experience entry with pre-joined bullet text.
type ExperienceCV struct {
	ID           string   `json:"id,omitempty"`
	Poste        string   `json:"poste"`
	Entreprise   string   `json:"entreprise"`
	Lieu         string   `json:"lieu,omitempty"`
	DateDebut    string   `json:"date_debut,omitempty"`
	DateFin      string   `json:"date_fin,omitempty"`
	Actuel       bool     `json:"actuel"`
	Realisations []string `json:"realisations,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Clients      []string `json:"clients,omitempty"`
}

// FormationCV is one education row.
type FormationCV struct {
	Diplome       string `json:"diplome,omitempty"`
	Etablissement string `json:"etablissement,omitempty"`
	Annee         string `json:"annee,omitempty"`
}

// LangueCV is one consolidated language row. At most one row per base
// language survives consolidation.
type LangueCV struct {
	Nom    string `json:"nom"`
	Niveau string `json:"niveau,omitempty"`
}

// ProjetCV is one bounded project row.
type ProjetCV struct {
	Nom          string   `json:"nom"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// ClientsCV groups referenced clients by sector. The field is nil (section
// absent) when no client was found anywhere in the profile.
type ClientsCV struct {
	Groupes []ClientGroupeCV `json:"groupes"`
	Total   int              `json:"total"`
}

// ClientGroupeCV is one sector bucket.
type ClientGroupeCV struct {
	Secteur string   `json:"secteur"`
	Clients []string `json:"clients"`
}

// SectionTotals holds pre-truncation section counts.
type SectionTotals struct {
	Experiences           int `json:"experiences"`
	Realisations          int `json:"realisations"`
	CompetencesTechniques int `json:"competences_techniques"`
	SoftSkills            int `json:"soft_skills"`
	Formations            int `json:"formations"`
	Langues               int `json:"langues"`
	Certifications        int `json:"certifications"`
	Projets               int `json:"projets"`
	Clients               int `json:"clients"`
}

// JobContext describes the targeted role for relevance filtering.
type JobContext struct {
	RoleTitle string `json:"role_title,omitempty"`
	// Keywords the targeted role family values; used for relevance scoring.
	Keywords []string `json:"keywords,omitempty"`
	// ExcludeTitleKeywords drop experiences whose role title denotes an
	// unrelated side activity (e.g. "développeur" for a project-management
	// target).
	ExcludeTitleKeywords []string `json:"exclude_title_keywords,omitempty"`
}
