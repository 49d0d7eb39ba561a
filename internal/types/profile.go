// Package types provides type definitions for the profile knowledge base and
// renderer documents exchanged between the pipeline components.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"strings"
)

// CanonicalProfile is the merged, de-duplicated knowledge base for one
// person, accumulated across extraction fragments. It is the union of all
// historical fragments: a merge may add or refine data, never silently drop it.
type CanonicalProfile struct {
	Profil            Profil           `json:"profil"`
	Identity          *Identity        `json:"identity,omitempty"`
	Experiences       []Experience     `json:"experiences"`
	Competences       Competences      `json:"competences"`
	Formations        []Formation      `json:"formations,omitempty"`
	Certifications    []Certification  `json:"certifications,omitempty"`
	Langues           []Langue         `json:"langues,omitempty"`
	References        *References      `json:"references,omitempty"`
	Projets           []Projet         `json:"projets,omitempty"`
	ClientsReferences *ClientGroupes   `json:"clients_references,omitempty"`
	ContexteEnrichi   *ContexteEnrichi `json:"contexte_enrichi,omitempty"`
}

// Profil holds identity and contact fields, one string each.
type Profil struct {
	Nom           string `json:"nom,omitempty"`
	Prenom        string `json:"prenom,omitempty"`
	Titre         string `json:"titre,omitempty"`
	Email         string `json:"email,omitempty"`
	Telephone     string `json:"telephone,omitempty"`
	Localisation  string `json:"localisation,omitempty"`
	LinkedIn      string `json:"linkedin,omitempty"`
	GitHub        string `json:"github,omitempty"`
	Portfolio     string `json:"portfolio,omitempty"`
	ElevatorPitch string `json:"elevator_pitch,omitempty"`
}

// Identity is the alternate contact dialect some extractions emit
// (identity.contact.* instead of profil.*).
type Identity struct {
	Contact Contact `json:"contact"`
}

// Contact mirrors the contact subset of Profil for the identity dialect.
type Contact struct {
	Email        string `json:"email,omitempty"`
	Telephone    string `json:"telephone,omitempty"`
	Localisation string `json:"localisation,omitempty"`
	LinkedIn     string `json:"linkedin,omitempty"`
	GitHub       string `json:"github,omitempty"`
	Portfolio    string `json:"portfolio,omitempty"`
}

// Experience is one job record with a stable identity derived from its
// normalized (poste, entreprise, start, end) tuple.
type Experience struct {
	ID                string        `json:"id,omitempty"`
	Poste             string        `json:"poste,omitempty"`
	Entreprise        string        `json:"entreprise,omitempty"`
	Lieu              string        `json:"lieu,omitempty"`
	DateDebut         string        `json:"date_debut,omitempty"`
	DateFin           string        `json:"date_fin,omitempty"`
	Actuel            Flag          `json:"actuel,omitempty"`
	Description       string        `json:"description,omitempty"`
	Realisations      []Realisation `json:"realisations,omitempty"`
	Technologies      []string      `json:"technologies,omitempty"`
	ClientsReferences []string      `json:"clients_references,omitempty"`
}

// Realisation is one achievement bullet. Extraction may emit it as a bare
// string or as an object; both decode into the object form.
type Realisation struct {
	ID          string `json:"id,omitempty"`
	Description string `json:"description,omitempty"`
	Impact      string `json:"impact,omitempty"`
	Display     *bool  `json:"display,omitempty"`
	Position    int    `json:"position,omitempty"`
}

// UnmarshalJSON accepts either a bare string or the object form. Malformed
// entries decode to a zero value rather than failing the whole document.
func (r *Realisation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.Description = strings.TrimSpace(s)
		return nil
	}
	type alias Realisation
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return nil
	}
	*r = Realisation(a)
	return nil
}

// Flag is a tri-state boolean tolerant of the string forms upstream
// extraction emits ("true", "false", "1", "0"). The zero value is unset.
type Flag struct {
	Set   bool
	Value bool
}

// True reports whether the flag was set and is true.
func (f Flag) True() bool { return f.Set && f.Value }

// False reports whether the flag was explicitly set to false.
func (f Flag) False() bool { return f.Set && !f.Value }

// UnmarshalJSON coerces booleans and their common string spellings. The
// literal string "false" must be false, never a truthy non-empty string.
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = Flag{}
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = Flag{Set: true, Value: b}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1", "oui", "yes":
			*f = Flag{Set: true, Value: true}
		case "false", "0", "non", "no":
			*f = Flag{Set: true, Value: false}
		default:
			*f = Flag{}
		}
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = Flag{Set: true, Value: n != 0}
		return nil
	}
	*f = Flag{}
	return nil
}

// MarshalJSON renders the flag as a plain boolean, or null when unset.
func (f Flag) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Formation is one education record.
type Formation struct {
	Diplome       string `json:"diplome,omitempty"`
	Etablissement string `json:"etablissement,omitempty"`
	Annee         string `json:"annee,omitempty"`
}

// Certification may arrive as a bare string or an object.
type Certification struct {
	Nom       string `json:"nom,omitempty"`
	Organisme string `json:"organisme,omitempty"`
	Annee     string `json:"annee,omitempty"`
}

// UnmarshalJSON accepts either a bare string or the object form.
func (c *Certification) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Nom = strings.TrimSpace(s)
		return nil
	}
	type alias Certification
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return nil
	}
	*c = Certification(a)
	return nil
}

// Langue is one language entry. Extraction uses several key dialects for
// both the name ("langue", "nom", "name") and the level ("niveau", "level").
type Langue struct {
	Nom    string `json:"langue,omitempty"`
	Niveau string `json:"niveau,omitempty"`
}

// UnmarshalJSON resolves the name and level key dialects and accepts a bare
// string as a name-only entry.
func (l *Langue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		l.Nom = strings.TrimSpace(s)
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	l.Nom = firstRawString(raw, "langue", "nom", "name")
	l.Niveau = firstRawString(raw, "niveau", "level")
	return nil
}

// References carries the top-level client list dialect.
type References struct {
	Clients []ClientRef `json:"clients,omitempty"`
}

// ClientRef is one referenced client, bare string or object.
type ClientRef struct {
	Nom         string `json:"nom,omitempty"`
	Secteur     string `json:"secteur,omitempty"`
	Description string `json:"description,omitempty"`
}

// UnmarshalJSON accepts either a bare string or the object form.
func (c *ClientRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Nom = strings.TrimSpace(s)
		return nil
	}
	type alias ClientRef
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return nil
	}
	*c = ClientRef(a)
	return nil
}

// ClientGroupes is the pre-grouped client dialect attached by an upstream
// enrichment step.
type ClientGroupes struct {
	Groupes []ClientGroupe `json:"groupes,omitempty"`
}

// ClientGroupe is one sector bucket of client names.
type ClientGroupe struct {
	Secteur string   `json:"secteur,omitempty"`
	Clients []string `json:"clients,omitempty"`
}

// Projet is one side or reference project.
type Projet struct {
	Nom          string   `json:"nom,omitempty"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// ContexteEnrichi holds LLM-inferred responsibilities and tacit skills, each
// with a confidence score in [60,100] and a justification sourced from the
// original document.
type ContexteEnrichi struct {
	ResponsabilitesImplicites []InferredItem `json:"responsabilites_implicites"`
	CompetencesTacites        []InferredItem `json:"competences_tacites"`
}

// EmptyContexteEnrichi is the well-defined fallback substituted when the
// enrichment collaborator fails or returns invalid data.
func EmptyContexteEnrichi() *ContexteEnrichi {
	return &ContexteEnrichi{
		ResponsabilitesImplicites: []InferredItem{},
		CompetencesTacites:        []InferredItem{},
	}
}

// InferredItem is one inferred responsibility or tacit skill.
type InferredItem struct {
	Nom           string   `json:"nom,omitempty"`
	Confidence    *float64 `json:"confidence,omitempty"`
	Justification string   `json:"justification,omitempty"`
	Sources       []string `json:"sources,omitempty"`
}

// firstRawString returns the first present key decoded as a string.
func firstRawString(raw map[string]json.RawMessage, keys ...string) string {
	for _, k := range keys {
		msg, ok := raw[k]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(msg, &s); err == nil && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
