package normalize

import (
	"encoding/json"

	"github.com/camille/cv-forge/internal/types"
)

// Field-name dialect tables. Extraction runs have emitted the same concept
// under several keys; the first name in each list is canonical.
var (
	profilKeyDialects = map[string][]string{
		"nom":            {"nom", "last_name", "lastname"},
		"prenom":         {"prenom", "first_name", "firstname"},
		"titre":          {"titre", "title", "headline"},
		"email":          {"email", "mail", "courriel"},
		"telephone":      {"telephone", "phone", "tel"},
		"localisation":   {"localisation", "location", "ville", "adresse"},
		"linkedin":       {"linkedin", "linkedin_url"},
		"github":         {"github", "github_url"},
		"portfolio":      {"portfolio", "site", "website"},
		"elevator_pitch": {"elevator_pitch", "pitch", "resume_profil", "summary"},
	}

	experienceKeyDialects = map[string][]string{
		"poste":              {"poste", "titre", "title", "role", "intitule"},
		"entreprise":         {"entreprise", "societe", "company", "employeur"},
		"lieu":               {"lieu", "location"},
		"date_debut":         {"date_debut", "debut", "start_date", "startDate", "dateDebut", "date_start"},
		"date_fin":           {"date_fin", "fin", "end_date", "endDate", "dateFin", "date_end"},
		"actuel":             {"actuel", "current", "en_poste"},
		"description":        {"description", "resume", "contexte"},
		"realisations":       {"realisations", "achievements", "missions", "taches"},
		"technologies":       {"technologies", "technos", "stack", "outils"},
		"clients_references": {"clients_references", "clients", "references_clients"},
	}

	rootKeyDialects = map[string][]string{
		"experiences":    {"experiences", "experience", "experiences_professionnelles"},
		"competences":    {"competences", "skills"},
		"formations":     {"formations", "formation", "education"},
		"certifications": {"certifications", "certificats"},
		"langues":        {"langues", "languages"},
		"projets":        {"projets", "projects"},
	}

	// profilMarkerKeys at the document root signal the flat shape.
	profilMarkerKeys = []string{"nom", "prenom"}
)

// NormalizeShape rewrites a raw fragment into the nested canonical shape:
// flat identity fields are gathered under "profil", and every known
// field-name dialect is renamed to its canonical key. The input map is not
// mutated; a shaped copy is returned. A nil fragment yields an empty map.
func NormalizeShape(fragment map[string]any) map[string]any {
	shaped := make(map[string]any, len(fragment))
	for k, v := range fragment {
		shaped[k] = v
	}

	renameKeys(shaped, rootKeyDialects)

	if isFlatShape(shaped) {
		hoistProfil(shaped)
	}
	if profil, ok := shaped["profil"].(map[string]any); ok {
		p := cloneMap(profil)
		renameKeys(p, profilKeyDialects)
		shaped["profil"] = p
	}

	if exps, ok := shaped["experiences"].([]any); ok {
		shapedExps := make([]any, 0, len(exps))
		for _, raw := range exps {
			exp, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			e := cloneMap(exp)
			renameKeys(e, experienceKeyDialects)
			shapedExps = append(shapedExps, e)
		}
		shaped["experiences"] = shapedExps
	}

	return shaped
}

// isFlatShape detects profile fields sitting at the document root.
func isFlatShape(doc map[string]any) bool {
	for _, marker := range profilMarkerKeys {
		if _, ok := doc[marker]; ok {
			return true
		}
	}
	return false
}

// hoistProfil moves flat identity fields under the "profil" key, merging
// with any partial profil object already present.
func hoistProfil(doc map[string]any) {
	profil, _ := doc["profil"].(map[string]any)
	profil = cloneMap(profil)

	for _, dialects := range profilKeyDialects {
		for _, key := range dialects {
			if v, ok := doc[key]; ok {
				if _, present := profil[key]; !present {
					profil[key] = v
				}
				delete(doc, key)
			}
		}
	}
	doc["profil"] = profil
}

// renameKeys renames every known dialect key to its canonical name. When
// both a dialect and the canonical key are present the canonical one wins.
func renameKeys(doc map[string]any, dialects map[string][]string) {
	for canonical, names := range dialects {
		for _, name := range names {
			if name == canonical {
				continue
			}
			v, ok := doc[name]
			if !ok {
				continue
			}
			if _, present := doc[canonical]; !present {
				doc[canonical] = v
			}
			delete(doc, name)
		}
	}
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// decodeFragment converts a shaped fragment into the typed canonical form.
// Malformed payloads degrade to an empty profile, never an error: the
// lenient unmarshalers in types absorb string-vs-object and flag variants.
func decodeFragment(shaped map[string]any) *types.CanonicalProfile {
	var profile types.CanonicalProfile
	data, err := json.Marshal(shaped)
	if err != nil {
		return &profile
	}
	// Unmarshal errors are tolerated: fields decoded before the failure are
	// kept, the rest stay zero.
	_ = json.Unmarshal(data, &profile)
	return &profile
}
