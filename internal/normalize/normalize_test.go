package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camille/cv-forge/internal/types"
)

func fragmentNested() map[string]any {
	return map[string]any{
		"profil": map[string]any{
			"nom":    "Dupont",
			"prenom": "Jean",
			"email":  "jean.dupont@example.com",
		},
		"experiences": []any{
			map[string]any{
				"poste":        "Chef de projet SI",
				"entreprise":   "Acme",
				"date_debut":   "2020-01",
				"date_fin":     "2022-06",
				"realisations": []any{"Pilotage de la refonte du SI", map[string]any{"description": "Migration cloud", "impact": "-30% de coûts"}},
				"technologies": []any{"Jira", "AWS"},
			},
		},
	}
}

func TestIDStability(t *testing.T) {
	a := Normalize(nil, fragmentNested())
	b := Normalize(nil, fragmentNested())

	require.Len(t, a.Experiences, 1)
	require.Len(t, b.Experiences, 1)
	assert.Equal(t, a.Experiences[0].ID, b.Experiences[0].ID)
	assert.Regexp(t, `^exp_[0-9a-z]+$`, a.Experiences[0].ID)

	require.Len(t, a.Experiences[0].Realisations, 2)
	for i := range a.Experiences[0].Realisations {
		assert.Equal(t, a.Experiences[0].Realisations[i].ID, b.Experiences[0].Realisations[i].ID)
		assert.Regexp(t, `^real_[0-9a-z]+$`, a.Experiences[0].Realisations[i].ID)
	}
}

func TestIDStableAcrossSpellingNoise(t *testing.T) {
	a := types.Experience{Poste: "Chef de Projet", Entreprise: "Acme", DateDebut: "2020-01", DateFin: "2022-06"}
	b := types.Experience{Poste: "  chef   de projet! ", Entreprise: "ACME,", DateDebut: "2020-01", DateFin: "2022-06"}
	assert.Equal(t, ExperienceID(a), ExperienceID(b))
}

func TestMergeUnionOfBullets(t *testing.T) {
	fragA := map[string]any{
		"experiences": []any{map[string]any{
			"poste":        "Chef de projet",
			"entreprise":   "Acme",
			"date_debut":   "2020-01",
			"date_fin":     "2022-06",
			"realisations": []any{"Pilotage du SI"},
			"technologies": []any{"Jira"},
		}},
	}
	fragB := map[string]any{
		"experiences": []any{map[string]any{
			"poste":        "Chef de projet",
			"entreprise":   "Acme",
			"date_debut":   "2020-01",
			"date_fin":     "2022-06",
			"realisations": []any{"Migration cloud"},
			"technologies": []any{"AWS", "jira"},
		}},
	}

	profile := Normalize(Normalize(nil, fragA), fragB)

	require.Len(t, profile.Experiences, 1, "same dated role must collapse to one experience")
	exp := profile.Experiences[0]
	assert.Len(t, exp.Realisations, 2, "bullet union must keep both distinct bullets")
	assert.ElementsMatch(t, []string{"Jira", "AWS"}, exp.Technologies)
}

func TestMergeKeepsLongerPoste(t *testing.T) {
	merged := dedupeExperiences([]types.Experience{
		{Poste: "Dev", Entreprise: "Acme", DateDebut: "2020"},
		{Poste: "Développeur back-end senior", Entreprise: "Acme Corporation", DateDebut: "2020"},
	})
	// Different poste means a different merge key, so both survive.
	require.Len(t, merged, 2)

	merged = dedupeExperiences([]types.Experience{
		{Poste: "Chef de projet", Entreprise: "Acme", DateDebut: "2020"},
		{Poste: "Chef de projet", Entreprise: "Acme Corporation SA (Groupe Acme)", DateDebut: "2020"},
	})
	// Same key requires identical normalized entreprise, so these also stay
	// apart; the longer-string rule applies within a merged pair only.
	require.Len(t, merged, 2)

	one := mergeExperience(
		types.Experience{Poste: "Chef de projet", Entreprise: "Acme"},
		types.Experience{Poste: "Chef de projet senior transformation", Entreprise: "Acme"},
	)
	assert.Equal(t, "Chef de projet senior transformation", one.Poste)
}

func TestUndatedMergeKeyUsesBulletContent(t *testing.T) {
	same1 := types.Experience{Poste: "Consultant", Entreprise: "Acme",
		Realisations: []types.Realisation{{Description: "Audit sécurité"}}}
	same2 := types.Experience{Poste: "Consultant", Entreprise: "Acme",
		Realisations: []types.Realisation{{Description: "audit  sécurité!"}}}
	other := types.Experience{Poste: "Consultant", Entreprise: "Acme",
		Realisations: []types.Realisation{{Description: "Mise en place CI/CD"}}}

	merged := dedupeExperiences([]types.Experience{same1, same2, other})
	assert.Len(t, merged, 2, "identical undated content merges, different content does not")
}

func TestFlatShapeHoisted(t *testing.T) {
	profile := Normalize(nil, map[string]any{
		"nom":       "Martin",
		"prenom":    "Claire",
		"email":     "claire@example.com",
		"telephone": "0612345678",
	})
	assert.Equal(t, "Martin", profile.Profil.Nom)
	assert.Equal(t, "Claire", profile.Profil.Prenom)
	assert.Equal(t, "claire@example.com", profile.Profil.Email)
	assert.Equal(t, "0612345678", profile.Profil.Telephone)
}

func TestDateDialects(t *testing.T) {
	for _, startKey := range []string{"date_debut", "debut", "start_date", "startDate", "dateDebut", "date_start"} {
		profile := Normalize(nil, map[string]any{
			"experiences": []any{map[string]any{
				"poste": "Dev", "entreprise": "Acme", startKey: "2021-03",
			}},
		})
		require.Len(t, profile.Experiences, 1, "dialect %s", startKey)
		assert.Equal(t, "2021-03", profile.Experiences[0].DateDebut, "dialect %s", startKey)
	}
}

func TestPriorDataSurvivesSparseFragment(t *testing.T) {
	prior := Normalize(nil, fragmentNested())
	updated := Normalize(prior, map[string]any{
		"profil": map[string]any{"telephone": "0700000000"},
	})

	assert.Equal(t, "0700000000", updated.Profil.Telephone)
	assert.Equal(t, "jean.dupont@example.com", updated.Profil.Email, "prior email must survive")
	assert.Len(t, updated.Experiences, 1, "prior experiences must survive")

	// The fold never mutates its inputs.
	assert.Empty(t, prior.Profil.Telephone)
}

func TestIdentityContactSurvivesSparseFragment(t *testing.T) {
	prior := Normalize(nil, map[string]any{
		"identity": map[string]any{
			"contact": map[string]any{"email": "jean@example.com"},
		},
	})
	updated := Normalize(prior, map[string]any{
		"identity": map[string]any{
			"contact": map[string]any{"telephone": "0600000000"},
		},
	})

	require.NotNil(t, updated.Identity)
	assert.Equal(t, "0600000000", updated.Identity.Contact.Telephone)
	assert.Equal(t, "jean@example.com", updated.Identity.Contact.Email, "prior email must survive")
}

func TestCompetencesFlatTechniquesHoisted(t *testing.T) {
	profile := Normalize(nil, map[string]any{
		"competences": map[string]any{"techniques": []any{"Go", "Terraform"}},
	})
	require.Len(t, profile.Competences.Explicit.Techniques, 2)
	assert.Equal(t, "Go", profile.Competences.Explicit.Techniques[0].Nom)
}

func TestMalformedInputNeverPanics(t *testing.T) {
	fragments := []map[string]any{
		nil,
		{},
		{"experiences": "not a list"},
		{"experiences": []any{"not a map", 42}},
		{"profil": []any{"wrong shape"}},
		{"competences": 3.14},
		{"langues": map[string]any{"oops": true}},
	}
	for _, f := range fragments {
		profile := Normalize(nil, f)
		require.NotNil(t, profile)
		assert.NotNil(t, profile.Experiences)
	}
}

func TestNormalizeAllFoldsInOrder(t *testing.T) {
	profile := NormalizeAll([]map[string]any{
		{"profil": map[string]any{"titre": "Chef de projet"}},
		{"profil": map[string]any{"titre": "Directeur de projet"}},
	})
	assert.Equal(t, "Directeur de projet", profile.Profil.Titre, "last fragment wins on scalar conflict")
}

func TestParseFragmentInvalidJSON(t *testing.T) {
	assert.Empty(t, ParseFragment([]byte("{not json")))
	assert.Equal(t, map[string]any{"a": "b"}, ParseFragment([]byte(`{"a":"b"}`)))
}
