package render

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camille/cv-forge/internal/types"
)

func flagTrue() types.Flag  { return types.Flag{Set: true, Value: true} }
func flagFalse() types.Flag { return types.Flag{Set: true, Value: false} }

func TestPlaceholderFallsThroughToNextSource(t *testing.T) {
	profile := &types.CanonicalProfile{
		Profil:   types.Profil{Email: "non renseigné"},
		Identity: &types.Identity{Contact: types.Contact{Email: "vrai@example.com"}},
	}
	cv := Convert(profile, DefaultOptions())
	assert.Equal(t, "vrai@example.com", cv.Identite.Email)
}

func TestPlaceholderWithNoOtherSourceIsEmpty(t *testing.T) {
	profile := &types.CanonicalProfile{
		Profil: types.Profil{Email: "non renseigné", Telephone: "N/A"},
	}
	cv := Convert(profile, DefaultOptions())
	assert.Empty(t, cv.Identite.Email, "placeholder must never surface")
	assert.Empty(t, cv.Identite.Telephone)
}

func TestCompletenessFilter(t *testing.T) {
	profile := &types.CanonicalProfile{
		Experiences: []types.Experience{
			{Poste: "Consultant"},                                // 1 of 3: dropped
			{Poste: "Chef de projet", Entreprise: "Acme"},        // 2 of 3, no date: kept
			{Poste: "Architecte", DateDebut: "2019-01"},          // 2 of 3: kept
			{Entreprise: "non renseigné", Poste: "Développeur"},  // placeholder entreprise: 1 of 3
		},
	}
	cv := Convert(profile, DefaultOptions())
	require.Len(t, cv.Experiences, 2)
	assert.Equal(t, "Chef de projet", cv.Experiences[0].Poste)
	assert.Equal(t, "Architecte", cv.Experiences[1].Poste)
}

func TestActuelCoercion(t *testing.T) {
	profile := &types.CanonicalProfile{
		Experiences: []types.Experience{
			{Poste: "A", Entreprise: "X", DateDebut: "2020", Actuel: flagFalse()},
			{Poste: "B", Entreprise: "X", DateDebut: "2021", Actuel: flagTrue()},
			{Poste: "C", Entreprise: "X", DateDebut: "2018", DateFin: "présent"},
			{Poste: "D", Entreprise: "X", DateDebut: "2015", DateFin: "2017", Actuel: flagTrue()},
		},
	}
	cv := Convert(profile, DefaultOptions())
	require.Len(t, cv.Experiences, 4)
	assert.False(t, cv.Experiences[0].Actuel, `string "false" coerced, not truthy-checked`)
	assert.True(t, cv.Experiences[1].Actuel, "fin null + actuel true is ongoing")
	assert.True(t, cv.Experiences[2].Actuel, "présent marker implies ongoing")
	assert.Empty(t, cv.Experiences[2].DateFin)
	assert.False(t, cv.Experiences[3].Actuel, "explicit end date wins over the flag")
	assert.Equal(t, "2017", cv.Experiences[3].DateFin)
}

func TestActuelStringFalseFromJSON(t *testing.T) {
	payload := `{"experiences":[{"poste":"Chef de projet","entreprise":"Acme","date_debut":"2020","actuel":"false"}]}`
	var profile types.CanonicalProfile
	require.NoError(t, json.Unmarshal([]byte(payload), &profile))
	cv := Convert(&profile, DefaultOptions())
	require.Len(t, cv.Experiences, 1)
	assert.False(t, cv.Experiences[0].Actuel)
}

func TestBulletJoiningAndDisplayFilter(t *testing.T) {
	hidden := false
	profile := &types.CanonicalProfile{
		Experiences: []types.Experience{{
			Poste: "Chef de projet", Entreprise: "Acme", DateDebut: "2020",
			Realisations: []types.Realisation{
				{Description: "Refonte du SI", Impact: "-30% de coûts"},
				{Description: "Cadrage", Impact: "cadrage"}, // impact duplicates description
				{Description: "Bullet masqué", Display: &hidden},
			},
		}},
	}
	cv := Convert(profile, DefaultOptions())
	require.Len(t, cv.Experiences, 1)
	bullets := cv.Experiences[0].Realisations
	require.Len(t, bullets, 2)
	assert.Equal(t, "Refonte du SI - -30% de coûts", bullets[0])
	assert.Equal(t, "Cadrage", bullets[1], "identical impact is not repeated")
}

func TestNoClientsYieldsAbsentSection(t *testing.T) {
	profile := &types.CanonicalProfile{
		Experiences: []types.Experience{{Poste: "Chef de projet", Entreprise: "Acme", DateDebut: "2020"}},
	}
	cv := Convert(profile, DefaultOptions())
	assert.Nil(t, cv.ClientsReferences, "zero clients must yield an absent section, not an empty object")
}

func TestBudgetEnforcementEndToEnd(t *testing.T) {
	profile := &types.CanonicalProfile{Profil: types.Profil{Nom: "Dupont"}}

	for i := 0; i < 3; i++ {
		profile.Experiences = append(profile.Experiences, types.Experience{
			Poste:      fmt.Sprintf("Chef de projet %d", i),
			Entreprise: "Acme",
			DateDebut:  fmt.Sprintf("20%02d", 10+i),
		})
	}
	// A side project with an unrelated role title.
	profile.Experiences = append(profile.Experiences, types.Experience{
		Poste: "Développeur web freelance", Entreprise: "Perso", DateDebut: "2016",
	})

	for i := 0; i < 50; i++ {
		profile.Competences.Explicit.Techniques = append(profile.Competences.Explicit.Techniques,
			types.SkillItem{Nom: fmt.Sprintf("Tech-%02d", i)})
	}
	for i := 0; i < 20; i++ {
		profile.Competences.Explicit.SoftSkills = append(profile.Competences.Explicit.SoftSkills,
			types.SkillItem{Nom: fmt.Sprintf("Soft-%02d", i)})
	}
	profile.Langues = []types.Langue{
		{Nom: "Français", Niveau: "Natif"}, {Nom: "Anglais", Niveau: "C1"},
		{Nom: "Espagnol", Niveau: "B1"}, {Nom: "Italien", Niveau: "A2"},
	}
	for i := 0; i < 10; i++ {
		profile.Certifications = append(profile.Certifications, types.Certification{Nom: fmt.Sprintf("Cert-%02d", i)})
	}
	groupes := []types.ClientGroupe{{Secteur: "Banque"}, {Secteur: "Énergie"}, {Secteur: "Retail"}}
	for g := range groupes {
		n := []int{30, 20, 20}[g]
		for i := 0; i < n; i++ {
			groupes[g].Clients = append(groupes[g].Clients, fmt.Sprintf("%s-client-%02d", groupes[g].Secteur, i))
		}
	}
	profile.ClientsReferences = &types.ClientGroupes{Groupes: groupes}

	opts := DefaultOptions()
	opts.MaxExperiences = 4
	opts.MaxLanguages = 4
	opts.MaxCertifications = 4
	opts.Job = &types.JobContext{
		RoleTitle:            "Directeur de projet",
		ExcludeTitleKeywords: []string{"développeur"},
	}

	cv := Convert(profile, opts)

	assert.LessOrEqual(t, len(cv.Experiences), 4)
	for _, e := range cv.Experiences {
		assert.NotContains(t, e.Poste, "Développeur", "unrelated side project must be excluded")
	}
	assert.Len(t, cv.CompetencesTechniques, DefaultMaxTechnicalSkills)
	assert.Len(t, cv.SoftSkills, DefaultMaxSoftSkills)
	assert.LessOrEqual(t, len(cv.Langues), 4)
	assert.LessOrEqual(t, len(cv.Certifications), 4)

	require.NotNil(t, cv.ClientsReferences)
	totalRendered := 0
	for _, g := range cv.ClientsReferences.Groupes {
		totalRendered += len(g.Clients)
	}
	assert.LessOrEqual(t, totalRendered, DefaultMaxClients)
	assert.LessOrEqual(t, len(cv.ClientsReferences.Groupes), DefaultMaxClientGroups)

	// Pre-truncation counts survive for UI feedback.
	assert.Equal(t, 50, cv.Totaux.CompetencesTechniques)
	assert.Equal(t, 20, cv.Totaux.SoftSkills)
	assert.Equal(t, 4, cv.Totaux.Langues)
	assert.Equal(t, 10, cv.Totaux.Certifications)
	assert.Equal(t, 70, cv.Totaux.Clients)
	assert.Equal(t, 3, cv.Totaux.Experiences, "excluded side project does not count")
}

func TestConvertIsPure(t *testing.T) {
	profile := &types.CanonicalProfile{
		Experiences: []types.Experience{{Poste: "Chef de projet", Entreprise: "Acme", DateDebut: "2020"}},
		Langues:     []types.Langue{{Nom: "Anglais", Niveau: "B2"}},
	}
	before, err := json.Marshal(profile)
	require.NoError(t, err)

	limited := Convert(profile, Options{MaxExperiences: 1})
	unlimited := Convert(profile, UnlimitedOptions())

	after, err := json.Marshal(profile)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after), "Convert must not mutate its input")
	assert.Equal(t, limited.Totaux, unlimited.Totaux, "totals are independent of caps")
}

func TestConvertNilProfile(t *testing.T) {
	cv := Convert(nil, DefaultOptions())
	require.NotNil(t, cv)
	assert.Empty(t, cv.Experiences)
	assert.Nil(t, cv.ClientsReferences)
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())
	bad := DefaultOptions()
	bad.MaxExperiences = -3
	assert.Error(t, bad.Validate())
}
