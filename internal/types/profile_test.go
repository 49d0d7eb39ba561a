package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagCoercion(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		set     bool
		value   bool
	}{
		{"bool true", `true`, true, true},
		{"bool false", `false`, true, false},
		{"string false is false, not truthy", `"false"`, true, false},
		{"string true", `"true"`, true, true},
		{"string zero", `"0"`, true, false},
		{"null is unset", `null`, false, false},
		{"garbage string is unset", `"maybe"`, false, false},
		{"number one", `1`, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Flag
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &f))
			assert.Equal(t, tt.set, f.Set)
			assert.Equal(t, tt.value, f.Value)
		})
	}
}

func TestRealisationStringOrObject(t *testing.T) {
	var r Realisation
	require.NoError(t, json.Unmarshal([]byte(`"Migration vers AWS"`), &r))
	assert.Equal(t, "Migration vers AWS", r.Description)

	require.NoError(t, json.Unmarshal([]byte(`{"description":"Refonte SI","impact":"-30% coûts"}`), &r))
	assert.Equal(t, "Refonte SI", r.Description)
	assert.Equal(t, "-30% coûts", r.Impact)

	// Malformed entry degrades to zero value, no error.
	var bad Realisation
	require.NoError(t, json.Unmarshal([]byte(`42`), &bad))
	assert.Empty(t, bad.Description)
}

func TestLangueDialects(t *testing.T) {
	var l Langue
	require.NoError(t, json.Unmarshal([]byte(`{"langue":"Anglais","niveau":"B2"}`), &l))
	assert.Equal(t, "Anglais", l.Nom)
	assert.Equal(t, "B2", l.Niveau)

	require.NoError(t, json.Unmarshal([]byte(`{"nom":"Français","level":"Natif"}`), &l))
	assert.Equal(t, "Français", l.Nom)
	assert.Equal(t, "Natif", l.Niveau)

	require.NoError(t, json.Unmarshal([]byte(`"Espagnol"`), &l))
	assert.Equal(t, "Espagnol", l.Nom)
}

func TestCertificationStringOrObject(t *testing.T) {
	var c Certification
	require.NoError(t, json.Unmarshal([]byte(`"AWS Solutions Architect"`), &c))
	assert.Equal(t, "AWS Solutions Architect", c.Nom)

	require.NoError(t, json.Unmarshal([]byte(`{"nom":"PMP","organisme":"PMI","annee":"2021"}`), &c))
	assert.Equal(t, "PMP", c.Nom)
	assert.Equal(t, "PMI", c.Organisme)
}

func TestCompetencesFlatShapeHoisted(t *testing.T) {
	var c Competences
	require.NoError(t, json.Unmarshal([]byte(`{"techniques":["Go","Terraform"],"soft_skills":["Leadership"]}`), &c))
	require.Len(t, c.Explicit.Techniques, 2)
	assert.Equal(t, "Go", c.Explicit.Techniques[0].Nom)
	require.Len(t, c.Explicit.SoftSkills, 1)
	assert.Equal(t, "Leadership", c.Explicit.SoftSkills[0].Nom)
}

func TestCompetencesNestedShape(t *testing.T) {
	payload := `{
		"explicit": {"techniques": [{"nom":"Kubernetes","niveau":"avancé"}]},
		"inferred": {"techniques": [{"nom":"Helm","confidence":75}]},
		"categories": [{"nom":"Cloud","items":["AWS","GCP"],"display":true}],
		"skill_map": {"Python": {"level": 3}}
	}`
	var c Competences
	require.NoError(t, json.Unmarshal([]byte(payload), &c))
	assert.Equal(t, "Kubernetes", c.Explicit.Techniques[0].Nom)
	require.NotNil(t, c.Inferred.Techniques[0].Confidence)
	assert.Equal(t, 75.0, *c.Inferred.Techniques[0].Confidence)
	assert.Equal(t, "AWS", c.Categories[0].Items[0].Nom)
	assert.Contains(t, c.SkillMap, "Python")
}

func TestCompetencesMalformedDegrades(t *testing.T) {
	var c Competences
	require.NoError(t, json.Unmarshal([]byte(`"just a string"`), &c))
	assert.True(t, c.IsZero())
}
