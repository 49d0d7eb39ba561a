package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camille/cv-forge/internal/types"
)

func TestLevelRank(t *testing.T) {
	tests := []struct {
		niveau string
		rank   int
	}{
		{"Natif", 7},
		{"Langue maternelle", 7},
		{"Bilingue", 7},
		{"C2", 6},
		{"C1", 5},
		{"B2", 4},
		{"Niveau B2 professionnel", 4},
		{"B1", 3},
		{"A2", 2},
		{"A1", 1},
		{"Courant", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.rank, levelRank(tt.niveau), "niveau %q", tt.niveau)
	}
}

func TestBaseLanguageKey(t *testing.T) {
	assert.Equal(t, "anglais", baseLanguageKey("Anglais (Reading)"))
	assert.Equal(t, "anglais", baseLanguageKey("English"))
	assert.Equal(t, "francais", baseLanguageKey("Français"))
	assert.Equal(t, "francais", baseLanguageKey("French"))
	assert.Equal(t, "espagnol", baseLanguageKey("Espagnol"))
}

func TestConsolidateLanguagesRedundantEnglishRows(t *testing.T) {
	langues := []types.Langue{
		{Nom: "Anglais", Niveau: "B1"},
		{Nom: "Anglais (Global)", Niveau: "B1"},
		{Nom: "Anglais (Reading)", Niveau: "A2"},
		{Nom: "Français", Niveau: "Natif"},
	}
	out := consolidateLanguages(langues)

	require.Len(t, out, 2, "one row per base language")
	assert.Contains(t, strings.ToLower(out[0].Nom), "français")
	assert.Contains(t, strings.ToLower(out[1].Nom), "anglais")
	assert.Equal(t, "B1", out[1].Niveau, "highest rank wins over the A2 row")
}

func TestConsolidateLanguagesTieBreakLongerLevel(t *testing.T) {
	out := consolidateLanguages([]types.Langue{
		{Nom: "Espagnol", Niveau: "B2"},
		{Nom: "Espagnol", Niveau: "B2 (usage professionnel)"},
	})
	require.Len(t, out, 1)
	assert.Equal(t, "B2 (usage professionnel)", out[0].Niveau)
}

func TestConsolidateLanguagesOrder(t *testing.T) {
	out := consolidateLanguages([]types.Langue{
		{Nom: "Italien", Niveau: "A2"},
		{Nom: "Allemand", Niveau: "B1"},
		{Nom: "English", Niveau: "C1"},
		{Nom: "Français", Niveau: "Natif"},
	})
	require.Len(t, out, 4)
	assert.Contains(t, strings.ToLower(out[0].Nom), "français")
	assert.Contains(t, strings.ToLower(out[1].Nom), "english")
	// Remaining languages are alphabetical by display name.
	assert.Equal(t, "Allemand", out[2].Nom)
	assert.Equal(t, "Italien", out[3].Nom)
}
