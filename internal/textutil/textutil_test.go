package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldAccents(t *testing.T) {
	assert.Equal(t, "renseigne", FoldAccents("renseigné"))
	assert.Equal(t, "Francais", FoldAccents("Français"))
	assert.Equal(t, "deja vu", FoldAccents("déjà vu"))
	assert.Equal(t, "plain", FoldAccents("plain"))
}

func TestKeyPart(t *testing.T) {
	// Punctuation noise is stripped, accents are preserved.
	assert.Equal(t, "développeur senior", KeyPart("  Développeur,  Senior! "))
	assert.Equal(t, "node.js back-end", KeyPart("Node.js (Back-End)"))
	assert.Equal(t, "", KeyPart("  "))
}

func TestComparable(t *testing.T) {
	assert.Equal(t, "non renseigne", Comparable("Non renseigné"))
	assert.Equal(t, "n a", Comparable("N/A"))
	assert.Equal(t, "anglais", Comparable("  Anglais  "))
}

func TestIsPlaceholder(t *testing.T) {
	placeholders := []string{"", "  ", "non renseigné", "Non Renseigné", "N/A", "NA", "none", "NULL", "undefined", "nr"}
	for _, p := range placeholders {
		assert.True(t, IsPlaceholder(p), "expected placeholder: %q", p)
	}
	real := []string{"jean.dupont@example.com", "Paris", "0612345678"}
	for _, r := range real {
		assert.False(t, IsPlaceholder(r), "expected real value: %q", r)
	}
}

func TestFirstNonPlaceholder(t *testing.T) {
	assert.Equal(t, "a@b.fr", FirstNonPlaceholder("non renseigné", "a@b.fr", "c@d.fr"))
	assert.Equal(t, "", FirstNonPlaceholder("N/A", "", "null"))
	assert.Equal(t, "Lyon", FirstNonPlaceholder("Lyon"))
}
