package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepairTextPipeline(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"camel run", "Pilotage du projetEnsuite livraison", "Pilotage du projet Ensuite livraison"},
		{"glued punctuation", "Fin du lot.Le second démarre", "Fin du lot. Le second démarre"},
		{"glued parentheses", "budget(2M€)maîtrisé", "budget (2M€) maîtrisé"},
		{"word fusion etde", "Cadrage etde pilotage", "Cadrage et de pilotage"},
		{"word fusion dela", "Gestion dela relation client", "Gestion de la relation client"},
		{"word fusion enplace", "Mise enplace du dispositif", "Mise en place du dispositif"},
		{"word fusion case-insensitive", "Miseen place d'un PMO", "mise en place d'un PMO"},
		{"plus digit", "Encadrement de +5 personnes", "Encadrement de + 5 personnes"},
		{"digit ans", "8ans d'expérience", "8 ans d'expérience"},
		{"whitespace collapse", "  trop   d'espaces \t ici ", "trop d'espaces ici"},
		{"placeholder resolves empty", "non renseigné", ""},
		{"idempotent on clean text", "Texte déjà propre.", "Texte déjà propre."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RepairText(tt.in))
		})
	}
}

func TestRepairTextDeterministic(t *testing.T) {
	in := "Cadrage etde miseen place(PMO)avec +3équipes.Pilotage dela suite"
	first := RepairText(in)
	assert.Equal(t, first, RepairText(in), "same input must repair to identical bytes")
	// One pass of the pipeline over its own output is stable too.
	assert.Equal(t, first, RepairText(first))
}
