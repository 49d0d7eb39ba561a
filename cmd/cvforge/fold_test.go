package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camille/cv-forge/internal/types"
)

func writeFragment(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestCommand(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	return cmd
}

func TestFoldCommand_MergesFragments(t *testing.T) {
	tmpDir := t.TempDir()

	writeFragment(t, tmpDir, "01_first.json", `{
		"profil": {"nom": "Durand", "prenom": "Camille"},
		"experiences": [{
			"poste": "Chef de Projet",
			"entreprise": "Acme",
			"date_debut": "2020-01",
			"date_fin": "2022-06",
			"realisations": ["Pilotage du projet CRM"]
		}]
	}`)
	writeFragment(t, tmpDir, "02_second.json", `{
		"experiences": [{
			"poste": "Chef de Projet",
			"entreprise": "Acme",
			"date_debut": "2020-01",
			"date_fin": "2022-06",
			"realisations": ["Budget de 2M€ maîtrisé"]
		}]
	}`)

	out := filepath.Join(tmpDir, "profile.json")
	foldInDir = tmpDir
	foldOut = out
	foldPrior = ""
	foldSaveDB = false
	t.Cleanup(func() { foldInDir, foldOut = "", "" })

	err := runFold(newTestCommand(t), nil)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var profile types.CanonicalProfile
	require.NoError(t, json.Unmarshal(data, &profile))

	assert.Equal(t, "Durand", profile.Profil.Nom)
	require.Len(t, profile.Experiences, 1)
	assert.Len(t, profile.Experiences[0].Realisations, 2)
	assert.NotEmpty(t, profile.Experiences[0].ID)
}

func TestFoldCommand_PriorProfile(t *testing.T) {
	tmpDir := t.TempDir()

	prior := writeFragment(t, tmpDir, "prior.json", `{
		"profil": {"nom": "Durand", "titre": "Chef de Projet SI"},
		"experiences": []
	}`)
	frag := writeFragment(t, tmpDir, "frag.json", `{
		"profil": {"prenom": "Camille"}
	}`)

	out := filepath.Join(tmpDir, "profile.json")
	foldInDir = ""
	foldOut = out
	foldPrior = prior
	foldSaveDB = false
	t.Cleanup(func() { foldOut, foldPrior = "", "" })

	err := runFold(newTestCommand(t), []string{frag})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var profile types.CanonicalProfile
	require.NoError(t, json.Unmarshal(data, &profile))

	assert.Equal(t, "Durand", profile.Profil.Nom)
	assert.Equal(t, "Camille", profile.Profil.Prenom)
	assert.Equal(t, "Chef de Projet SI", profile.Profil.Titre)
}

func TestFoldCommand_NoFragments(t *testing.T) {
	foldInDir = ""
	foldOut = filepath.Join(t.TempDir(), "profile.json")
	t.Cleanup(func() { foldOut = "" })

	err := runFold(newTestCommand(t), nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no fragment files")
}
