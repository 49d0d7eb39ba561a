package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/camille/cv-forge/internal/normalize"
	"github.com/camille/cv-forge/internal/observability"
	"github.com/camille/cv-forge/internal/store"
	"github.com/camille/cv-forge/internal/types"
)

var foldCmd = &cobra.Command{
	Use:   "fold [fragment files...]",
	Short: "Fold extraction fragments into a canonical profile",
	Long:  "Fold one or more LLM extraction fragment files (JSON) into a single canonical profile with stable IDs and deduplicated entries. Fragments are applied in argument order; last writer wins on scalar conflicts.",
	RunE:  runFold,
}

var (
	foldInDir  string
	foldOut    string
	foldPrior  string
	foldSaveDB bool
	foldUserID string
)

func init() {
	foldCmd.Flags().StringVarP(&foldInDir, "in-dir", "i", "", "Directory of fragment JSON files (sorted by name)")
	foldCmd.Flags().StringVarP(&foldOut, "out", "o", "", "Output path for the canonical profile (required)")
	foldCmd.Flags().StringVarP(&foldPrior, "prior", "p", "", "Existing canonical profile to fold onto")
	foldCmd.Flags().BoolVar(&foldSaveDB, "save-db", false, "Persist the result and fragments to the database")
	foldCmd.Flags().StringVar(&foldUserID, "user", "", "User UUID for database persistence")

	foldCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(foldCmd)
}

func runFold(cmd *cobra.Command, args []string) error {
	paths := append([]string{}, args...)
	if foldInDir != "" {
		entries, err := os.ReadDir(foldInDir)
		if err != nil {
			return fmt.Errorf("failed to read fragment directory: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
				continue
			}
			paths = append(paths, filepath.Join(foldInDir, e.Name()))
		}
		sort.Strings(paths)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no fragment files given; pass files or --in-dir")
	}

	// Read concurrently, fold in argument order. Fold order matters for
	// scalar conflicts, so results land in an indexed slice.
	raw := make([][]byte, len(paths))
	g, _ := errgroup.WithContext(cmd.Context())
	g.SetLimit(8)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read fragment %s: %w", path, err)
			}
			raw[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var profile *types.CanonicalProfile
	if foldPrior != "" {
		loaded, err := loadProfile(foldPrior)
		if err != nil {
			return err
		}
		profile = loaded
	}
	for _, data := range raw {
		fragment := normalize.ParseFragment(data)
		profile = normalize.Normalize(profile, fragment)
	}

	if err := writeJSON(foldOut, profile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Folded %d fragments into %s\n", len(paths), foldOut)

	if verbose {
		observability.NewPrinter(os.Stdout).PrintProfileSummary(profile)
	}

	if foldSaveDB {
		if err := persistFold(cmd.Context(), profile, raw); err != nil {
			return err
		}
	}
	return nil
}

func persistFold(ctx context.Context, profile *types.CanonicalProfile, raw [][]byte) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if foldUserID == "" {
		foldUserID = cfg.UserID
	}
	if foldUserID == "" {
		return fmt.Errorf("--save-db requires --user or a configured user_id")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("--save-db requires a configured database_url")
	}
	userID, err := uuid.Parse(foldUserID)
	if err != nil {
		return fmt.Errorf("invalid user UUID %q: %w", foldUserID, err)
	}

	st, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	for _, fragment := range raw {
		if _, err := st.AppendFragment(ctx, userID, fragment); err != nil {
			return err
		}
	}
	if err := st.SaveProfile(ctx, userID, profile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Saved profile for user %s\n", userID)
	return nil
}
