package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/camille/cv-forge/internal/normalize"
	"github.com/camille/cv-forge/internal/store"
	"github.com/camille/cv-forge/internal/types"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Rebuild a canonical profile from stored fragments",
	Long:  "Replay a user's stored extraction fragments in insertion order, rebuild the canonical profile from scratch, and persist the result. Use after a normalization change to refresh stored profiles.",
	RunE:  runReplay,
}

var (
	replayUserID string
	replayOut    string
	replaySave   bool
)

func init() {
	replayCmd.Flags().StringVar(&replayUserID, "user", "", "User UUID (required)")
	replayCmd.Flags().StringVarP(&replayOut, "out", "o", "", "Optional output path for the rebuilt profile")
	replayCmd.Flags().BoolVar(&replaySave, "save", false, "Persist the rebuilt profile back to the database")

	replayCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("replay requires a configured database_url")
	}
	userID, err := uuid.Parse(replayUserID)
	if err != nil {
		return fmt.Errorf("invalid user UUID %q: %w", replayUserID, err)
	}

	ctx := cmd.Context()
	st, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	fragments, err := st.ListFragments(ctx, userID)
	if err != nil {
		return err
	}
	if len(fragments) == 0 {
		return fmt.Errorf("no stored fragments for user %s", userID)
	}

	var profile *types.CanonicalProfile
	for _, data := range fragments {
		profile = normalize.Normalize(profile, normalize.ParseFragment(data))
	}
	fmt.Fprintf(os.Stdout, "Replayed %d fragments for user %s\n", len(fragments), userID)

	if replayOut != "" {
		if err := writeJSON(replayOut, profile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Wrote rebuilt profile: %s\n", replayOut)
	}
	if replaySave {
		if err := st.SaveProfile(ctx, userID, profile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Saved rebuilt profile\n")
	}
	return nil
}
