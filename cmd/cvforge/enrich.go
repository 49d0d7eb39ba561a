package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/camille/cv-forge/internal/enrich"
	"github.com/camille/cv-forge/internal/observability"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Infer tacit responsibilities and skills with an LLM",
	Long:  "Send the profile's experience history to Gemini and attach the inferred responsibilities and tacit skills, each with a confidence score and a justification quoted from the source. Invalid model output degrades to an empty enrichment block.",
	RunE:  runEnrich,
}

var (
	enrichProfile string
	enrichOut     string
	enrichModel   string
)

func init() {
	enrichCmd.Flags().StringVarP(&enrichProfile, "profile", "p", "", "Path to canonical profile JSON (required)")
	enrichCmd.Flags().StringVarP(&enrichOut, "out", "o", "", "Output path for the enriched profile (required)")
	enrichCmd.Flags().StringVar(&enrichModel, "model", enrich.DefaultModel, "Gemini model name")

	enrichCmd.MarkFlagRequired("profile")
	enrichCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("enrich requires an API key; set GEMINI_API_KEY or api_key in the config file")
	}

	profile, err := loadProfile(enrichProfile)
	if err != nil {
		return err
	}

	client, err := enrich.NewGeminiClient(cmd.Context(), cfg.APIKey, enrichModel)
	if err != nil {
		return err
	}
	defer client.Close()

	profile.ContexteEnrichi = enrich.Generate(cmd.Context(), client, profile)

	if err := writeJSON(enrichOut, profile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Enriched profile: %s\n", enrichOut)

	if verbose {
		observability.NewPrinter(os.Stdout).PrintProfileSummary(profile)
	}
	return nil
}
