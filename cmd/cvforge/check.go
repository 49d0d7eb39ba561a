package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/camille/cv-forge/internal/observability"
	"github.com/camille/cv-forge/internal/quality"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Score a canonical profile against content quality heuristics",
	Long:  "Score a canonical profile against fixed content heuristics (pitch length, quantified bullets, inferred-skill grounding) and print a report. Exits with an error when a critical finding is present.",
	RunE:  runCheck,
}

var (
	checkProfile string
	checkJSON    bool
)

func init() {
	checkCmd.Flags().StringVarP(&checkProfile, "profile", "p", "", "Path to canonical profile JSON (required)")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Emit the report as JSON instead of text")

	checkCmd.MarkFlagRequired("profile")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	profile, err := loadProfile(checkProfile)
	if err != nil {
		return err
	}

	report := quality.Validate(profile)

	if checkJSON {
		if err := writeJSONTo(os.Stdout, report); err != nil {
			return err
		}
	} else {
		observability.NewPrinter(os.Stdout).PrintReport(report.Format())
	}

	if !report.IsValid {
		return fmt.Errorf("profile has critical quality findings")
	}
	return nil
}
