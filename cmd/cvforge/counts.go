package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/camille/cv-forge/internal/render"
)

var countsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Report pre-truncation section counts for a profile",
	Long:  "Render a profile with every budget lifted and report how many items each section holds, so a UI can bound its limit sliders before the real render.",
	RunE:  runCounts,
}

var countsProfile string

func init() {
	countsCmd.Flags().StringVarP(&countsProfile, "profile", "p", "", "Path to canonical profile JSON (required)")

	countsCmd.MarkFlagRequired("profile")

	rootCmd.AddCommand(countsCmd)
}

func runCounts(cmd *cobra.Command, args []string) error {
	profile, err := loadProfile(countsProfile)
	if err != nil {
		return err
	}

	cv := render.Convert(profile, render.UnlimitedOptions())
	return writeJSONTo(os.Stdout, cv.Totaux)
}
