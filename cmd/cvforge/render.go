package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/camille/cv-forge/internal/jobcontext"
	"github.com/camille/cv-forge/internal/observability"
	"github.com/camille/cv-forge/internal/render"
	"github.com/camille/cv-forge/internal/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a canonical profile into a bounded CV document",
	Long:  "Render a canonical profile into a display-ready CV document: placeholders stripped, text repaired, languages consolidated, and every section truncated to its budget with pre-truncation counts preserved.",
	RunE:  runRender,
}

var (
	renderProfile string
	renderOut     string
	renderJobFile string
	renderJobURL  string
	renderRole    string

	renderMaxExperiences int
	renderMaxBullets     int
	renderMaxTechnical   int
	renderMaxSoft        int
	renderMaxFormations  int
	renderMaxLanguages   int
	renderMaxCerts       int
	renderMaxProjects    int
)

func init() {
	renderCmd.Flags().StringVarP(&renderProfile, "profile", "p", "", "Path to canonical profile JSON (required)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output path for the CV document (required)")
	renderCmd.Flags().StringVar(&renderJobFile, "job", "", "Path to job posting text file for relevance filtering")
	renderCmd.Flags().StringVar(&renderJobURL, "job-url", "", "URL of job posting page for relevance filtering")
	renderCmd.Flags().StringVar(&renderRole, "role", "", "Targeted role title (overrides the posting title)")

	renderCmd.Flags().IntVar(&renderMaxExperiences, "max-experiences", 0, "Experience budget (0 = default)")
	renderCmd.Flags().IntVar(&renderMaxBullets, "max-bullets", 0, "Bullets-per-experience budget (0 = default)")
	renderCmd.Flags().IntVar(&renderMaxTechnical, "max-technical", 0, "Technical skills budget (0 = default)")
	renderCmd.Flags().IntVar(&renderMaxSoft, "max-soft", 0, "Soft skills budget (0 = default)")
	renderCmd.Flags().IntVar(&renderMaxFormations, "max-formations", 0, "Formations budget (0 = default)")
	renderCmd.Flags().IntVar(&renderMaxLanguages, "max-languages", 0, "Languages budget (0 = default)")
	renderCmd.Flags().IntVar(&renderMaxCerts, "max-certifications", 0, "Certifications budget (0 = default)")
	renderCmd.Flags().IntVar(&renderMaxProjects, "max-projects", 0, "Projects budget (0 = default)")

	renderCmd.MarkFlagRequired("profile")
	renderCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	if renderJobFile != "" && renderJobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	profile, err := loadProfile(renderProfile)
	if err != nil {
		return err
	}

	job, err := resolveJobContext()
	if err != nil {
		return err
	}

	opts := render.Options{
		MaxExperiences:          firstPositive(renderMaxExperiences, cfg.MaxExperiences),
		MaxBulletsPerExperience: firstPositive(renderMaxBullets, cfg.MaxBulletsPerExp),
		MaxTechnicalSkills:      firstPositive(renderMaxTechnical, cfg.MaxTechnicalSkills),
		MaxSoftSkills:           firstPositive(renderMaxSoft, cfg.MaxSoftSkills),
		MaxFormations:           firstPositive(renderMaxFormations, cfg.MaxFormations),
		MaxLanguages:            firstPositive(renderMaxLanguages, cfg.MaxLanguages),
		MaxCertifications:       firstPositive(renderMaxCerts, cfg.MaxCertifications),
		MaxProjects:             firstPositive(renderMaxProjects, cfg.MaxProjects),
		InferredConfidenceMin:   float64(cfg.InferredConfidenceMin),
		Job:                     job,
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid render options: %w", err)
	}

	cv := render.Convert(profile, opts)
	if err := writeJSON(renderOut, cv); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Rendered CV document: %s\n", renderOut)

	if verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintJobContext(job)
		printer.PrintRenderSummary(cv)
	}
	return nil
}

// resolveJobContext builds the targeting context from the job flags.
// Returns nil when no job source is given.
func resolveJobContext() (*types.JobContext, error) {
	switch {
	case renderJobURL != "":
		resp, err := http.Get(renderJobURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch job posting: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to fetch job posting: HTTP %d", resp.StatusCode)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read job posting: %w", err)
		}
		job, err := jobcontext.FromHTML(string(body))
		if err != nil {
			return nil, err
		}
		if renderRole != "" {
			return jobcontext.FromText(renderRole, string(body)), nil
		}
		return job, nil

	case renderJobFile != "":
		body, err := os.ReadFile(renderJobFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read job posting: %w", err)
		}
		return jobcontext.FromText(renderRole, string(body)), nil

	case renderRole != "":
		return jobcontext.FromText(renderRole, ""), nil
	}
	return nil, nil
}

// firstPositive returns the first value greater than zero, or zero.
func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
