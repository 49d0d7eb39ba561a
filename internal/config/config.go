// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v10"
)

// Config represents the CLI configuration. Values are resolved in order:
// JSON file, then environment variables, then CLI flags. Later sources win.
type Config struct {
	// Paths
	Job    string `json:"job,omitempty" env:"CVFORGE_JOB"`         // Path to job posting text file
	JobURL string `json:"job_url,omitempty" env:"CVFORGE_JOB_URL"` // URL to fetch job posting from

	// Candidate info
	UserID string `json:"user_id,omitempty" env:"CVFORGE_USER_ID"` // User UUID (required for DB-backed runs)

	// Section budgets. Zero means default.
	MaxExperiences        int `json:"max_experiences,omitempty" env:"CVFORGE_MAX_EXPERIENCES"`
	MaxBulletsPerExp      int `json:"max_bullets_per_exp,omitempty" env:"CVFORGE_MAX_BULLETS_PER_EXP"`
	MaxTechnicalSkills    int `json:"max_technical_skills,omitempty" env:"CVFORGE_MAX_TECHNICAL_SKILLS"`
	MaxSoftSkills         int `json:"max_soft_skills,omitempty" env:"CVFORGE_MAX_SOFT_SKILLS"`
	MaxFormations         int `json:"max_formations,omitempty" env:"CVFORGE_MAX_FORMATIONS"`
	MaxLanguages          int `json:"max_languages,omitempty" env:"CVFORGE_MAX_LANGUAGES"`
	MaxCertifications     int `json:"max_certifications,omitempty" env:"CVFORGE_MAX_CERTIFICATIONS"`
	MaxProjects           int `json:"max_projects,omitempty" env:"CVFORGE_MAX_PROJECTS"`
	InferredConfidenceMin int `json:"inferred_confidence_min,omitempty" env:"CVFORGE_INFERRED_CONFIDENCE_MIN"`

	// Behavior
	APIKey      string `json:"api_key,omitempty" env:"GEMINI_API_KEY"`    // Gemini API key
	DatabaseURL string `json:"database_url,omitempty" env:"DATABASE_URL"` // PostgreSQL connection URL
	Verbose     bool   `json:"verbose,omitempty" env:"CVFORGE_VERBOSE"`   // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overlays environment variables onto the config.
// Set variables override file values.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// Validate checks that the configuration has valid values.
// Required fields are not checked here; flag validation handles those
// after merging.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	for name, v := range map[string]int{
		"max_experiences":      c.MaxExperiences,
		"max_bullets_per_exp":  c.MaxBulletsPerExp,
		"max_technical_skills": c.MaxTechnicalSkills,
		"max_soft_skills":      c.MaxSoftSkills,
		"max_formations":       c.MaxFormations,
		"max_languages":        c.MaxLanguages,
		"max_certifications":   c.MaxCertifications,
		"max_projects":         c.MaxProjects,
	} {
		if v < 0 {
			return fmt.Errorf("config error: '%s' must be non-negative", name)
		}
	}

	if c.InferredConfidenceMin < 0 || c.InferredConfidenceMin > 100 {
		return fmt.Errorf("config error: 'inferred_confidence_min' must be between 0 and 100")
	}

	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.UserID == "" {
		result.UserID = defaults.UserID
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	for _, p := range []struct {
		dst *int
		def int
	}{
		{&result.MaxExperiences, defaults.MaxExperiences},
		{&result.MaxBulletsPerExp, defaults.MaxBulletsPerExp},
		{&result.MaxTechnicalSkills, defaults.MaxTechnicalSkills},
		{&result.MaxSoftSkills, defaults.MaxSoftSkills},
		{&result.MaxFormations, defaults.MaxFormations},
		{&result.MaxLanguages, defaults.MaxLanguages},
		{&result.MaxCertifications, defaults.MaxCertifications},
		{&result.MaxProjects, defaults.MaxProjects},
		{&result.InferredConfidenceMin, defaults.InferredConfidenceMin},
	} {
		if *p.dst == 0 {
			*p.dst = p.def
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
