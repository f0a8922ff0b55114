// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-generator/internal/llm"
)

// Config represents the CLI configuration loaded from a JSON file and the
// environment. All fields are optional; missing values use defaults or must
// be provided via CLI flags.
type Config struct {
	// Identity of the generation request
	UserID string `json:"user_id,omitempty"`
	JobID  string `json:"job_id,omitempty"`

	// Behavior
	APIKey       string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL  string `json:"database_url,omitempty"` // PostgreSQL connection URL; empty runs in-memory
	DocumentType string `json:"document_type,omitempty" validate:"omitempty,oneof=resume cover_letter"`
	Verbose      bool   `json:"verbose,omitempty"`

	// Assembly limits; zero means unlimited
	MaxExperiences int `json:"max_experiences,omitempty" validate:"gte=0"`
	MaxProjects    int `json:"max_projects,omitempty" validate:"gte=0"`

	// Per-stage model overrides; empty fields keep the defaults
	RankingModel           string  `json:"ranking_model,omitempty"`
	RankingTemperature     float64 `json:"ranking_temperature,omitempty" validate:"gte=0,lte=2"`
	EnhancementModel       string  `json:"enhancement_model,omitempty"`
	EnhancementTemperature float64 `json:"enhancement_temperature,omitempty" validate:"gte=0,lte=2"`
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

// ApplyEnv fills credential fields from the environment when the file left
// them empty. The file value wins so a config can pin its own key.
func (c *Config) ApplyEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
}

// Validate checks that the configuration has valid values.
// Required fields are handled by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// LLMParams returns the per-stage LLM parameters with config overrides
// applied on top of the defaults.
func (c *Config) LLMParams() llm.Params {
	params := llm.DefaultParams()
	if c.RankingModel != "" {
		params.Ranking.Model = c.RankingModel
	}
	if c.RankingTemperature != 0 {
		params.Ranking.Temperature = float32(c.RankingTemperature)
	}
	if c.EnhancementModel != "" {
		params.Enhancement.Model = c.EnhancementModel
	}
	if c.EnhancementTemperature != 0 {
		params.Enhancement.Temperature = float32(c.EnhancementTemperature)
	}
	return params
}
