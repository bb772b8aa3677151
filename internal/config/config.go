// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/press-monitor/internal/notify"
)

// DefaultDatabaseURL is the SQLite file used when no database URL is set.
const DefaultDatabaseURL = "press_releases.db"

// CompanyConfig names one monitored press release page.
type CompanyConfig struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url" validate:"required,url"`
	// Extractor selects the extraction variant; empty uses the default
	// heuristics.
	Extractor string `json:"extractor,omitempty"`
}

// Config represents the monitor configuration loaded from a JSON file.
// Companies is required; everything else has a default or is optional.
type Config struct {
	Companies []CompanyConfig `json:"companies" validate:"required,min=1,dive"`

	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // postgres:// URL or SQLite file path

	// Summarization
	APIKey string `json:"api_key,omitempty"` // Gemini API key; GEMINI_API_KEY overrides
	Model  string `json:"model,omitempty"`   // Gemini model name

	// Behavior
	ScheduleTime string `json:"schedule_time,omitempty"` // Daily check time, "HH:MM"
	UseBrowser   bool   `json:"use_browser,omitempty"`   // Use headless browser for SPA sites
	Parallelism  int    `json:"parallelism,omitempty"`   // Concurrent company checks
	Verbose      bool   `json:"verbose,omitempty"`       // Print detailed debug information

	// Email enables SMTP notifications; when nil, alerts go to the log.
	Email *notify.EmailConfig `json:"email,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.ScheduleTime != "" {
		if _, err := time.Parse("15:04", c.ScheduleTime); err != nil {
			return fmt.Errorf("config error: 'schedule_time' must be HH:MM: %w", err)
		}
	}

	if c.Parallelism < 0 {
		return fmt.Errorf("config error: 'parallelism' must be non-negative")
	}

	if c.Email != nil {
		if err := validator.New().Struct(c.Email); err != nil {
			return fmt.Errorf("config error: email: %w", err)
		}
	}

	return nil
}

// ApplyDefaults fills unset fields. The GEMINI_API_KEY environment variable
// takes precedence over the file's api_key so the key can stay out of the
// config file.
func (c *Config) ApplyDefaults() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.APIKey = key
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = DefaultDatabaseURL
	}
	if c.ScheduleTime == "" {
		c.ScheduleTime = "09:00"
	}
}
