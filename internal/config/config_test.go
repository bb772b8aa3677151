package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/press-monitor/internal/notify"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfig(t, `{
		"companies": [
			{"name": "Acme", "url": "https://acme.example/newsroom"},
			{"name": "Thames Water", "url": "https://www.thameswater.co.uk/media", "extractor": "thameswater"}
		],
		"database_url": "monitor.db",
		"schedule_time": "07:45",
		"use_browser": true,
		"parallelism": 2
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Len(t, cfg.Companies, 2)
	assert.Equal(t, "Acme", cfg.Companies[0].Name)
	assert.Empty(t, cfg.Companies[0].Extractor)
	assert.Equal(t, "thameswater", cfg.Companies[1].Extractor)
	assert.Equal(t, "monitor.db", cfg.DatabaseURL)
	assert.Equal(t, "07:45", cfg.ScheduleTime)
	assert.True(t, cfg.UseBrowser)
	assert.Equal(t, 2, cfg.Parallelism)
	assert.Nil(t, cfg.Email)

	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, "{not json")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestValidate_RequiresCompanies(t *testing.T) {
	cfg := &Config{}
	require.Error(t, cfg.Validate())

	cfg.Companies = []CompanyConfig{{Name: "Acme"}} // missing URL
	require.Error(t, cfg.Validate())

	cfg.Companies = []CompanyConfig{{Name: "Acme", URL: "not a url"}}
	require.Error(t, cfg.Validate())

	cfg.Companies = []CompanyConfig{{Name: "Acme", URL: "https://acme.example"}}
	require.NoError(t, cfg.Validate())
}

func TestValidate_ScheduleTime(t *testing.T) {
	cfg := &Config{
		Companies:    []CompanyConfig{{Name: "Acme", URL: "https://acme.example"}},
		ScheduleTime: "9am",
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schedule_time")

	cfg.ScheduleTime = "23:59"
	require.NoError(t, cfg.Validate())
}

func TestValidate_Email(t *testing.T) {
	cfg := &Config{
		Companies: []CompanyConfig{{Name: "Acme", URL: "https://acme.example"}},
		Email: &notify.EmailConfig{
			SMTPHost: "smtp.example.com",
			SMTPPort: 465,
			Username: "monitor",
			From:     "monitor@example.com",
			To:       "not-an-address",
		},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")

	cfg.Email.To = "alerts@example.com"
	require.NoError(t, cfg.Validate())
}

func TestApplyDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg := &Config{APIKey: "file-key"}
	cfg.ApplyDefaults()

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, DefaultDatabaseURL, cfg.DatabaseURL)
	assert.Equal(t, "09:00", cfg.ScheduleTime)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg := &Config{APIKey: "file-key", DatabaseURL: "postgres://localhost/monitor", ScheduleTime: "06:00"}
	cfg.ApplyDefaults()

	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, "postgres://localhost/monitor", cfg.DatabaseURL)
	assert.Equal(t, "06:00", cfg.ScheduleTime)
}
