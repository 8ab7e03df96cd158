package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clears every key the loader reads so the host environment cannot leak in
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"BACKEND_BASE_URL", "PORT", "ENVIRONMENT", "SESSION_SECRET", "SESSION_TTL",
		"BACKEND_TIMEOUT", "BACKEND_RATE_LIMIT", "BACKEND_BURST", "ACTION_RATE_LIMIT",
		"CORS_ORIGINS", "LOG_FILE", "HIGHLIGHT_LANGUAGE", "CONFIG_FILE", "BOT_DEFENSE",
		"RENDER_MARKDOWN",
	} {
		t.Setenv(key, "")
	}

	// keep godotenv away from any .env next to the package
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadEnvironmentVariables_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadEnvironmentVariables()
	require.NoError(t, err)

	assert.Equal(t, DefaultBackendBaseURL, cfg.BackendBaseURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Zero(t, cfg.BackendTimeout)
	assert.Equal(t, "30-M", cfg.ActionRateLimit)
	assert.Equal(t, "javascript", cfg.HighlightLanguage)
	assert.True(t, cfg.BotDefense)
	assert.False(t, cfg.RenderMarkdown)
	assert.False(t, cfg.IsProduction())
}

func TestLoadEnvironmentVariables_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("BACKEND_BASE_URL", "http://localhost:5000")
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("BACKEND_TIMEOUT", "45s")
	t.Setenv("BACKEND_RATE_LIMIT", "2.5")
	t.Setenv("BACKEND_BURST", "3")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("BOT_DEFENSE", "false")
	t.Setenv("RENDER_MARKDOWN", "true")

	cfg, err := LoadEnvironmentVariables()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.BackendBaseURL)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 45*time.Second, cfg.BackendTimeout)
	assert.Equal(t, 2.5, cfg.BackendRateLimit)
	assert.Equal(t, 3, cfg.BackendBurst)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.False(t, cfg.BotDefense)
	assert.True(t, cfg.RenderMarkdown)
}

func TestLoadEnvironmentVariables_File(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
backend_base_url: https://explainer.example.com
port: "7000"
session_ttl: 10m
backend_rate_limit: 0
cors_origins:
  - https://app.example.com
highlight_language: python
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7001")

	cfg, err := LoadEnvironmentVariables()
	require.NoError(t, err)

	assert.Equal(t, "https://explainer.example.com", cfg.BackendBaseURL)
	assert.Equal(t, "7001", cfg.Port, "env should override the file")
	assert.Equal(t, 10*time.Minute, cfg.SessionTTL)
	assert.Zero(t, cfg.BackendRateLimit)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, "python", cfg.HighlightLanguage)
}

func TestLoadEnvironmentVariables_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad scheme", map[string]string{"BACKEND_BASE_URL": "ftp://x"}, "BACKEND_BASE_URL"},
		{"bad duration", map[string]string{"SESSION_TTL": "soon"}, "SESSION_TTL"},
		{"zero ttl", map[string]string{"SESSION_TTL": "0s"}, "SESSION_TTL"},
		{"negative timeout", map[string]string{"BACKEND_TIMEOUT": "-1s"}, "BACKEND_TIMEOUT"},
		{"bad rate", map[string]string{"BACKEND_RATE_LIMIT": "fast"}, "BACKEND_RATE_LIMIT"},
		{"bad burst", map[string]string{"BACKEND_BURST": "1.5"}, "BACKEND_BURST"},
		{"bad bot defense", map[string]string{"BOT_DEFENSE": "maybe"}, "BOT_DEFENSE"},
		{"bad render markdown", map[string]string{"RENDER_MARKDOWN": "sometimes"}, "RENDER_MARKDOWN"},
		{"production without secret", map[string]string{"ENVIRONMENT": "production"}, "SESSION_SECRET"},
		{"missing file", map[string]string{"CONFIG_FILE": "/does/not/exist.yaml"}, "config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadEnvironmentVariables()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadClientConfig_SkipsServerChecks(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := LoadClientConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())

	t.Setenv("BACKEND_BASE_URL", "not-a-url")
	_, err = LoadClientConfig()
	assert.Error(t, err)
}

func TestValidateBackend(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		timeout time.Duration
		wantErr bool
	}{
		{"https", "https://explainer.test", 0, false},
		{"http with port", "http://localhost:3000", time.Second, false},
		{"missing scheme", "localhost:3000", 0, true},
		{"blank", "  ", 0, true},
		{"negative timeout", "http://localhost:3000", -time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			cfg.BackendBaseURL = tt.url
			cfg.BackendTimeout = tt.timeout

			err := cfg.ValidateBackend()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
