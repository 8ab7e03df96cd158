package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultBackendBaseURL is the placeholder used when no backend is configured.
const DefaultBackendBaseURL = "https://your-backend.onrender.com"

// loads configuration from an optional YAML file, then environment variables
func LoadEnvironmentVariables() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loads the same sources as LoadEnvironmentVariables but only checks the
// settings a backend client needs
func LoadClientConfig() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}

	if err := cfg.ValidateBackend(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// returns the configuration used when nothing is set
func Defaults() *Config {
	return &Config{
		BackendBaseURL:    DefaultBackendBaseURL,
		Port:              "8080",
		Environment:       "development",
		SessionTTL:        2 * time.Hour,
		BackendRateLimit:  5,
		BackendBurst:      5,
		ActionRateLimit:   "30-M",
		HighlightLanguage: "javascript",
		BotDefense:        true,
	}
}

// reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate checks cross-field requirements.
func (c *Config) Validate() error {
	if err := c.ValidateBackend(); err != nil {
		return err
	}

	if c.IsProduction() && c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET environment variable is required in production")
	}

	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	return nil
}

// ValidateBackend checks the settings a backend client needs. Callers that
// override fields after loading run it again.
func (c *Config) ValidateBackend() error {
	if strings.TrimSpace(c.BackendBaseURL) == "" {
		return fmt.Errorf("BACKEND_BASE_URL must not be empty")
	}

	if !strings.HasPrefix(c.BackendBaseURL, "http://") && !strings.HasPrefix(c.BackendBaseURL, "https://") {
		return fmt.Errorf("BACKEND_BASE_URL must start with http:// or https://, got %q", c.BackendBaseURL)
	}

	if c.BackendTimeout < 0 {
		return fmt.Errorf("BACKEND_TIMEOUT must not be negative")
	}

	return nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var f fileConfig
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	setString(&c.BackendBaseURL, f.BackendBaseURL)
	setString(&c.Port, f.Port)
	setString(&c.Environment, f.Environment)
	setString(&c.SessionSecret, f.SessionSecret)
	setString(&c.ActionRateLimit, f.ActionRateLimit)
	setString(&c.LogFile, f.LogFile)
	setString(&c.HighlightLanguage, f.HighlightLanguage)

	if len(f.CORSOrigins) > 0 {
		c.CORSOrigins = f.CORSOrigins
	}

	if f.BackendRateLimit != nil {
		c.BackendRateLimit = *f.BackendRateLimit
	}

	if f.BackendBurst != nil {
		c.BackendBurst = *f.BackendBurst
	}

	if f.BotDefense != nil {
		c.BotDefense = *f.BotDefense
	}

	if f.RenderMarkdown != nil {
		c.RenderMarkdown = *f.RenderMarkdown
	}

	if err := setDuration(&c.SessionTTL, f.SessionTTL, "session_ttl"); err != nil {
		return err
	}

	return setDuration(&c.BackendTimeout, f.BackendTimeout, "backend_timeout")
}

func (c *Config) applyEnv() error {
	setString(&c.BackendBaseURL, os.Getenv("BACKEND_BASE_URL"))
	setString(&c.Port, os.Getenv("PORT"))
	setString(&c.Environment, os.Getenv("ENVIRONMENT"))
	setString(&c.SessionSecret, os.Getenv("SESSION_SECRET"))
	setString(&c.ActionRateLimit, os.Getenv("ACTION_RATE_LIMIT"))
	setString(&c.LogFile, os.Getenv("LOG_FILE"))
	setString(&c.HighlightLanguage, os.Getenv("HIGHLIGHT_LANGUAGE"))

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.CORSOrigins = splitList(origins)
	}

	if v := os.Getenv("BACKEND_RATE_LIMIT"); v != "" {
		val, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid BACKEND_RATE_LIMIT %q: %w", v, err)
		}
		c.BackendRateLimit = val
	}

	if v := os.Getenv("BACKEND_BURST"); v != "" {
		val, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid BACKEND_BURST %q: %w", v, err)
		}
		c.BackendBurst = val
	}

	if v := os.Getenv("BOT_DEFENSE"); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid BOT_DEFENSE %q: %w", v, err)
		}
		c.BotDefense = val
	}

	if v := os.Getenv("RENDER_MARKDOWN"); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid RENDER_MARKDOWN %q: %w", v, err)
		}
		c.RenderMarkdown = val
	}

	if err := setDuration(&c.SessionTTL, os.Getenv("SESSION_TTL"), "SESSION_TTL"); err != nil {
		return err
	}

	return setDuration(&c.BackendTimeout, os.Getenv("BACKEND_TIMEOUT"), "BACKEND_TIMEOUT")
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v, name string) error {
	if v = strings.TrimSpace(v); v == "" {
		return nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, v, err)
	}

	*dst = d
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
