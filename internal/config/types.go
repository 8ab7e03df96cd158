package config

import "time"

type Config struct {
	BackendBaseURL    string
	Port              string
	Environment       string
	SessionSecret     string
	SessionTTL        time.Duration
	BackendTimeout    time.Duration
	BackendRateLimit  float64
	BackendBurst      int
	ActionRateLimit   string
	CORSOrigins       []string
	LogFile           string
	HighlightLanguage string
	BotDefense        bool
	RenderMarkdown    bool
}

// mirror of Config as read from CONFIG_FILE
type fileConfig struct {
	BackendBaseURL    string   `yaml:"backend_base_url"`
	Port              string   `yaml:"port"`
	Environment       string   `yaml:"environment"`
	SessionSecret     string   `yaml:"session_secret"`
	SessionTTL        string   `yaml:"session_ttl"`
	BackendTimeout    string   `yaml:"backend_timeout"`
	BackendRateLimit  *float64 `yaml:"backend_rate_limit"`
	BackendBurst      *int     `yaml:"backend_burst"`
	ActionRateLimit   string   `yaml:"action_rate_limit"`
	CORSOrigins       []string `yaml:"cors_origins"`
	LogFile           string   `yaml:"log_file"`
	HighlightLanguage string   `yaml:"highlight_language"`
	BotDefense        *bool    `yaml:"bot_defense"`
	RenderMarkdown    *bool    `yaml:"render_markdown"`
}
