package botdefense

import (
	"strings"
	"time"
)

// holds bot defense configuration
type Config struct {
	// whether bot defense is active
	Enabled bool

	// how long an IP stays trapped
	TrapTTL time.Duration

	// score at or above which an action request is treated as automated
	ScoreThreshold int

	// paths that only bots would access
	HoneypotPaths []string

	// paths that bypass bot defense (health checks, etc.)
	ExemptPaths []string
}

// returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Enabled:        true,
		TrapTTL:        time.Hour,
		ScoreThreshold: 40,
		HoneypotPaths: []string{
			// wordpress
			"/wp-admin",
			"/wp-login.php",
			"/xmlrpc.php",

			// config/secrets
			"/.env",
			"/.git",
			"/config.json",
			"/.aws/credentials",

			// admin panels
			"/admin",
			"/phpmyadmin",

			// backups
			"/backup.zip",
			"/db.sql",

			// api probing
			"/api/internal",
			"/api/admin",
			"/api/v1/internal",

			// never linked from the page
			"/api/v1/sessions/all",
			"/api/v1/export",
		},
		ExemptPaths: []string{
			"/health",
			"/api/v1/ping",
			"/api/v1/session/ws", // websocket connections are persistent, not burst requests
		},
	}
}

// checks if a path is a honeypot (prefix match)
func (c *Config) IsHoneypotPath(path string) bool {
	return matchesAny(path, c.HoneypotPaths)
}

// checks if a path bypasses bot defense
func (c *Config) IsExemptPath(path string) bool {
	return matchesAny(path, c.ExemptPaths)
}

func matchesAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
