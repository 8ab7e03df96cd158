package botdefense

import (
	"context"
	"time"

	"codeberg.org/codeexplainer/server/internal/errors"
	"codeberg.org/codeexplainer/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// orchestrates all bot defense components
type Defense struct {
	config *Config
	store  *Store
}

// creates a new bot defense system
func New(config *Config, store *Store) *Defense {
	if config == nil {
		config = DefaultConfig()
	}

	if store == nil {
		store = NewStore(config.TrapTTL)
	}

	return &Defense{config: config, store: store}
}

// returns a Gin middleware that traps probing clients and blocks trapped IPs
func (d *Defense) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !d.config.Enabled {
			c.Next()
			return
		}

		ip := c.ClientIP()
		path := c.Request.URL.Path

		// exempt paths bypass all checks
		if d.config.IsExemptPath(path) {
			c.Next()
			return
		}

		if d.config.IsHoneypotPath(path) {
			logger.Warn("honeypot triggered", "ip", ip, "path", path)
			d.store.TrapIP(ip, ReasonHoneypot)
			errors.NotFound(c, "")
			c.Abort()
			return
		}

		if IsSuspiciousPath(path) {
			logger.Warn("suspicious path accessed", "ip", ip, "path", path)
			d.store.TrapIP(ip, ReasonSuspiciousPath)
			errors.NotFound(c, "")
			c.Abort()
			return
		}

		if trapped, reason := d.store.IsTrapped(ip); trapped {
			logger.Debug("trapped IP request blocked", "ip", ip, "reason", reason)
			errors.Forbidden(c, "")
			return
		}

		c.Next()
	}
}

// returns a Gin middleware for the form action route that refuses
// submissions that do not look like they came from a browser
func (d *Defense) ActionGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !d.config.Enabled {
			c.Next()
			return
		}

		signals := DetectBot(c.Request)
		if signals.Score >= d.config.ScoreThreshold {
			ip := c.ClientIP()

			logger.Warn("bot-like action request detected",
				"ip", ip,
				"path", c.Request.URL.Path,
				"score", signals.Score,
				"pattern", signals.BotPatternMatch,
				"missing_headers", signals.MissingHeaders,
				"user_agent", c.Request.Header.Get("User-Agent"),
			)

			d.store.TrapIP(ip, ReasonBotPattern)
			errors.Forbidden(c, "")
			return
		}

		c.Next()
	}
}

// starts a background goroutine that drops expired traps until ctx ends
func (d *Defense) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := d.store.Sweep(); removed > 0 {
					logger.Debug("expired bot traps removed", "count", removed)
				}
			}
		}
	}()
}
