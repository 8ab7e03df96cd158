package main

import (
	"fmt"

	"codeberg.org/codeexplainer/server/api/rest/health"
	"codeberg.org/codeexplainer/server/api/web"
	"github.com/gin-gonic/gin"
)

// sets up the page, API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) error {
	router.Use(server.defense.Middleware())

	router.GET("/health", health.Handler(server.sessions))
	router.GET("/api/v1/ping", health.PingHandler)

	actionLimit, err := web.ActionRateLimit(server.config.ActionRateLimit)
	if err != nil {
		return err
	}

	secret := []byte(server.config.SessionSecret)
	if len(secret) == 0 {
		// development only; Validate rejects an empty secret in production
		secret = []byte("codeexplainer-development-secret")
	}

	deps := web.Dependencies{
		Explainer:   server.explainer,
		Sessions:    server.sessions,
		CookieStore: web.NewCookieStore(secret, server.config.IsProduction(), server.config.SessionTTL),
		Language:    server.config.HighlightLanguage,
		CORSOrigins: server.config.CORSOrigins,
		Markdown:    server.config.RenderMarkdown,
		ActionLimit: actionLimit,
		FormGuard:   server.defense.ActionGuard(),
	}

	if err := web.RegisterRoutes(router, deps); err != nil {
		return fmt.Errorf("failed to register web routes: %w", err)
	}

	return nil
}
