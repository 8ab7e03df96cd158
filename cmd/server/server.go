package main

import (
	"fmt"

	"codeberg.org/codeexplainer/server/internal/botdefense"
	"codeberg.org/codeexplainer/server/internal/config"
	"codeberg.org/codeexplainer/server/internal/explainer"
	"codeberg.org/codeexplainer/server/internal/logger"
	"codeberg.org/codeexplainer/server/internal/sessions"
	"github.com/gin-gonic/gin"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	client, err := explainer.NewClient(explainer.ClientConfig{
		BaseURL:   cfg.BackendBaseURL,
		Timeout:   cfg.BackendTimeout,
		RateLimit: cfg.BackendRateLimit,
		Burst:     cfg.BackendBurst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	defenseConfig := botdefense.DefaultConfig()
	defenseConfig.Enabled = cfg.BotDefense

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	server := &Server{
		config:    cfg,
		client:    client,
		explainer: explainer.New(client),
		sessions:  sessions.NewManager(cfg.SessionTTL, 0),
		defense:   botdefense.New(defenseConfig, nil),
		router:    router,
	}

	if err := RegisterRoutes(router, server); err != nil {
		server.sessions.Close()
		return nil, err
	}

	logger.Info("server configured",
		"backend", client.Endpoint(),
		"environment", cfg.Environment,
		"session_ttl", cfg.SessionTTL,
		"backend_timeout", cfg.BackendTimeout,
		"bot_defense", cfg.BotDefense,
	)

	return server, nil
}

// releases in-memory sessions and cancels in-flight backend calls
func (s *Server) Close() {
	s.sessions.Close()
}
