package main

import (
	"codeberg.org/codeexplainer/server/internal/botdefense"
	"codeberg.org/codeexplainer/server/internal/config"
	"codeberg.org/codeexplainer/server/internal/explainer"
	"codeberg.org/codeexplainer/server/internal/sessions"
	"github.com/gin-gonic/gin"
)

// holds all dependencies and state for the web server
type Server struct {
	config    *config.Config
	client    *explainer.Client
	explainer *explainer.Explainer
	sessions  *sessions.Manager
	defense   *botdefense.Defense
	router    *gin.Engine
}
