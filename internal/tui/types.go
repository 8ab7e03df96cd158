package tui

import (
	"context"

	"codeberg.org/codeexplainer/server/internal/explainer"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
)

// which input receives keystrokes
type Focus int

const (
	FocusCode Focus = iota
	FocusQuestion
)

// configures a new TUI application
type Options struct {
	Explainer *explainer.Explainer
	Language  string

	// render explanations as markdown instead of plain text
	Markdown bool
}

// main TUI application model
type Model struct {
	explainer *explainer.Explainer
	session   *explainer.Session
	language  string
	markdown  bool

	ctx    context.Context
	cancel context.CancelFunc

	code     textarea.Model
	question textinput.Model
	output   viewport.Model
	spinner  spinner.Model

	glamourRenderer *glamour.TermRenderer
	rendererWidth   int

	focus  Focus
	state  explainer.State
	width  int
	height int
	ready  bool
}

// sent when a backend call for this model's session settles
type ActionSettledMsg struct {
	State explainer.State
}
