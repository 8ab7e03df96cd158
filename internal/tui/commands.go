package tui

import (
	"codeberg.org/codeexplainer/server/internal/explainer"
	tea "github.com/charmbracelet/bubbletea"
)

// performs the backend call for ticket off the UI goroutine
func execute(ex *explainer.Explainer, session *explainer.Session, ticket *explainer.Ticket) tea.Cmd {
	return func() tea.Msg {
		return ActionSettledMsg{State: ex.Execute(session, ticket)}
	}
}

// copies the inputs into the session and starts action. The returned command
// is nil when the action was refused, e.g. for empty code.
func (m *Model) runAction(action explainer.Action) tea.Cmd {
	m.session.SetInputs(m.code.Value(), m.question.Value())

	ticket, err := m.session.Begin(m.ctx, action)
	m.sync()

	if err != nil {
		return nil
	}

	return tea.Batch(m.spinner.Tick, execute(m.explainer, m.session, ticket))
}

// returns the action bound to a key, if any
func actionForKey(key string, focus Focus) (explainer.Action, bool) {
	switch key {
	case "ctrl+e":
		return explainer.ActionExplain, true
	case "ctrl+d":
		return explainer.ActionDebug, true
	case "ctrl+t":
		return explainer.ActionComplexity, true
	case "ctrl+p":
		return explainer.ActionCustom, true
	case "enter":
		if focus == FocusQuestion {
			return explainer.ActionCustom, true
		}
	}

	return "", false
}
