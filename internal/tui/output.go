package tui

import (
	"strings"

	"codeberg.org/codeexplainer/server/internal/explainer"
	"codeberg.org/codeexplainer/server/internal/logger"
	"codeberg.org/codeexplainer/server/internal/render"
	"github.com/charmbracelet/glamour"
)

// redraws the output pane from the current state
func (m *Model) refreshOutput() {
	m.output.SetContent(m.renderOutput())
	m.output.GotoTop()
}

func (m *Model) renderOutput() string {
	var b strings.Builder

	switch {
	case m.state.Output == "" && m.state.FixedCode == "":
		b.WriteString(infoStyle.Render("paste code above, then pick an action below."))

	case m.state.Output != "":
		b.WriteString(outputHeadingStyle.Render("AI Response:"))
		b.WriteString("\n")
		b.WriteString(m.renderResponse())
	}

	if m.state.FixedCode != "" {
		if m.state.Output != "" {
			b.WriteString("\n\n")
		}
		b.WriteString(m.renderFixedCode())
	}

	return b.String()
}

func (m *Model) renderResponse() string {
	text := m.state.Output

	switch m.state.Phase {
	case explainer.PhaseErrored:
		return errorStyle.Render(text)

	case explainer.PhaseExplained:
		if !m.markdown {
			return text
		}

		r := m.markdownRenderer()
		if r == nil {
			return text
		}

		out, err := r.Render(text)
		if err != nil {
			logger.Debug("markdown render failed", "error", err)
			return text
		}
		return strings.TrimRight(out, "\n")

	default:
		// placeholder or empty-code warning
		return infoStyle.Render(text)
	}
}

func (m *Model) renderFixedCode() string {
	var b strings.Builder

	diff := render.Diff(m.state.Code, m.state.FixedCode)

	b.WriteString(fixedHeadingStyle.Render("🔧 Debugged Code:"))
	b.WriteString("  ")
	b.WriteString(infoStyle.Render(diff.Stats()))
	b.WriteString("\n")

	for _, line := range strings.Split(strings.TrimSuffix(diff.UnifiedText(), "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+ "):
			b.WriteString(diffAddedStyle.Render(line))
		case strings.HasPrefix(line, "- "):
			b.WriteString(diffRemovedStyle.Render(line))
		default:
			b.WriteString(diffEqualStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(correctedHeadingStyle.Render("✅ Corrected Code:"))
	b.WriteString("\n")

	highlighted, err := render.HighlightTerminal(m.state.FixedCode, m.language)
	if err != nil {
		logger.Debug("highlight failed", "error", err)
		highlighted = m.state.FixedCode
	}
	b.WriteString(strings.TrimRight(highlighted, "\n"))

	return b.String()
}

// returns a renderer wrapped to the output width, rebuilt on resize
func (m *Model) markdownRenderer() *glamour.TermRenderer {
	width := max(m.output.Width-2, 20)
	if m.glamourRenderer != nil && m.rendererWidth == width {
		return m.glamourRenderer
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		logger.Warn("failed to create markdown renderer", "error", err)
		return nil
	}

	m.glamourRenderer = r
	m.rendererWidth = width
	return r
}
