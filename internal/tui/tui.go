package tui

import (
	"context"
	"strings"

	"codeberg.org/codeexplainer/server/internal/explainer"
	"codeberg.org/codeexplainer/server/internal/render"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	questionRows  = 3
	chromeRows    = 4
)

// returns a new TUI application with its own page session
func NewApp(opts Options) *Model {
	language := opts.Language
	if language == "" {
		language = render.DefaultLanguage
	}

	code := textarea.New()
	code.Placeholder = "Paste your code here..."
	code.ShowLineNumbers = true
	code.CharLimit = 0
	code.Focus()

	question := textinput.New()
	question.Placeholder = "Ask AI anything about your code..."
	question.Prompt = "> "
	question.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)
	question.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)
	question.CharLimit = 0

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorGreen)

	ctx, cancel := context.WithCancel(context.Background())

	m := &Model{
		explainer: opts.Explainer,
		session:   explainer.NewSession(),
		language:  language,
		markdown:  opts.Markdown,
		ctx:       ctx,
		cancel:    cancel,
		code:      code,
		question:  question,
		output:    viewport.New(defaultWidth, defaultHeight/2),
		spinner:   s,
		focus:     FocusCode,
	}

	m.layout(defaultWidth, defaultHeight)
	m.sync()

	return m
}

func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.layout(msg.Width, msg.Height)
		m.ready = true
		m.refreshOutput()
		return m, nil

	case spinner.TickMsg:
		// stop ticking once nothing is pending
		if !m.state.Pending() {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ActionSettledMsg:
		// a superseded call settles with a newer state, so always re-read
		m.sync()
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m *Model) View() string {
	if !m.ready {
		return infoStyle.Render("starting...")
	}

	var b strings.Builder

	header := titleStyle.Render("AI Code Explainer 🚀")
	if m.state.Pending() {
		header += "  " + m.spinner.View()
	}

	b.WriteString(header)
	b.WriteString("\n")

	codeBox, questionBox := borderStyle, borderStyle
	if m.focus == FocusCode {
		codeBox = focusedBorderStyle
	} else {
		questionBox = focusedBorderStyle
	}

	b.WriteString(codeBox.Render(m.code.View()))
	b.WriteString("\n")
	b.WriteString(questionBox.Render(m.question.View()))
	b.WriteString("\n")
	b.WriteString(m.output.View())
	b.WriteString("\n")
	b.WriteString(helpLine())

	return b.String()
}

// returns the session snapshot currently shown
func (m *Model) State() explainer.State {
	return m.state
}

// cancels any in-flight backend call
func (m *Model) Close() {
	m.cancel()
	m.session.Close()
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if action, ok := actionForKey(key, m.focus); ok {
		return m, m.runAction(action)
	}

	switch key {
	case "ctrl+c":
		m.Close()
		return m, tea.Quit

	case "tab":
		return m, m.toggleFocus()

	case "ctrl+l":
		m.session.ClearOutput()
		m.sync()
		return m, nil

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

// forwards msg to the focused input and mirrors the inputs into the session
func (m *Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.focus == FocusCode {
		m.code, cmd = m.code.Update(msg)
	} else {
		m.question, cmd = m.question.Update(msg)
	}

	m.session.SetInputs(m.code.Value(), m.question.Value())
	m.state = m.session.Snapshot()

	return m, cmd
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == FocusCode {
		m.focus = FocusQuestion
		m.code.Blur()
		return m.question.Focus()
	}

	m.focus = FocusCode
	m.question.Blur()
	return m.code.Focus()
}

// re-reads the session and redraws the output pane
func (m *Model) sync() {
	m.state = m.session.Snapshot()
	m.refreshOutput()
}

func (m *Model) layout(width, height int) {
	m.width = width
	m.height = height

	inner := max(width-4, 20)
	codeRows := max(height/3, 5)
	outputRows := max(height-codeRows-questionRows-chromeRows-2, 3)

	m.code.SetWidth(inner)
	m.code.SetHeight(codeRows)
	m.question.Width = inner - len(m.question.Prompt)
	m.output.Width = width
	m.output.Height = outputRows
}

func helpLine() string {
	hints := []struct{ key, action string }{
		{"ctrl+e", "explain"},
		{"ctrl+d", "debug"},
		{"ctrl+t", "complexity"},
		{"ctrl+p", "custom"},
	}

	parts := make([]string, 0, len(hints)+1)
	for _, h := range hints {
		parts = append(parts, keyStyle.Render(h.key)+" "+actionStyles[h.action].Render(h.action))
	}

	return strings.Join(parts, "  ") + "  " + helpStyle.Render("tab: focus  ctrl+l: clear  ctrl+c: quit")
}
