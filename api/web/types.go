package web

import (
	"html/template"

	"codeberg.org/codeexplainer/server/internal/explainer"
	"codeberg.org/codeexplainer/server/internal/render"
)

// View is the JSON form of a session's state.
type View struct {
	SessionID  string             `json:"session_id"`
	Code       string             `json:"code"`
	UserPrompt string             `json:"userPrompt"`
	Output     string             `json:"output"`
	FixedCode  string             `json:"fixedCode"`
	Mode       string             `json:"mode,omitempty"`
	Phase      string             `json:"phase"`
	Pending    bool               `json:"pending"`
	Diff       *render.DiffResult `json:"diff,omitempty"`
}

// UpdateInputsRequest replaces the code and question fields.
type UpdateInputsRequest struct {
	Code       string `json:"code"`
	UserPrompt string `json:"userPrompt"`
}

// ActionForm is the page form posted to /actions/:action.
type ActionForm struct {
	Code       string `form:"code"`
	UserPrompt string `form:"userPrompt"`
}

// ActionRequest runs one action. Omitted inputs keep their current value.
type ActionRequest struct {
	Action     string  `json:"action" binding:"required"`
	Code       *string `json:"code"`
	UserPrompt *string `json:"userPrompt"`
}

// PageData is what index.html is executed with.
type PageData struct {
	View    View
	Actions []ActionButton

	// only set when results are rendered as markdown
	OutputHTML    template.HTML
	Diff          render.DiffResult
	FixedCodeHTML template.HTML
	Language      string
	Markdown      bool
}

// ActionButton is one of the four buttons under the inputs.
type ActionButton struct {
	Action string
	Label  string
	Class  string
}

func newView(sessionID string, state explainer.State) View {
	view := View{
		SessionID:  sessionID,
		Code:       state.Code,
		UserPrompt: state.UserPrompt,
		Output:     state.Output,
		FixedCode:  state.FixedCode,
		Mode:       string(state.Mode),
		Phase:      string(state.Phase),
		Pending:    state.Pending(),
	}

	if state.FixedCode != "" {
		diff := render.Diff(state.Code, state.FixedCode)
		view.Diff = &diff
	}

	return view
}
