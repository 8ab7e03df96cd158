package web

import (
	"context"
	"net/http"

	"codeberg.org/codeexplainer/server/internal/errors"
	"codeberg.org/codeexplainer/server/internal/explainer"
	"codeberg.org/codeexplainer/server/internal/logger"
	"codeberg.org/codeexplainer/server/internal/render"
	"github.com/gin-gonic/gin"
)

// Handlers serves the page and the JSON API over page sessions.
type Handlers struct {
	explainer *explainer.Explainer
	language  string
	markdown  bool
}

// creates handlers that run actions through ex; language selects the
// highlighter for corrected code and markdown turns on markdown rendering of
// results, which are plain text otherwise
func NewHandlers(ex *explainer.Explainer, language string, markdown bool) *Handlers {
	if language == "" {
		language = render.DefaultLanguage
	}

	return &Handlers{explainer: ex, language: language, markdown: markdown}
}

// renders the page for the caller's session
func (h *Handlers) Page(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		errors.SessionNotFound(c)
		return
	}

	data, err := h.pageData(newView(session.ID, session.State.Snapshot()))
	if err != nil {
		errors.InternalError(c, "failed to render page", err)
		return
	}

	c.HTML(http.StatusOK, "index.html", data)
}

// runs the action named in the path with the submitted form, then redirects
// back to the page
func (h *Handlers) SubmitForm(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		errors.SessionNotFound(c)
		return
	}

	action, err := explainer.ParseAction(c.Param("action"))
	if err != nil {
		errors.UnknownAction(c, err)
		return
	}

	var form ActionForm
	if err := c.ShouldBind(&form); err != nil {
		errors.BadRequest(c, "invalid form", err)
		return
	}

	session.State.SetInputs(form.Code, form.UserPrompt)
	h.explainer.Run(h.actionContext(c, session.ID), session.State, action)

	c.Redirect(http.StatusSeeOther, "/")
}

// returns the caller's session state
func (h *Handlers) GetSession(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		errors.SessionNotFound(c)
		return
	}

	c.JSON(http.StatusOK, newView(session.ID, session.State.Snapshot()))
}

// replaces the code and question fields
func (h *Handlers) UpdateInputs(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		errors.SessionNotFound(c)
		return
	}

	var req UpdateInputsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.ValidationError(c, err)
		return
	}

	session.State.SetInputs(req.Code, req.UserPrompt)
	c.JSON(http.StatusOK, newView(session.ID, session.State.Snapshot()))
}

// runs one action and answers with the state once it settles. An empty-code
// warning or a failed backend call is reported in the state, not as an
// HTTP error.
func (h *Handlers) RunAction(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		errors.SessionNotFound(c)
		return
	}

	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.ValidationError(c, err)
		return
	}

	action, err := explainer.ParseAction(req.Action)
	if err != nil {
		errors.UnknownAction(c, err)
		return
	}

	current := session.State.Snapshot()
	code, prompt := current.Code, current.UserPrompt

	if req.Code != nil {
		code = *req.Code
	}

	if req.UserPrompt != nil {
		prompt = *req.UserPrompt
	}

	session.State.SetInputs(code, prompt)
	state := h.explainer.Run(h.actionContext(c, session.ID), session.State, action)

	c.JSON(http.StatusOK, newView(session.ID, state))
}

// backend calls outlive the HTTP request that started them; only a newer
// action cancels them
func (h *Handlers) actionContext(c *gin.Context, sessionID string) context.Context {
	ctx := context.WithoutCancel(c.Request.Context())
	return logger.WithContext(ctx, logger.With("session_id", sessionID))
}

func (h *Handlers) pageData(view View) (PageData, error) {
	data := PageData{
		View:     view,
		Actions:  actionButtons(),
		Language: h.language,
		Markdown: h.markdown,
	}

	if view.Output != "" && h.markdown {
		html, err := render.MarkdownHTML(view.Output)
		if err != nil {
			return PageData{}, err
		}
		data.OutputHTML = html
	}

	if view.FixedCode != "" {
		if view.Diff != nil {
			data.Diff = *view.Diff
		}

		html, err := render.HighlightHTML(view.FixedCode, h.language)
		if err != nil {
			return PageData{}, err
		}
		data.FixedCodeHTML = html
	}

	return data, nil
}

func actionButtons() []ActionButton {
	classes := map[explainer.Action]string{
		explainer.ActionExplain:    "btn-explain",
		explainer.ActionDebug:      "btn-debug",
		explainer.ActionComplexity: "btn-complexity",
		explainer.ActionCustom:     "btn-custom",
	}

	buttons := make([]ActionButton, 0, len(explainer.Actions))
	for _, action := range explainer.Actions {
		buttons = append(buttons, ActionButton{
			Action: string(action),
			Label:  action.Label(),
			Class:  classes[action],
		})
	}

	return buttons
}
