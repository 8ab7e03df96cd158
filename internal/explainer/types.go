package explainer

import (
	"context"
	"errors"
)

var (
	ErrEmptyCode     = errors.New("code is required for this action")
	ErrUnknownAction = errors.New("unknown action")
	ErrEmptyBaseURL  = errors.New("backend base url is required")
)

// Phase is where a session sits in the request lifecycle.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhasePending   Phase = "pending"
	PhaseExplained Phase = "explained"
	PhaseDebugged  Phase = "debugged"
	PhaseErrored   Phase = "errored"
)

// State is a copy of everything a front end needs to draw the page.
type State struct {
	Code       string `json:"code"`
	UserPrompt string `json:"userPrompt"`
	Output     string `json:"output"`
	FixedCode  string `json:"fixedCode"`
	Mode       Action `json:"mode,omitempty"`
	Phase      Phase  `json:"phase"`
}

// reports whether a request is in flight
func (s State) Pending() bool {
	return s.Phase == PhasePending
}

// Backend answers a single code question.
type Backend interface {
	Ask(ctx context.Context, code, userPrompt string) (string, error)
}

// request body sent to {base}/api/openai
type askRequest struct {
	Code       string `json:"code"`
	UserPrompt string `json:"userPrompt"`
}

// response body; a missing or null result decodes to "", any other non-string
// result fails to decode
type askResponse struct {
	Result string `json:"result"`
}
