package explainer

import (
	"fmt"
	"strings"
)

// represents one of the request types a user can send
type Action string

const (
	ActionExplain    Action = "explain"
	ActionDebug      Action = "debug"
	ActionComplexity Action = "complexity"
	ActionCustom     Action = "custom"
)

// fixed instructions sent to the backend for the canned actions
const (
	InstructionExplain    = "Explain this code in detail."
	InstructionDebug      = "Debug this code and suggest fixes. Return only the corrected code."
	InstructionComplexity = "Find the time complexity (best, average, worst) of this code."
)

// user-visible status strings
const (
	MessageEmptyCode       = "⚠️ Please enter your code."
	MessageThinking        = "⏳ Thinking..."
	MessageNoResponse      = "❌ No response from AI"
	MessageConnectionError = "⚠️ Error connecting to AI server."
)

// Actions lists every action in the order the front ends present them.
var Actions = []Action{ActionExplain, ActionDebug, ActionComplexity, ActionCustom}

// converts a tag such as "debug" into an Action
func ParseAction(s string) (Action, error) {
	action := Action(strings.ToLower(strings.TrimSpace(s)))

	switch action {
	case ActionExplain, ActionDebug, ActionComplexity, ActionCustom:
		return action, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// returns a short human label for buttons and key hints
func (a Action) Label() string {
	switch a {
	case ActionExplain:
		return "Explain"
	case ActionDebug:
		return "Debug"
	case ActionComplexity:
		return "Find Time Complexity"
	case ActionCustom:
		return "Custom Prompt"
	default:
		return string(a)
	}
}

// Dispatch maps an action to the instruction text sent as userPrompt.
// Every action except custom requires non-blank code.
func Dispatch(action Action, code, userPrompt string) (string, error) {
	if action != ActionCustom && strings.TrimSpace(code) == "" {
		return "", ErrEmptyCode
	}

	switch action {
	case ActionExplain:
		return InstructionExplain, nil
	case ActionDebug:
		return InstructionDebug, nil
	case ActionComplexity:
		return InstructionComplexity, nil
	case ActionCustom:
		return userPrompt, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, string(action))
	}
}
