package explainer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Action
		wantErr bool
	}{
		{"explain", "explain", ActionExplain, false},
		{"debug uppercase", "DEBUG", ActionDebug, false},
		{"complexity padded", "  complexity ", ActionComplexity, false},
		{"custom", "custom", ActionCustom, false},
		{"unknown", "refactor", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAction(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownAction))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDispatch(t *testing.T) {
	tests := []struct {
		name       string
		action     Action
		code       string
		userPrompt string
		want       string
		wantErr    error
	}{
		{"explain", ActionExplain, "x=1", "ignored", InstructionExplain, nil},
		{"debug", ActionDebug, "x=1", "", InstructionDebug, nil},
		{"complexity", ActionComplexity, "for(;;){}", "", InstructionComplexity, nil},
		{"custom passes prompt through", ActionCustom, "x=1", "what is x?", "what is x?", nil},
		{"custom allows empty code", ActionCustom, "", "hello", "hello", nil},
		{"custom allows empty prompt", ActionCustom, "", "", "", nil},
		{"explain rejects empty code", ActionExplain, "", "", "", ErrEmptyCode},
		{"debug rejects whitespace code", ActionDebug, " \n\t", "", "", ErrEmptyCode},
		{"complexity rejects empty code", ActionComplexity, "", "", "", ErrEmptyCode},
		{"unknown action", Action("lint"), "x=1", "", "", ErrUnknownAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Dispatch(tt.action, tt.code, tt.userPrompt)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestActionLabel(t *testing.T) {
	assert.Equal(t, "Explain", ActionExplain.Label())
	assert.Equal(t, "Debug", ActionDebug.Label())
	assert.Equal(t, "Find Time Complexity", ActionComplexity.Label())
	assert.Equal(t, "Custom Prompt", ActionCustom.Label())
	assert.Len(t, Actions, 4)
}
