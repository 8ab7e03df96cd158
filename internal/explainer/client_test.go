package explainer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(ClientConfig{BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	return client
}

func TestNewClient_EmptyBaseURL(t *testing.T) {
	_, err := NewClient(ClientConfig{BaseURL: "  "})
	assert.ErrorIs(t, err, ErrEmptyBaseURL)
}

func TestNewClient_Endpoint(t *testing.T) {
	client, err := NewClient(ClientConfig{BaseURL: "https://your-backend.onrender.com/"})
	require.NoError(t, err)

	assert.Equal(t, "https://your-backend.onrender.com/api/openai", client.Endpoint())
}

func TestClientAsk_Success(t *testing.T) {
	var got askRequest

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/openai", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":"O(n)"}`)) //nolint:errcheck,gosec // test response
	})

	result, err := client.Ask(context.Background(), "for(i=0;i<n;i++){}", InstructionComplexity)

	require.NoError(t, err)
	assert.Equal(t, "O(n)", result)
	assert.Equal(t, "for(i=0;i<n;i++){}", got.Code)
	assert.Equal(t, InstructionComplexity, got.UserPrompt)
}

func TestClientAsk_MissingResult(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"null result", `{"result":null}`},
		{"empty string", `{"result":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(tt.body)) //nolint:errcheck,gosec // test response
			})

			result, err := client.Ask(context.Background(), "x=1", InstructionExplain)

			require.NoError(t, err)
			assert.Empty(t, result)
		})
	}
}

func TestClientAsk_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"server error", http.StatusInternalServerError, `{"result":"ignored"}`, "status 500"},
		{"bad gateway", http.StatusBadGateway, "upstream down", "upstream down"},
		{"not json", http.StatusOK, "<html>", "failed to parse response"},
		{"numeric result", http.StatusOK, `{"result":42}`, "failed to parse response"},
		{"object result", http.StatusOK, `{"result":{"text":"hi"}}`, "failed to parse response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body)) //nolint:errcheck,gosec // test response
			})

			_, err := client.Ask(context.Background(), "x=1", InstructionExplain)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// a reply whose result is not a string settles like any other unreadable reply
func TestRun_NonStringResultIsConnectionError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"result":42}`)) //nolint:errcheck,gosec // test response
	})

	session := NewSession()
	t.Cleanup(session.Close)
	session.SetInputs("x=1", "")

	state := New(client).Run(context.Background(), session, ActionExplain)

	assert.Equal(t, MessageConnectionError, state.Output)
	assert.Equal(t, PhaseErrored, state.Phase)
}

func TestClientAsk_TruncatesErrorBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(strings.Repeat("a", 4*maxErrorBody))) //nolint:errcheck,gosec // test response
	})

	_, err := client.Ask(context.Background(), "x=1", InstructionExplain)

	require.Error(t, err)
	assert.Less(t, len(err.Error()), 2*maxErrorBody)
}

func TestClientAsk_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := NewClient(ClientConfig{BaseURL: url})
	require.NoError(t, err)

	_, err = client.Ask(context.Background(), "x=1", InstructionExplain)
	assert.Error(t, err)
}

func TestClientAsk_ContextCanceled(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Ask(ctx, "x=1", InstructionExplain)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
