package logger

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// restores the console logger once a test is done
func resetLogger(t *testing.T) {
	t.Cleanup(func() {
		Close() //nolint:errcheck,gosec // test cleanup
		Configure(Options{})
	})
}

func TestConfigure_FileProduction(t *testing.T) {
	resetLogger(t)

	path := filepath.Join(t.TempDir(), "server.log")
	Configure(Options{Environment: "production", File: path})

	Debug("hidden at info level")
	Info("backend request completed", "action", "explain")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "backend request completed", entry["msg"])
	assert.Equal(t, "explain", entry["action"])
}

func TestConfigure_FileDevelopment(t *testing.T) {
	resetLogger(t)

	path := filepath.Join(t.TempDir(), "tui.log")
	Configure(Options{File: path})

	Debug("key pressed", "key", "ctrl+e")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "level=DEBUG")
	assert.Contains(t, string(data), "key=ctrl+e")
}

func TestFromContext(t *testing.T) {
	assert.Same(t, Default(), FromContext(context.Background()))

	scoped := With("session_id", "abc")
	ctx := WithContext(context.Background(), scoped)

	assert.Same(t, scoped, FromContext(ctx))
}

func TestClose_NoFile(t *testing.T) {
	resetLogger(t)
	Configure(Options{})

	assert.NoError(t, Close())
}
