package sessions

import (
	"context"
	"testing"
	"time"

	"codeberg.org/codeexplainer/server/internal/explainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fake clock the tests move by hand
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func newTestManager(t *testing.T, ttl time.Duration) (*Manager, *testClock) {
	t.Helper()

	clock := &testClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}

	m := NewManager(ttl, time.Hour)
	m.now = clock.Now
	t.Cleanup(m.Close)

	return m, clock
}

func TestCreateAndGetSession(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)

	session := m.CreateSession()
	require.NotNil(t, session)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, explainer.PhaseIdle, session.State.Snapshot().Phase)

	got, err := m.GetSession(session.ID)
	require.NoError(t, err)
	assert.Same(t, session, got)
	assert.Equal(t, 1, m.GetSessionCount())
}

func TestGetSession_NotFound(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)

	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"not a uuid", "abc"},
		{"unknown uuid", GenerateSessionID()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.GetSession(tt.id)
			assert.ErrorIs(t, err, ErrSessionNotFound)
		})
	}
}

func TestGetSession_Expired(t *testing.T) {
	m, clock := newTestManager(t, time.Minute)

	session := m.CreateSession()
	ticket, err := func() (*explainer.Ticket, error) {
		session.State.SetCode("x=1")
		return session.State.Begin(context.Background(), explainer.ActionExplain)
	}()
	require.NoError(t, err)

	clock.now = clock.now.Add(2 * time.Minute)

	_, err = m.GetSession(session.ID)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, 0, m.GetSessionCount())

	// closing the expired session cancels its in-flight call
	assert.ErrorIs(t, ticket.Context().Err(), context.Canceled)
}

func TestGetSession_ExtendsLifetime(t *testing.T) {
	m, clock := newTestManager(t, time.Minute)

	session := m.CreateSession()

	clock.now = clock.now.Add(45 * time.Second)
	_, err := m.GetSession(session.ID)
	require.NoError(t, err)

	clock.now = clock.now.Add(45 * time.Second)
	_, err = m.GetSession(session.ID)
	assert.NoError(t, err, "access should have extended the ttl")
}

func TestGetOrCreate(t *testing.T) {
	m, clock := newTestManager(t, time.Minute)

	first, created := m.GetOrCreate("")
	assert.True(t, created)

	again, created := m.GetOrCreate(first.ID)
	assert.False(t, created)
	assert.Same(t, first, again)

	clock.now = clock.now.Add(time.Hour)

	fresh, created := m.GetOrCreate(first.ID)
	assert.True(t, created)
	assert.NotEqual(t, first.ID, fresh.ID)
}

func TestSweep(t *testing.T) {
	m, clock := newTestManager(t, time.Minute)

	m.CreateSession()
	m.CreateSession()

	clock.now = clock.now.Add(30 * time.Second)
	keep := m.CreateSession()

	clock.now = clock.now.Add(45 * time.Second)

	assert.Equal(t, 2, m.sweep())
	assert.Equal(t, 1, m.GetSessionCount())

	_, err := m.GetSession(keep.ID)
	assert.NoError(t, err)
}

func TestClose(t *testing.T) {
	m := NewManager(time.Hour, 10*time.Millisecond)

	session := m.CreateSession()
	updates, _ := session.State.Subscribe()
	<-updates

	m.Close()
	m.Close()

	assert.Equal(t, 0, m.GetSessionCount())

	_, ok := <-updates
	assert.False(t, ok, "subscribers should be closed with the manager")
}
