package sessions

import (
	"sync"
	"time"

	"codeberg.org/codeexplainer/server/internal/explainer"
	"codeberg.org/codeexplainer/server/internal/logger"
	"github.com/google/uuid"
)

// how often expired sessions are swept when no interval is given
const defaultCleanupInterval = 5 * time.Minute

// represents one browser's page session
type Session struct {
	ID           string
	State        *explainer.Session
	LastActivity time.Time
	ExpiresAt    time.Time
}

// manages page sessions in memory; nothing survives a restart
type Manager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
	stop     chan struct{}
	done     chan struct{}
	once     sync.Once
}

// returns a new session manager and starts its cleanup loop
func NewManager(ttl, cleanupInterval time.Duration) *Manager {
	if cleanupInterval <= 0 {
		cleanupInterval = defaultCleanupInterval
	}

	m := &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	go m.cleanupExpiredSessions(cleanupInterval)

	return m
}

// returns a new random session ID
func GenerateSessionID() string {
	return uuid.NewString()
}

// creates a new session
func (m *Manager) CreateSession() *Session {
	now := m.now()
	session := &Session{
		ID:           GenerateSessionID(),
		State:        explainer.NewSession(),
		LastActivity: now,
		ExpiresAt:    now.Add(m.ttl),
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	return session
}

// retrieves a live session by ID and extends its lifetime
func (m *Manager) GetSession(sessionID string) (*Session, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, ErrSessionNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}

	now := m.now()
	if now.After(session.ExpiresAt) {
		delete(m.sessions, sessionID)
		session.State.Close()
		return nil, ErrSessionExpired
	}

	session.LastActivity = now
	session.ExpiresAt = now.Add(m.ttl)

	return session, nil
}

// returns the session for sessionID, or a fresh one when it is unknown or expired
func (m *Manager) GetOrCreate(sessionID string) (*Session, bool) {
	if sessionID != "" {
		if session, err := m.GetSession(sessionID); err == nil {
			return session, false
		}
	}

	return m.CreateSession(), true
}

// returns the number of sessions held, expired or not
func (m *Manager) GetSessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// stops the cleanup loop and closes every session
func (m *Manager) Close() {
	m.once.Do(func() {
		close(m.stop)
		<-m.done

		m.mu.Lock()
		defer m.mu.Unlock()

		for id, session := range m.sessions {
			session.State.Close()
			delete(m.sessions, id)
		}
	})
}

// removes sessions whose ttl has passed
func (m *Manager) sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0

	for id, session := range m.sessions {
		if now.After(session.ExpiresAt) {
			session.State.Close()
			delete(m.sessions, id)
			removed++
		}
	}

	return removed
}

// runs periodically to remove expired sessions
func (m *Manager) cleanupExpiredSessions(interval time.Duration) {
	defer close(m.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			if removed := m.sweep(); removed > 0 {
				logger.Debug("expired sessions removed", "count", removed)
			}
		}
	}
}
