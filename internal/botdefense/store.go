package botdefense

import (
	"sync"
	"time"
)

// why an IP was trapped
type TrapReason string

const (
	ReasonHoneypot       TrapReason = "honeypot"
	ReasonSuspiciousPath TrapReason = "suspicious_path"
	ReasonBotPattern     TrapReason = "bot_pattern"
)

type trap struct {
	reason    TrapReason
	expiresAt time.Time
}

// Store keeps trapped IPs in memory until their TTL passes.
type Store struct {
	mu    sync.Mutex
	traps map[string]trap
	ttl   time.Duration
	now   func() time.Time
}

// creates an empty store
func NewStore(ttl time.Duration) *Store {
	return &Store{
		traps: make(map[string]trap),
		ttl:   ttl,
		now:   time.Now,
	}
}

// marks ip as trapped for the store's ttl
func (s *Store) TrapIP(ip string, reason TrapReason) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.traps[ip] = trap{reason: reason, expiresAt: s.now().Add(s.ttl)}
}

// reports whether ip is trapped and why
func (s *Store) IsTrapped(ip string) (bool, TrapReason) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.traps[ip]
	if !ok {
		return false, ""
	}

	if s.now().After(t.expiresAt) {
		delete(s.traps, ip)
		return false, ""
	}

	return true, t.reason
}

// drops expired traps and returns how many were removed
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0

	for ip, t := range s.traps {
		if now.After(t.expiresAt) {
			delete(s.traps, ip)
			removed++
		}
	}

	return removed
}
