package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/magnate/server/internal/store"
)

type sessionEntry struct {
	user    store.UserID
	expires time.Time
}

// Sessions maps login tokens to users. A new login replaces the user's
// previous token, so at most one session per user is live at a time.
type Sessions struct {
	mu      sync.Mutex
	ttl     time.Duration
	byToken map[string]sessionEntry
	byUser  map[store.UserID]string
}

// NewSessions returns an empty registry. ttl <= 0 means sessions never
// expire.
func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		ttl:     ttl,
		byToken: make(map[string]sessionEntry, 64),
		byUser:  make(map[store.UserID]string, 64),
	}
}

// Begin issues a fresh token for a user, invalidating any previous one.
func (s *Sessions) Begin(user store.UserID) string {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.byUser[user]; ok {
		delete(s.byToken, old)
	}
	entry := sessionEntry{user: user}
	if s.ttl > 0 {
		entry.expires = time.Now().Add(s.ttl)
	}
	s.byToken[token] = entry
	s.byUser[user] = token
	return token
}

// Lookup resolves a token to a user. Expired tokens are dropped on
// lookup and report not-found.
func (s *Sessions) Lookup(token string) (store.UserID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.byToken[token]
	if !ok {
		return 0, false
	}
	if !entry.expires.IsZero() && time.Now().After(entry.expires) {
		delete(s.byToken, token)
		delete(s.byUser, entry.user)
		return 0, false
	}
	return entry.user, true
}

// End drops a token, if present.
func (s *Sessions) End(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.byToken[token]; ok {
		delete(s.byToken, token)
		delete(s.byUser, entry.user)
	}
}
