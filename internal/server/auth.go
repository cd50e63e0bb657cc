package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const adminCookieName = "admin_session"

// Sessions tracks admin-mode tokens in memory. Admin mode is a session-local
// flag: tokens are never persisted and every session dies with the process.
// The gate behind it is a shared plaintext code, not real authentication.
type Sessions struct {
	mu     sync.Mutex
	tokens map[string]time.Time
}

func NewSessions() *Sessions {
	return &Sessions{tokens: make(map[string]time.Time)}
}

// Create mints a new opaque session token.
func (s *Sessions) Create() string {
	token := uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = time.Now()
	s.mu.Unlock()
	return token
}

func (s *Sessions) Delete(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

func (s *Sessions) Valid(token string) bool {
	s.mu.Lock()
	_, ok := s.tokens[token]
	s.mu.Unlock()
	return ok
}

// adminToken reads the admin session cookie, if any.
func adminToken(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(adminCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}
