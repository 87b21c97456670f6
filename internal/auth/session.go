package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionManager tracks per-session authentication state. A session starts
// unauthenticated and can only become authenticated; it ends by expiring
// after TTL of inactivity. Expired sessions are cleaned up lazily.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
}

type session struct {
	authenticated bool
	lastSeen      time.Time
}

func NewSessionManager(ttl time.Duration) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create registers a fresh unauthenticated session and returns its ID.
func (m *SessionManager) Create() string {
	id := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = &session{lastSeen: m.now()}
	return id
}

// Exists reports whether the session is known and not expired, refreshing
// its activity timestamp.
func (m *SessionManager) Exists(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.touch(id) != nil
}

// Authenticate marks the session authenticated. Unknown or expired
// sessions are ignored and reported false.
func (m *SessionManager) Authenticate(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.touch(id)
	if s == nil {
		return false
	}
	s.authenticated = true
	return true
}

func (m *SessionManager) IsAuthenticated(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.touch(id)
	return s != nil && s.authenticated
}

func (m *SessionManager) touch(id string) *session {
	s, ok := m.sessions[id]
	if !ok {
		return nil
	}
	if m.now().Sub(s.lastSeen) > m.ttl {
		delete(m.sessions, id)
		return nil
	}
	s.lastSeen = m.now()
	return s
}
