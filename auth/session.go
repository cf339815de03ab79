package auth

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// SessionDuration default; overridable via SESSION_TTL_HOURS.
const DefaultSessionTTL = 12 * time.Hour

// Session is the explicit session-context object handed to handlers. One is
// created at login and dropped at logout or expiry.
type Session struct {
	Token        string
	EmployeeName string
	IsAdmin      bool
	FirstLogin   bool // must change secret before submitting requests
	ExpiresAt    time.Time
}

// SessionManager tracks live sessions in server memory. Sessions do not
// survive a restart; every session therefore begins with a login, which is
// where the accrual trigger runs.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewSessionManager(ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionManager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create starts a session for the named employee.
func (sm *SessionManager) Create(employeeName string, isAdmin, firstLogin bool) (*Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	sess := &Session{
		Token:        token,
		EmployeeName: employeeName,
		IsAdmin:      isAdmin,
		FirstLogin:   firstLogin,
		ExpiresAt:    time.Now().Add(sm.ttl),
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sessions[token] = sess
	return sess, nil
}

// Get returns the live session for a token, expiring it lazily.
func (sm *SessionManager) Get(token string) (*Session, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sess, ok := sm.sessions[token]
	if !ok {
		return nil, false
	}
	if time.Now().After(sess.ExpiresAt) {
		delete(sm.sessions, token)
		return nil, false
	}
	copied := *sess
	return &copied, true
}

// Delete ends a session.
func (sm *SessionManager) Delete(token string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, token)
}

// ClearFirstLogin records that the employee has set a fresh secret.
func (sm *SessionManager) ClearFirstLogin(token string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sess, ok := sm.sessions[token]; ok {
		sess.FirstLogin = false
	}
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
