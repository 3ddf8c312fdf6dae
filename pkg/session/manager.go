package session

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"petdex/pkg/domain"
)

// Status is the session lifecycle state.
type Status int

const (
	// StatusUnknown is the initial value before the first credential check.
	StatusUnknown Status = iota
	// StatusAuthenticating means a credential check or auth call is running.
	StatusAuthenticating
	// StatusAuthenticated means a non-expired token and derived identity exist.
	StatusAuthenticated
	// StatusUnauthenticated means there is no usable session.
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusUnknown:
		return "unknown"
	case StatusAuthenticating:
		return "authenticating"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// AuthAPI is the slice of the backend client the manager needs.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, password string, roles []string) (string, error)
}

// Manager owns the session token and the identity derived from it. It is the
// single writer: every token change runs exactly one DeriveIdentity pass and
// one fan-out to subscribers. Login and Register must not be called while
// another session-mutating call is in flight; callers guard this by disabling
// the triggering control.
type Manager struct {
	api   AuthAPI
	store *Store
	log   logrus.FieldLogger
	now   func() time.Time

	mu       sync.RWMutex
	status   Status
	token    string
	identity domain.Identity
	expiry   time.Time
	subs     []func(Status)
}

// NewManager creates a manager in the Unknown state. Call Restore to adopt a
// previously persisted token.
func NewManager(api AuthAPI, store *Store, log logrus.FieldLogger) *Manager {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Manager{
		api:    api,
		store:  store,
		log:    log,
		now:    time.Now,
		status: StatusUnknown,
	}
}

// Status returns the current lifecycle state.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Identity returns the identity derived from the current token. Zero when
// unauthenticated.
func (m *Manager) Identity() domain.Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.identity
}

// Token returns the current session token, or "" when unauthenticated.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// ExpiresAt returns the current token's expiry instant. Zero when
// unauthenticated.
func (m *Manager) ExpiresAt() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.expiry
}

// Subscribe registers a status observer. Observers are invoked synchronously,
// in registration order, after each status change.
func (m *Manager) Subscribe(fn func(Status)) {
	m.mu.Lock()
	m.subs = append(m.subs, fn)
	m.mu.Unlock()
}

// Restore checks for a persisted token and adopts it: expired or malformed
// tokens clear the store and leave the session unauthenticated.
func (m *Manager) Restore() {
	m.setStatus(StatusAuthenticating)
	tok := m.store.Token()
	if tok == "" {
		m.clearSession()
		return
	}
	m.adopt(tok)
}

// Login authenticates against the backend and adopts the returned token. The
// returned error message is user-displayable; on failure the session stays
// unauthenticated and no retry is attempted.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	m.setStatus(StatusAuthenticating)
	tok, err := m.api.Login(ctx, username, password)
	if err != nil {
		m.clearIdentity()
		m.log.WithField("username", username).WithError(err).Warn("login failed")
		return fmt.Errorf("login failed: %w", err)
	}
	if err := m.store.Save(tok); err != nil {
		m.clearIdentity()
		return fmt.Errorf("persist session: %w", err)
	}
	m.adopt(tok)
	m.log.WithField("username", username).Info("login succeeded")
	return nil
}

// Register creates an account and adopts the token the backend returns; the
// backend logs the new user in as part of sign-up.
func (m *Manager) Register(ctx context.Context, username, password string, roles []string) error {
	m.setStatus(StatusAuthenticating)
	tok, err := m.api.Register(ctx, username, password, roles)
	if err != nil {
		m.clearIdentity()
		m.log.WithField("username", username).WithError(err).Warn("registration failed")
		return fmt.Errorf("registration failed: %w", err)
	}
	if err := m.store.Save(tok); err != nil {
		m.clearIdentity()
		return fmt.Errorf("persist session: %w", err)
	}
	m.adopt(tok)
	m.log.WithField("username", username).Info("registration succeeded")
	return nil
}

// Logout clears the persisted token and identity synchronously. No network
// call is made and calling it repeatedly is harmless.
func (m *Manager) Logout() {
	m.clearSession()
	m.log.Info("logged out")
}

// adopt is the single code path that turns a token into session state. Every
// token write funnels through here, so each change triggers exactly one
// identity derivation.
func (m *Manager) adopt(token string) {
	claims, err := DecodeToken(token)
	if err != nil {
		m.log.WithError(err).Warn("discarding undecodable token")
		m.clearSession()
		return
	}
	if claims.Expired(m.now()) {
		m.log.WithField("expired_at", claims.ExpiresAt).Info("discarding expired token")
		m.clearSession()
		return
	}

	id := DeriveIdentity(claims)
	m.mu.Lock()
	m.token = token
	m.identity = id
	m.expiry = claims.ExpiresAt
	m.mu.Unlock()
	m.setStatus(StatusAuthenticated)
}

// clearSession removes the persisted token and resets to unauthenticated.
func (m *Manager) clearSession() {
	if err := m.store.Clear(); err != nil {
		m.log.WithError(err).Warn("clearing persisted token")
	}
	m.clearIdentity()
}

// clearIdentity resets in-memory state without touching the store.
func (m *Manager) clearIdentity() {
	m.mu.Lock()
	m.token = ""
	m.identity = domain.Identity{}
	m.expiry = time.Time{}
	m.mu.Unlock()
	m.setStatus(StatusUnauthenticated)
}

func (m *Manager) setStatus(s Status) {
	m.mu.Lock()
	if m.status == s {
		m.mu.Unlock()
		return
	}
	m.status = s
	subs := make([]func(Status), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}
