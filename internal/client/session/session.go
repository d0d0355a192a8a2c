package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shopkart-io/shopkart/internal/client/api"
)

var (
	// ErrInvalidToken means the access token failed to decode. On the login
	// path this is surfaced to the caller rather than silently conflated with
	// an ordinary logout, though the session is torn down either way.
	ErrInvalidToken = errors.New("invalid access token")
	// ErrTokenExpired means the token decoded but its embedded expiry has
	// already passed.
	ErrTokenExpired = errors.New("access token expired")
)

// Session is the authenticated identity derived from a valid credential.
// It exists only while the credential does.
type Session struct {
	Username string
}

// Manager owns the session lifecycle. Restore, Login and Logout are the only
// mutators; the gateway and view layers receive the manager (or its store)
// by injection and never touch session state directly.
type Manager struct {
	creds api.CredentialStore

	// now is a seam for expiry checks in tests.
	now func() time.Time

	current *Session
}

func NewManager(creds api.CredentialStore) *Manager {
	return &Manager{creds: creds, now: time.Now}
}

// accessClaims is the decoded middle segment of the access token. The client
// holds no signing key, so the token is decoded without verification; the
// server re-verifies the signature on every request.
type accessClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

func (m *Manager) decode(token string) (*accessClaims, error) {
	claims := &accessClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.Time.After(m.now()) {
		return nil, ErrTokenExpired
	}
	return claims, nil
}

// Restore re-establishes a session from the persisted credential at startup.
// With no stored token the state is simply anonymous. A token that fails to
// decode or has expired tears the session down, clearing the persisted
// credential. Both outcomes return (nil, nil): from the caller's point of
// view there is just no session.
func (m *Manager) Restore() (*Session, error) {
	token := m.creds.AccessToken()
	if token == "" {
		m.current = nil
		return nil, nil
	}

	claims, err := m.decode(token)
	if err != nil {
		if lerr := m.Logout(); lerr != nil {
			return nil, lerr
		}
		return nil, nil
	}

	m.current = &Session{Username: claims.Username}
	return m.current, nil
}

// Login establishes a session from a freshly issued token pair and persists
// it. A token that does not decode, or that carries no subject, tears the
// session down exactly like a failed restore, but the failure is reported so
// the UI can distinguish "the server handed us a bad token" from a plain
// logout.
func (m *Manager) Login(access, refresh string) (*Session, error) {
	claims, err := m.decode(access)
	if err != nil {
		_ = m.Logout()
		return nil, err
	}
	if claims.Username == "" {
		_ = m.Logout()
		return nil, ErrInvalidToken
	}

	if err := m.creds.SetTokenPair(access, refresh); err != nil {
		return nil, err
	}
	m.current = &Session{Username: claims.Username}
	return m.current, nil
}

// Logout clears the persisted credential and the in-memory session. It is
// safe to call in any state.
func (m *Manager) Logout() error {
	m.current = nil
	return m.creds.Clear()
}

// Current returns the established session, or nil when anonymous.
func (m *Manager) Current() *Session { return m.current }

// Authenticated reports whether a live session is held. Token validity is
// re-checked against the stored credential on every call, never cached: a
// token that expired since the last check makes this false even though
// Current still returns the stale session until the next lifecycle event.
func (m *Manager) Authenticated() bool {
	if m.current == nil {
		return false
	}
	_, err := m.decode(m.creds.AccessToken())
	return err == nil || m.creds.RefreshToken() != ""
}
