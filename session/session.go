// Package session keeps the browser session in a signed cookie. The cookie
// holds only the account's local id, plus a login nonce while a provider
// round trip is in flight.
package session

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/Nkwochamaureen/Skillhub-connect-backend/models"
)

const (
	localIDKey = "local_id"
	nonceKey   = "login_nonce"
)

// Options configures the cookie.
type Options struct {
	Name   string
	Secret string
	MaxAge int // seconds
	Secure bool
}

// Manager reads and writes the session cookie.
type Manager struct {
	store *sessions.CookieStore
	name  string
}

// NewManager creates a cookie-backed session manager.
func NewManager(opts Options) (*Manager, error) {
	if len(opts.Secret) < 32 {
		return nil, errors.New("session secret must be at least 32 characters long")
	}
	if opts.Name == "" {
		return nil, errors.New("session cookie name is required")
	}

	store := sessions.NewCookieStore([]byte(opts.Secret))
	store.MaxAge(opts.MaxAge)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	// Lax so the cookie survives the top-level redirect back from LinkedIn.
	store.Options.SameSite = http.SameSiteLaxMode
	store.Options.Secure = opts.Secure

	return &Manager{store: store, name: opts.Name}, nil
}

// get never fails: an unreadable cookie yields an empty session.
func (m *Manager) get(r *http.Request) *sessions.Session {
	s, err := m.store.Get(r, m.name)
	if err != nil {
		s, _ = m.store.New(r, m.name)
		s.IsNew = true
		s.Values = map[interface{}]interface{}{}
	}
	return s
}

// Reference returns the stored session reference. Missing, tampered or
// expired cookies yield the zero reference.
func (m *Manager) Reference(r *http.Request) models.SessionReference {
	id, _ := m.get(r).Values[localIDKey].(string)
	return models.SessionReference{LocalID: id}
}

// BeginLogin replaces the session contents with a pending login nonce.
func (m *Manager) BeginLogin(w http.ResponseWriter, r *http.Request, nonce string) error {
	s := m.get(r)
	s.Values = map[interface{}]interface{}{nonceKey: nonce}
	if err := s.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Nonce returns the pending login nonce, if any.
func (m *Manager) Nonce(r *http.Request) (string, bool) {
	nonce, ok := m.get(r).Values[nonceKey].(string)
	return nonce, ok && nonce != ""
}

// CompleteLogin replaces the session contents with the account reference.
func (m *Manager) CompleteLogin(w http.ResponseWriter, r *http.Request, ref models.SessionReference) error {
	if ref.IsZero() {
		return errors.New("empty session reference")
	}
	s := m.get(r)
	s.Values = map[interface{}]interface{}{localIDKey: ref.LocalID}
	if err := s.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear expires the session cookie.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	s := m.get(r)
	s.Values = map[interface{}]interface{}{}
	s.Options.MaxAge = -1
	if err := s.Save(r, w); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Name returns the cookie name.
func (m *Manager) Name() string {
	return m.name
}
