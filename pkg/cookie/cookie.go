package cookie

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Manager writes and reads cookies with shared default attributes.
type Manager struct {
	defaults Options
}

// New creates a cookie manager. Defaults: Path "/", SameSite Lax.
func New(opts ...Option) *Manager {
	defaults := Options{
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{defaults: applyOptions(defaults, opts)}
}

// Defaults returns a copy of the manager's default attributes.
func (m *Manager) Defaults() Options {
	return m.defaults
}

// Set writes a cookie. Per-call options override the manager defaults.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	if name == "" {
		return ErrInvalidName
	}

	http.SetCookie(w, m.Cookie(name, value, opts...))
	return nil
}

// Cookie builds the *http.Cookie that Set would write, without writing it.
func (m *Manager) Cookie(name, value string, opts ...Option) *http.Cookie {
	options := applyOptions(m.defaults, opts)

	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	}
	if options.MaxAge > 0 {
		c.Expires = time.Now().Add(time.Duration(options.MaxAge) * time.Second)
	}
	return c
}

// Get returns the cookie value or ErrCookieNotFound.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", fmt.Errorf("read cookie %q: %w", name, err)
	}
	return c.Value, nil
}

// Lookup returns a pointer to the cookie value, nil when the cookie is absent.
func (m *Manager) Lookup(r *http.Request, name string) *string {
	v, err := m.Get(r, name)
	if err != nil {
		return nil
	}
	return &v
}

// Delete expires the cookie on the client.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
		Secure:   m.defaults.Secure,
	})
}
