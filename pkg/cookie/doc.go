// Package cookie provides a small HTTP cookie manager with shared default attributes.
//
// A Manager is created once with default Options (path, domain, SameSite,
// Secure, HttpOnly) and then used to write, read and expire cookies.
// Per-call options override the defaults without mutating them.
//
// # Usage
//
//	import "github.com/dmitrymomot/folio/pkg/cookie"
//
//	m := cookie.New(cookie.WithSecure(true))
//	_ = m.Set(w, "language", "FR", cookie.WithMaxAge(31536000))
//
//	v, err := m.Get(r, "language")
//	if errors.Is(err, cookie.ErrCookieNotFound) {
//		// no preference yet
//	}
//
// Configuration can be loaded from the environment through Config and
// NewFromConfig.
package cookie
