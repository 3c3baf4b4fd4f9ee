package langsync

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/dmitrymomot/folio/pkg/cookie"
	"github.com/dmitrymomot/folio/pkg/locale"
)

// PreferenceStore persists the chosen locale across visits.
type PreferenceStore interface {
	Save(ctx context.Context, l locale.Locale) error
}

// MemoryPreference keeps the preference in memory.
type MemoryPreference struct {
	mu    sync.Mutex
	value *locale.Locale
	saves int
}

func NewMemoryPreference() *MemoryPreference {
	return &MemoryPreference{}
}

func (p *MemoryPreference) Save(_ context.Context, l locale.Locale) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.value = &l
	p.saves++
	return nil
}

// Load returns the saved locale and whether anything was saved.
func (p *MemoryPreference) Load() (locale.Locale, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.value == nil {
		return locale.Default, false
	}
	return *p.value, true
}

// Saves returns how many times Save was called.
func (p *MemoryPreference) Saves() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saves
}

// CookieJarPreference stores the preference cookie in an http.CookieJar, so
// subsequent requests made by a Go client carry it.
type CookieJarPreference struct {
	jar  http.CookieJar
	site *url.URL
}

// NewCookieJarPreference binds the preference to site inside jar.
func NewCookieJarPreference(jar http.CookieJar, site *url.URL) *CookieJarPreference {
	return &CookieJarPreference{jar: jar, site: site}
}

func (p *CookieJarPreference) Save(_ context.Context, l locale.Locale) error {
	if p.site == nil {
		return ErrNilURL
	}
	p.jar.SetCookies(p.site, []*http.Cookie{{
		Name:   locale.CookieName,
		Value:  l.String(),
		Path:   "/",
		MaxAge: locale.CookieMaxAge,
	}})
	return nil
}

// Load returns the preference currently held in the jar.
func (p *CookieJarPreference) Load() (locale.Locale, bool) {
	if p.site == nil {
		return locale.Default, false
	}
	for _, c := range p.jar.Cookies(p.site) {
		if c.Name == locale.CookieName {
			return locale.Parse(c.Value), true
		}
	}
	return locale.Default, false
}

// ResponsePreference writes the preference cookie on an HTTP response.
type ResponsePreference struct {
	w       http.ResponseWriter
	cookies *cookie.Manager
}

// NewResponsePreference writes cookies through m. A nil m uses cookie defaults.
func NewResponsePreference(w http.ResponseWriter, m *cookie.Manager) *ResponsePreference {
	if m == nil {
		m = cookie.New()
	}
	return &ResponsePreference{w: w, cookies: m}
}

func (p *ResponsePreference) Save(_ context.Context, l locale.Locale) error {
	return p.cookies.Set(p.w, locale.CookieName, l.String(), cookie.WithMaxAge(locale.CookieMaxAge))
}
