package cookie

import "net/http"

// Options are the attributes applied to every cookie a Manager writes.
type Options struct {
	Path     string
	Domain   string
	MaxAge   int
	Secure   bool
	HttpOnly bool
	SameSite http.SameSite
}

// Option overrides one attribute.
type Option func(*Options)

func WithPath(path string) Option { return func(o *Options) { o.Path = path } }
func WithDomain(domain string) Option { return func(o *Options) { o.Domain = domain } }
func WithSecure(secure bool) Option { return func(o *Options) { o.Secure = secure } }
func WithHTTPOnly(httpOnly bool) Option { return func(o *Options) { o.HttpOnly = httpOnly } }
func WithSameSite(s http.SameSite) Option { return func(o *Options) { o.SameSite = s } }

// WithMaxAge sets the lifetime in seconds. Negative values delete the cookie.
func WithMaxAge(seconds int) Option { return func(o *Options) { o.MaxAge = seconds } }

// applyOptions returns base with opts applied; base itself is passed by value
// and left untouched.
func applyOptions(base Options, opts []Option) Options {
	for _, opt := range opts {
		opt(&base)
	}
	return base
}
