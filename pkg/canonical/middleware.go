package canonical

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/folio/pkg/langdetect"
	"github.com/dmitrymomot/folio/pkg/locale"
	"github.com/dmitrymomot/folio/pkg/logger"
)

type config struct {
	logger     *slog.Logger
	statusCode int
}

// Option configures the middleware.
type Option func(*config)

// WithLogger sets the logger used for debug decision traces.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStatusCode sets the redirect status. Only 3xx codes are accepted.
func WithStatusCode(code int) Option {
	return func(c *config) {
		if code >= 300 && code < 400 {
			c.statusCode = code
		}
	}
}

// Middleware runs detection and the redirect policy exactly once per request.
// Skipped paths pass through untouched, except that a client-supplied
// side-channel header is removed. Non-GET/HEAD requests are never redirected.
func Middleware(d *langdetect.Detector, opts ...Option) func(http.Handler) http.Handler {
	if d == nil {
		d = langdetect.New()
	}
	cfg := &config{
		logger:     slog.New(slog.DiscardHandler),
		statusCode: http.StatusFound,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Header.Del(locale.HeaderName)

			if d.Skip(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			res := d.FromRequest(r)
			dec := Decide(res, r.URL, d.QueryParam())

			if dec.Redirect && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
				cfg.logger.DebugContext(r.Context(), "redirecting to canonical url",
					logger.Locale(dec.Locale.String()),
					slog.String("source", string(res.Source)),
					slog.String("location", dec.Location),
				)
				w.Header().Add("Vary", "Cookie, Accept-Language, User-Agent")
				http.Redirect(w, r, dec.Location, cfg.statusCode)
				return
			}

			attrs := []any{
				logger.Locale(dec.Locale.String()),
				slog.String("source", string(res.Source)),
				slog.Bool("automated", res.Automated),
			}
			if res.Crawler != "" {
				attrs = append(attrs, slog.String("crawler", res.Crawler))
			}
			cfg.logger.DebugContext(r.Context(), "locale resolved", attrs...)

			r.Header.Set(locale.HeaderName, dec.Locale.String())
			w.Header().Set("Content-Language", dec.Locale.HrefLang())
			w.Header().Add("Vary", "Cookie, Accept-Language, User-Agent")

			next.ServeHTTP(w, r.WithContext(locale.WithContext(r.Context(), dec.Locale)))
		})
	}
}

// FromRequest returns the locale published by Middleware for r.
func FromRequest(r *http.Request) locale.Locale {
	if l, ok := locale.FromContextOK(r.Context()); ok {
		return l
	}
	return locale.Parse(r.Header.Get(locale.HeaderName))
}
