package site

import (
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/folio/handler"
	"github.com/dmitrymomot/folio/pkg/canonical"
	"github.com/dmitrymomot/folio/pkg/clientip"
	"github.com/dmitrymomot/folio/pkg/content"
	"github.com/dmitrymomot/folio/pkg/cookie"
	"github.com/dmitrymomot/folio/pkg/environment"
	"github.com/dmitrymomot/folio/pkg/httpserver"
	"github.com/dmitrymomot/folio/pkg/labels"
	"github.com/dmitrymomot/folio/pkg/langdetect"
	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/ratelimiter"
	"github.com/dmitrymomot/folio/pkg/requestid"
)

//go:embed labels/*.yaml
var builtinLabels embed.FS

// LoadLabels reads page strings from dir in fsys, falling back to the
// built-in strings when dir has no EN file.
func LoadLabels(fsys fs.FS, dir string) (*labels.Bag, error) {
	if fsys != nil {
		bag, err := labels.Load(fsys, dir)
		if err == nil {
			return bag, nil
		}
		if !errors.Is(err, labels.ErrMissingDefault) {
			return nil, err
		}
	}
	return labels.Load(builtinLabels, "labels")
}

// Site serves the bilingual pages, the JSON API and the sitemap.
type Site struct {
	content  *content.Resolver
	labels   *labels.Bag
	detector *langdetect.Detector
	cookies  *cookie.Manager
	log      *slog.Logger
	baseURL  string
	env      environment.Environment
	checks   []httpserver.Check
	proxies  []string
	limiter  *ratelimiter.Bucket
	now      func() time.Time
	onError  handler.ErrorHandler[handler.Context]
}

// Option configures a Site.
type Option func(*Site)

func WithLogger(l *slog.Logger) Option {
	return func(s *Site) {
		if l != nil {
			s.log = l
		}
	}
}

// WithBaseURL sets the absolute origin used in canonical links and the sitemap.
func WithBaseURL(u string) Option {
	return func(s *Site) { s.baseURL = strings.TrimRight(u, "/") }
}

func WithDetector(d *langdetect.Detector) Option {
	return func(s *Site) {
		if d != nil {
			s.detector = d
		}
	}
}

// WithCookies sets the manager used to write the language preference cookie.
func WithCookies(m *cookie.Manager) Option {
	return func(s *Site) {
		if m != nil {
			s.cookies = m
		}
	}
}

// WithReadiness adds dependency checks served on /readyz.
func WithReadiness(checks ...httpserver.Check) Option {
	return func(s *Site) { s.checks = append(s.checks, checks...) }
}

// WithTrustedProxyHeaders lists the headers consulted for the client address.
func WithTrustedProxyHeaders(headers ...string) Option {
	return func(s *Site) {
		if len(headers) > 0 {
			s.proxies = headers
		}
	}
}

// WithAPILimiter rate limits /api by client address. A nil bucket disables it.
func WithAPILimiter(b *ratelimiter.Bucket) Option {
	return func(s *Site) { s.limiter = b }
}

func WithEnvironment(env environment.Environment) Option {
	return func(s *Site) { s.env = env }
}

// WithClock overrides the time source used for relative dates and the sitemap.
func WithClock(now func() time.Time) Option {
	return func(s *Site) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Site over resolver and page strings.
func New(resolver *content.Resolver, bag *labels.Bag, opts ...Option) *Site {
	s := &Site{
		content:  resolver,
		labels:   bag,
		detector: langdetect.New(),
		cookies:  cookie.New(),
		log:      slog.New(slog.DiscardHandler),
		baseURL:  "http://localhost:8080",
		proxies:  clientip.DefaultHeaders,
		env:      environment.Development,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("site"))
	s.onError = handler.NewErrorHandler(s.log, handler.ErrorHandlerConfig{
		ErrorPage:   s.errorPage,
		ErrorToast:  s.errorToast,
		ToastTarget: "#toasts",
		ToastMode:   handler.PatchPrepend,
		WantsJSON: func(r *http.Request) bool {
			return strings.HasPrefix(r.URL.Path, "/api/")
		},
	})
	return s
}

// Handler returns the site router.
func (s *Site) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware(s.proxies...),
		environment.Middleware(s.env),
		middleware.Recoverer,
		s.accessLog,
	)

	localized := canonical.Middleware(s.detector, canonical.WithLogger(s.log))

	r.Group(func(r chi.Router) {
		r.Use(localized)
		r.Get("/", s.wrap(s.home))
		r.Get("/about", s.wrap(s.about))
		r.Get("/blog", s.wrap(s.blogIndex))
		r.Get("/work", s.wrap(s.workIndex))
		r.Get("/blog/{slug}", s.wrapDetail(content.KindPost))
		r.Get("/work/{slug}", s.wrapDetail(content.KindProject))
	})

	r.Route("/api", func(r chi.Router) {
		if s.limiter != nil {
			r.Use(ratelimiter.Middleware(s.limiter,
				ratelimiter.WithLogger(s.log),
				ratelimiter.WithDeniedHandler(http.HandlerFunc(s.tooManyRequests)),
			))
		}
		r.Get("/blog-posts", s.apiBlogPosts())
		r.Get("/projects", s.apiProjects())
		r.Get("/project", s.apiProject())
	})

	r.Get("/language", s.switchLanguage)
	r.Get("/fr", s.frenchAlias)
	r.Get("/fr/*", s.frenchAlias)
	r.Get("/sitemap.xml", s.sitemap)
	r.Get("/robots.txt", s.robots)
	r.Get("/healthz", httpserver.HealthCheckHandler(s.log))
	r.Get("/readyz", httpserver.HealthCheckHandler(s.log, s.checks...))

	r.NotFound(localized(http.HandlerFunc(s.notFound)).ServeHTTP)
	return r
}

func (s *Site) wrap(h handler.HandlerFunc[handler.Context, struct{}]) http.HandlerFunc {
	return handler.Wrap(h, handler.WithErrorHandler[handler.Context, struct{}](s.onError))
}

func (s *Site) notFound(w http.ResponseWriter, r *http.Request) {
	s.onError(handler.NewContext(w, r), handler.ErrNotFound)
}

func (s *Site) tooManyRequests(w http.ResponseWriter, r *http.Request) {
	err := handler.NewHTTPError(http.StatusTooManyRequests, "too_many_requests").
		WithMessage("Too many requests")
	if rerr := handler.JSONError(err).Render(w, r); rerr != nil {
		s.log.ErrorContext(r.Context(), "render rate limit response", logger.Error(rerr))
	}
}

func (s *Site) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		s.log.DebugContext(r.Context(), "request",
			logger.RequestID(requestid.FromContext(r.Context())),
			slog.String("client_ip", clientip.FromContext(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			logger.Duration(time.Since(start)),
		)
	})
}
