package langdetect

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/folio/pkg/locale"
	"github.com/dmitrymomot/folio/pkg/useragent"
)

// Source names the signal that decided the locale.
type Source string

const (
	SourcePath    Source = "path"
	SourceQuery   Source = "query"
	SourceCookie  Source = "cookie"
	SourceHeader  Source = "accept-language"
	SourceDefault Source = "default"
)

// Signals are the raw, untrusted inputs to detection.
// Cookie is nil when the request carried no preference cookie.
type Signals struct {
	Path           string
	Query          url.Values
	Cookie         *string
	AcceptLanguage string
	UserAgent      string
}

// Result is the outcome of a detection pass.
type Result struct {
	Locale    locale.Locale
	Automated bool
	// Crawler names the automated client when the classifier can tell.
	Crawler string
	Source  Source
}

// CrawlerDetector classifies a user agent string.
type CrawlerDetector interface {
	IsCrawler(ua string) bool
}

// CrawlerNamer is implemented by classifiers that can also name the crawler.
type CrawlerNamer interface {
	Name(ua string) string
}

// Detector resolves locales from request signals. It holds no per-request state.
type Detector struct {
	cookieName   string
	queryParam   string
	skipPrefixes []string
	crawlers     CrawlerDetector
}

// DefaultSkipPrefixes are path prefixes that bypass detection.
var DefaultSkipPrefixes = []string{
	"/api/",
	"/_next/",
	"/_assets/",
	"/favicon",
	"/images/",
	"/trademark/",
}

// New creates a Detector with the site's wire defaults.
func New(opts ...Option) *Detector {
	d := &Detector{
		cookieName:   locale.CookieName,
		queryParam:   locale.QueryKey,
		skipPrefixes: DefaultSkipPrefixes,
		crawlers:     useragent.NewDetector(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// QueryParam returns the query key carrying the locale marker.
func (d *Detector) QueryParam() string {
	return d.queryParam
}

// CookieName returns the name of the preference cookie.
func (d *Detector) CookieName() string {
	return d.cookieName
}

// Skip reports whether path must bypass detection entirely.
func (d *Detector) Skip(path string) bool {
	if strings.Contains(path, ".") {
		return true
	}
	for _, prefix := range d.skipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Detect resolves the locale from s in priority order.
func (d *Detector) Detect(s Signals) Result {
	res := Result{
		Locale:    locale.EN,
		Automated: d.crawlers != nil && d.crawlers.IsCrawler(s.UserAgent),
		Source:    SourceDefault,
	}
	if namer, ok := d.crawlers.(CrawlerNamer); ok && res.Automated {
		res.Crawler = namer.Name(s.UserAgent)
	}

	switch {
	case hasPathMarker(s.Path):
		res.Locale, res.Source = locale.FR, SourcePath
	case s.Query != nil && strings.TrimSpace(s.Query.Get(d.queryParam)) != "":
		res.Source = SourceQuery
		if strings.EqualFold(strings.TrimSpace(s.Query.Get(d.queryParam)), "fr") {
			res.Locale = locale.FR
		}
	case s.Cookie != nil && locale.Parse(*s.Cookie) == locale.FR:
		res.Locale, res.Source = locale.FR, SourceCookie
	case acceptsFrench(s.AcceptLanguage):
		res.Locale, res.Source = locale.FR, SourceHeader
	}

	return res
}

// FromRequest gathers signals from r and resolves them.
func (d *Detector) FromRequest(r *http.Request) Result {
	return d.Detect(d.Signals(r))
}

// Signals extracts detection inputs from r.
func (d *Detector) Signals(r *http.Request) Signals {
	s := Signals{
		Path:           r.URL.Path,
		Query:          r.URL.Query(),
		AcceptLanguage: r.Header.Get("Accept-Language"),
		UserAgent:      r.UserAgent(),
	}
	if d.cookieName != "" {
		if c, err := r.Cookie(d.cookieName); err == nil {
			v := strings.TrimSpace(c.Value)
			s.Cookie = &v
		}
	}
	return s
}

func hasPathMarker(path string) bool {
	return strings.HasSuffix(path, locale.PathSuffix) || strings.Contains(path, locale.PathSuffix+"/")
}

func acceptsFrench(header string) bool {
	if header == "" {
		return false
	}
	return strings.Contains(strings.ToLower(header), "fr")
}
