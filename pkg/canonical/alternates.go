package canonical

import (
	"net/url"
	"strings"

	"github.com/dmitrymomot/folio/pkg/locale"
)

// Alternate is one hreflang link for a page.
type Alternate struct {
	HrefLang string
	Href     string
}

// URLFor returns the absolute canonical URL of path in locale l.
// It carries only the locale marker; request queries never reach it.
func URLFor(baseURL, path string, l locale.Locale) string {
	if path == "" || path[0] != '/' {
		path = "/" + path
	}
	u := &url.URL{Path: path}
	return strings.TrimRight(baseURL, "/") + locale.RequestURI(locale.WithMarker(u, locale.QueryKey, l))
}

// Alternates returns the hreflang set for path: one entry per locale plus x-default pointing at EN.
func Alternates(baseURL, path string) []Alternate {
	out := make([]Alternate, 0, len(locale.All())+1)
	for _, l := range locale.All() {
		out = append(out, Alternate{HrefLang: l.HrefLang(), Href: URLFor(baseURL, path, l)})
	}
	out = append(out, Alternate{HrefLang: locale.XDefaultAlias, Href: URLFor(baseURL, path, locale.Default)})
	return out
}
