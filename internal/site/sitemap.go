package site

import (
	"encoding/xml"
	"io"
	"net/http"
	"time"

	"github.com/dmitrymomot/folio/pkg/canonical"
	"github.com/dmitrymomot/folio/pkg/content"
	"github.com/dmitrymomot/folio/pkg/locale"
	"github.com/dmitrymomot/folio/pkg/logger"
)

// staticPages are the non-content routes listed in the sitemap.
var staticPages = []string{"/", "/about", "/work", "/blog"}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	NS      string       `xml:"xmlns,attr"`
	XHTML   string       `xml:"xmlns:xhtml,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string      `xml:"loc"`
	LastMod    string      `xml:"lastmod,omitempty"`
	Alternates []xhtmlLink `xml:"xhtml:link"`
}

type xhtmlLink struct {
	Rel      string `xml:"rel,attr"`
	HrefLang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

func (s *Site) entries(path string, lastMod time.Time) []sitemapURL {
	alts := canonical.Alternates(s.baseURL, path)
	links := make([]xhtmlLink, 0, len(alts))
	for _, a := range alts {
		links = append(links, xhtmlLink{Rel: "alternate", HrefLang: a.HrefLang, Href: a.Href})
	}
	out := make([]sitemapURL, 0, len(locale.All()))
	for _, l := range locale.All() {
		u := sitemapURL{Loc: canonical.URLFor(s.baseURL, path, l), Alternates: links}
		if !lastMod.IsZero() {
			u.LastMod = lastMod.Format(time.DateOnly)
		}
		out = append(out, u)
	}
	return out
}

// buildSitemap lists every page in both locales, then every post and project.
func (s *Site) buildSitemap(r *http.Request) (urlSet, error) {
	set := urlSet{
		NS:    "http://www.sitemaps.org/schemas/sitemap/0.9",
		XHTML: "http://www.w3.org/1999/xhtml",
	}
	today := s.now()
	for _, p := range staticPages {
		set.URLs = append(set.URLs, s.entries(p, today)...)
	}
	for _, kind := range []struct {
		kind content.Kind
		base string
	}{{content.KindPost, "/blog/"}, {content.KindProject, "/work/"}} {
		items, err := s.content.AllSlugs(r.Context(), kind.kind)
		if err != nil {
			return set, err
		}
		for _, e := range items {
			set.URLs = append(set.URLs, s.entries(kind.base+e.Slug, e.PublishedAt.Time)...)
		}
	}
	return set, nil
}

func (s *Site) sitemap(w http.ResponseWriter, r *http.Request) {
	set, err := s.buildSitemap(r)
	if err != nil {
		s.log.ErrorContext(r.Context(), "build sitemap", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = io.WriteString(w, xml.Header)
	enc := xml.NewEncoder(w)
	if err := enc.Encode(set); err != nil {
		s.log.ErrorContext(r.Context(), "encode sitemap", logger.Error(err))
	}
}

func (s *Site) robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "User-agent: *\nAllow: /\nDisallow: /api/\n\nSitemap: "+s.baseURL+"/sitemap.xml\n")
}
