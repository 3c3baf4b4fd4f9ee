package site

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/folio/handler"
	"github.com/dmitrymomot/folio/pkg/content"
	"github.com/dmitrymomot/folio/pkg/labels"
	"github.com/dmitrymomot/folio/pkg/langsync"
	"github.com/dmitrymomot/folio/pkg/locale"
)

// htmlWriter keeps the first write error so views can be written linearly.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(parts ...string) {
	for _, p := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, p)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) render(ctx context.Context, c templ.Component) {
	if h.err == nil && c != nil {
		h.err = c.Render(ctx, h.w)
	}
}

// pageMeta is what the layout needs to know about the page it wraps.
type pageMeta struct {
	Title       string
	Description string
	Strings     labels.Strings
	Path        string
	RawQuery    string
	BaseURL     string
	Now         time.Time
}

func (m pageMeta) locale() locale.Locale {
	return m.Strings.Locale()
}

// link builds an in-site href carrying the page locale.
func (m pageMeta) link(target string) string {
	return langsync.Href(target, "", m.locale())
}

// toggleHref points at the no-JS language switch for the current page.
func (m pageMeta) toggleHref() string {
	next := (&url.URL{Path: m.Path, RawQuery: m.RawQuery}).RequestURI()
	q := url.Values{"to": {m.locale().Other().String()}, "next": {next}}
	return "/language?" + q.Encode()
}

// fullTitle is the document title: the page title followed by the site name.
func (m pageMeta) fullTitle() string {
	name := m.Strings.T("site.name")
	if m.Title == "" {
		return name
	}
	return m.Title + " | " + name
}

func (m pageMeta) metaDescription() string {
	if m.Description != "" {
		return m.Description
	}
	return m.Strings.T("site.description")
}

var navItems = []struct{ path, key string }{
	{"/", "nav.home"},
	{"/about", "nav.about"},
	{"/work", "nav.work"},
	{"/blog", "nav.blog"},
}

func recordList(m pageMeta, base string, records []content.Record, empty string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		if len(records) == 0 {
			h.raw(`<p class="empty">`)
			h.text(m.Strings.T(empty))
			h.raw(`</p>`)
			return h.err
		}
		h.raw(`<ul class="records">`)
		for _, rec := range records {
			h.raw(`<li><article><h3><a href="`)
			h.text(m.link(base + rec.Slug))
			h.raw(`">`)
			h.text(rec.Metadata.Title)
			h.raw(`</a></h3>`)
			if !rec.Metadata.PublishedAt.IsZero() {
				h.raw(`<time datetime="`, rec.Metadata.PublishedAt.Format(time.DateOnly), `">`)
				h.text(content.FormatDate(rec.Metadata.PublishedAt.Time, m.Now, m.locale(), false))
				h.raw(`</time>`)
			}
			if rec.Metadata.Summary != "" {
				h.raw(`<p>`)
				h.text(rec.Metadata.Summary)
				h.raw(`</p>`)
			}
			h.raw(`</article></li>`)
		}
		h.raw(`</ul>`)
		return h.err
	})
}

func homeView(m pageMeta, posts, projects []content.Record) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		t := m.Strings.T
		h.raw(`<section class="hero"><h1>`)
		h.text(t("home.title"))
		h.raw(`</h1><p>`)
		h.text(t("home.intro"))
		h.raw(`</p></section>`)

		h.raw(`<section id="projects"><h2>`)
		h.text(t("home.latest_projects"))
		h.raw(`</h2>`)
		h.render(ctx, recordList(m, "/work/", projects, "work.empty"))
		h.raw(`<a href="`)
		h.text(m.link("/work"))
		h.raw(`">`)
		h.text(t("home.all_projects"))
		h.raw(`</a></section>`)

		h.raw(`<section id="posts"><h2>`)
		h.text(t("home.latest_posts"))
		h.raw(`</h2>`)
		h.render(ctx, recordList(m, "/blog/", posts, "blog.empty"))
		h.raw(`<a href="`)
		h.text(m.link("/blog"))
		h.raw(`">`)
		h.text(t("home.all_posts"))
		h.raw(`</a></section>`)
		return h.err
	})
}

func aboutView(m pageMeta) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<section class="about"><h1>`)
		h.text(m.Strings.T("about.title"))
		h.raw(`</h1><p>`)
		h.text(m.Strings.T("about.body"))
		h.raw(`</p></section>`)
		return h.err
	})
}

func indexView(m pageMeta, id, base string, records []content.Record) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<section id="`, id, `"><h1>`)
		h.text(m.Title)
		h.raw(`</h1>`)
		h.render(ctx, recordList(m, base, records, id+".empty"))
		h.raw(`</section>`)
		return h.err
	})
}

// detailView renders rec; body is its pre-rendered HTML.
func detailView(m pageMeta, rec *content.Record, body []byte, backPath, backKey string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		l := m.locale()
		t := m.Strings.T

		h.raw(`<article lang="`, rec.Locale.HrefLang(), `"><header><h1>`)
		h.text(rec.Metadata.Title)
		h.raw(`</h1>`)
		if !rec.Metadata.PublishedAt.IsZero() {
			h.raw(`<time datetime="`, rec.Metadata.PublishedAt.Format(time.DateOnly), `">`)
			h.text(content.FormatDate(rec.Metadata.PublishedAt.Time, m.Now, l, true))
			h.raw(`</time>`)
		}
		h.raw(`</header>`)
		if rec.Locale != l {
			h.raw(`<p class="notice" role="note">`)
			h.text(t("detail.fallback", "language", t("language."+rec.Locale.String())))
			h.raw(`</p>`)
		}
		if rec.Metadata.Image != "" {
			h.raw(`<img src="`)
			h.text(rec.Metadata.Image)
			h.raw(`" alt="">`)
		}
		h.raw(`<div class="prose">`, string(body), `</div>`)
		if rec.Metadata.Link != "" {
			h.raw(`<p><a href="`)
			h.text(rec.Metadata.Link)
			h.raw(`" rel="noopener">`)
			h.text(rec.Metadata.Link)
			h.raw(`</a></p>`)
		}
		h.raw(`<footer><a href="`)
		h.text(m.link(backPath))
		h.raw(`">`)
		h.text(t(backKey))
		h.raw(`</a></footer></article>`)
		return h.err
	})
}

func errorView(s labels.Strings, p handler.ErrorPageParams) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		msg := s.T("error.title")
		if p.StatusCode == http.StatusNotFound {
			msg = s.T("error.not_found")
		}
		h.raw(`<section class="error"><h1>`, strconv.Itoa(p.StatusCode), `</h1><p>`)
		h.text(msg)
		h.raw(`</p>`)
		if p.RequestID != "" {
			h.raw(`<p class="request-id"><code>`)
			h.text(p.RequestID)
			h.raw(`</code></p>`)
		}
		h.raw(`<a href="`)
		h.text(p.HomeURL)
		h.raw(`">`)
		h.text(s.T("error.home"))
		h.raw(`</a></section>`)
		return h.err
	})
}

// errorToast is the fragment pushed to DataStar clients when a request fails.
func errorToast(s labels.Strings, p handler.ErrorToastParams) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="toast toast-`, templ.EscapeString(p.Type), `" role="alert">`)
		h.text(s.T("error.title"))
		if p.RequestID != "" {
			h.raw(` <code>`)
			h.text(p.RequestID)
			h.raw(`</code>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}
