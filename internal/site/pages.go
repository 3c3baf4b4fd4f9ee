package site

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/folio/handler"
	"github.com/dmitrymomot/folio/pkg/binder"
	"github.com/dmitrymomot/folio/pkg/content"
	"github.com/dmitrymomot/folio/pkg/locale"
)

func (s *Site) meta(ctx handler.Context, title, description string) pageMeta {
	r := ctx.Request()
	return pageMeta{
		Title:       title,
		Description: description,
		Strings:     s.labels.Get(ctx.Locale()),
		Path:        r.URL.Path,
		RawQuery:    r.URL.RawQuery,
		BaseURL:     s.baseURL,
		Now:         s.now(),
	}
}

func (s *Site) home(ctx handler.Context, _ struct{}) handler.Response {
	l := ctx.Locale()
	posts, err := s.content.List(ctx, content.KindPost, l, content.NewRange(1, 3))
	if err != nil {
		return handler.Error(err)
	}
	projects, err := s.content.List(ctx, content.KindProject, l, content.NewRange(1, 2))
	if err != nil {
		return handler.Error(err)
	}
	m := s.meta(ctx, "", "")
	return handler.Templ(layout(m, homeView(m, posts, projects)))
}

func (s *Site) about(ctx handler.Context, _ struct{}) handler.Response {
	m := s.meta(ctx, "", "")
	m.Title = m.Strings.T("about.title")
	return handler.Templ(layout(m, aboutView(m)))
}

func (s *Site) blogIndex(ctx handler.Context, _ struct{}) handler.Response {
	return s.index(ctx, content.KindPost, "blog", "/blog/")
}

func (s *Site) workIndex(ctx handler.Context, _ struct{}) handler.Response {
	return s.index(ctx, content.KindProject, "work", "/work/")
}

func (s *Site) index(ctx handler.Context, kind content.Kind, id, base string) handler.Response {
	records, err := s.content.List(ctx, kind, ctx.Locale(), nil)
	if err != nil {
		return handler.Error(err)
	}
	m := s.meta(ctx, "", "")
	m.Title = m.Strings.T(id + ".title")
	m.Description = m.Strings.T(id + ".description")
	return handler.Templ(layout(m, indexView(m, id, base, records)))
}

type detailRequest struct {
	Slug string `path:"slug"`
}

// wrapDetail serves one record of kind, falling back to the other locale
// when the requested one is missing.
func (s *Site) wrapDetail(kind content.Kind) http.HandlerFunc {
	back, backKey := "/blog", "detail.back_blog"
	if kind == content.KindProject {
		back, backKey = "/work", "detail.back_work"
	}

	show := func(ctx handler.Context, req detailRequest) handler.Response {
		rec := s.content.GetBothLocales(ctx, kind, req.Slug).Pick(ctx.Locale())
		if rec == nil {
			return handler.Error(handler.ErrNotFound)
		}
		body, err := content.RenderHTML(rec)
		if err != nil {
			return handler.Error(err)
		}
		m := s.meta(ctx, rec.Metadata.Title, rec.Metadata.Summary)
		return handler.Templ(layout(m, detailView(m, rec, body, back, backKey)))
	}

	return handler.Wrap(show,
		handler.WithBinders[handler.Context, detailRequest](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[handler.Context, detailRequest](s.onError),
	)
}

func (s *Site) errorPage(p handler.ErrorPageParams) templ.Component {
	strs := s.labels.Get(p.Locale)
	m := pageMeta{
		Title:    strs.T("error.title"),
		Strings:  strs,
		Path:     "/",
		RawQuery: locale.QueryKey + "=" + p.Locale.String(),
		BaseURL:  s.baseURL,
		Now:      s.now(),
	}
	return layout(m, errorView(strs, p))
}

func (s *Site) errorToast(p handler.ErrorToastParams) templ.Component {
	return errorToast(s.labels.Get(p.Locale), p)
}
