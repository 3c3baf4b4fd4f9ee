package site

import (
	"net/http"

	"github.com/dmitrymomot/folio/handler"
	"github.com/dmitrymomot/folio/pkg/binder"
	"github.com/dmitrymomot/folio/pkg/content"
	"github.com/dmitrymomot/folio/pkg/locale"
	"github.com/dmitrymomot/folio/pkg/logger"
)

type postsRequest struct {
	Language string `query:"language"`
}

type projectsRequest struct {
	Language string `query:"language"`
	Start    *int   `query:"start"`
	End      *int   `query:"end"`
}

// rng is nil unless start was given; a missing end leaves the range open.
func (r projectsRequest) rng() *content.Range {
	if r.Start == nil {
		return nil
	}
	end := 0
	if r.End != nil {
		end = *r.End
	}
	return content.NewRange(*r.Start, end)
}

type projectRequest struct {
	Language string `query:"language"`
	Slug     string `query:"slug"`
}

func apiWrap[R any](s *Site, h handler.HandlerFunc[handler.Context, R]) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[handler.Context, R](binder.Query()),
		handler.WithErrorHandler[handler.Context, R](s.onError),
	)
}

// apiBlogPosts answers with a bare JSON array; a failure yields [] and 500.
func (s *Site) apiBlogPosts() http.HandlerFunc {
	return apiWrap(s, func(ctx handler.Context, req postsRequest) handler.Response {
		l := locale.Parse(req.Language)
		posts, err := s.content.List(ctx, content.KindPost, l, nil)
		if err != nil {
			s.log.ErrorContext(ctx, "list posts", logger.Locale(l.String()), logger.Error(err))
			return handler.JSON([]content.Record{}, handler.WithJSONStatus(http.StatusInternalServerError))
		}
		if posts == nil {
			posts = []content.Record{}
		}
		return handler.JSON(posts)
	})
}

func (s *Site) apiProjects() http.HandlerFunc {
	return apiWrap(s, func(ctx handler.Context, req projectsRequest) handler.Response {
		l := locale.Parse(req.Language)
		projects, err := s.content.List(ctx, content.KindProject, l, req.rng())
		if err != nil {
			s.log.ErrorContext(ctx, "list projects", logger.Locale(l.String()), logger.Error(err))
			return handler.JSONError(handler.ErrInternalServerError.WithMessage("Failed to fetch projects"))
		}
		if projects == nil {
			projects = []content.Record{}
		}
		return handler.JSON(map[string][]content.Record{"projects": projects})
	})
}

func (s *Site) apiProject() http.HandlerFunc {
	return apiWrap(s, func(ctx handler.Context, req projectRequest) handler.Response {
		if req.Slug == "" {
			return handler.JSONError(handler.ErrBadRequest.WithMessage("Slug parameter is required"))
		}
		l := locale.Parse(req.Language)
		project, err := s.content.GetBySlug(ctx, content.KindProject, req.Slug, l)
		if err != nil {
			s.log.ErrorContext(ctx, "get project", logger.Locale(l.String()), logger.Slug(req.Slug), logger.Error(err))
			return handler.JSONError(handler.ErrInternalServerError.WithMessage("Failed to fetch project"))
		}
		if project == nil {
			return handler.JSONError(handler.ErrNotFound.WithMessage("Project not found"))
		}
		return handler.JSON(map[string]*content.Record{"project": project})
	})
}
