// Package handler provides type-safe HTTP request handling for the site.
//
// Handlers are generic functions that receive a Context and a bound request
// struct and return a Response:
//
//	type ProjectRequest struct {
//		Language string `query:"language"`
//		Slug     string `query:"slug"`
//	}
//
//	func showProject(ctx handler.Context, req ProjectRequest) handler.Response {
//		if req.Slug == "" {
//			return handler.JSONError(handler.ErrBadRequest.WithMessage("Slug parameter is required"))
//		}
//		...
//		return handler.JSON(map[string]any{"project": rec})
//	}
//
//	r.Get("/api/project", handler.Wrap(showProject,
//		handler.WithBinders[handler.Context, ProjectRequest](binder.Query()),
//	))
//
// # Responses
//
//	handler.JSON(v)                   // v encoded as-is, 200
//	handler.JSONError(err)            // {"error": "...", "code": "..."}
//	handler.Templ(component)          // HTML, or an SSE patch for DataStar requests
//	handler.TemplWithStatus(c, 404)   // HTML with a status code
//	handler.TemplPartial(part, full)  // partial for DataStar, full page otherwise
//	handler.Redirect("/blog?lang=FR") // 303, or an SSE redirect for DataStar
//	handler.Error(err)                // defer to the configured error handler
//
// # Errors
//
// HTTPError carries a status code and a key; ValidationError carries per-field
// messages. NewErrorHandler classifies errors, logs them with the request id and
// locale, and renders a JSON body, a DataStar toast or an error page depending
// on the request.
//
// # Context
//
// Context embeds the request context and exposes the request, the response
// writer, a lazily opened DataStar SSE generator and the locale resolved by
// canonical.Middleware.
package handler
