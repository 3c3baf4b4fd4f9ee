package binder

import "net/http"

// Query creates a query parameter binder function.
//
// Struct tags:
//   - `query:"name"` binds to query parameter "name"
//   - `query:"-"` skips the field
//   - no tag binds to the lower-cased field name
//
// Supported types: string kinds, ints, uints, floats, bools, slices of those
// (?tag=a&tag=b or ?tag=a,b), pointers for optional fields, and any type
// implementing encoding.TextUnmarshaler.
//
// Example:
//
//	type ListRequest struct {
//		Language string `query:"language"`
//		Start    int    `query:"start"`
//		End      int    `query:"end"`
//	}
//
//	r.Get("/api/projects", handler.Wrap(listProjects,
//		handler.WithBinders[handler.Context, ListRequest](binder.Query()),
//	))
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrFailedToParseQuery)
	}
}
