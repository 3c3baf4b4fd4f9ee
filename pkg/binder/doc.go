// Package binder binds HTTP request data to Go structs through struct tags.
//
// Query binds URL query parameters (`query:"name"`) and Path binds router path
// parameters (`path:"name"`) through an extractor such as chi.URLParam. Both
// return functions with the signature func(*http.Request, any) error so they
// plug directly into handler.WithBinders.
//
// Absent parameters leave fields at their zero value. Values that cannot be
// converted to the field type produce an error wrapping ErrFailedToParseQuery
// or ErrFailedToParsePath, which the site maps to 400 Bad Request.
//
// # Usage
//
//	type ProjectRequest struct {
//		Language string `query:"language"`
//		Slug     string `query:"slug"`
//	}
//
//	var req ProjectRequest
//	if err := binder.Query()(r, &req); err != nil {
//		// handle error
//	}
package binder
