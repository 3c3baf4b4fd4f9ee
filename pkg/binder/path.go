package binder

import (
	"fmt"
	"net/http"
	"reflect"
)

// Path creates a path parameter binder function using the provided extractor,
// typically chi.URLParam.
//
// Struct tags follow Query: `path:"name"`, `path:"-"`.
//
// Example:
//
//	type DetailRequest struct {
//		Slug string `path:"slug"`
//	}
//
//	r.Get("/blog/{slug}", handler.Wrap(showPost,
//		handler.WithBinders[handler.Context, DetailRequest](binder.Path(chi.URLParam), binder.Query()),
//	))
func Path(extractor func(r *http.Request, fieldName string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrFailedToParsePath)
		}

		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Ptr || rv.IsNil() {
			return fmt.Errorf("%w: target must be a non-nil pointer", ErrFailedToParsePath)
		}
		rt := rv.Elem().Type()
		if rt.Kind() != reflect.Struct {
			return fmt.Errorf("%w: target must be a pointer to struct", ErrFailedToParsePath)
		}

		values := make(map[string][]string, rt.NumField())
		for i := range rt.NumField() {
			name, skip := parseFieldTag(rt.Field(i), "path")
			if skip || !rt.Field(i).IsExported() {
				continue
			}
			if value := extractor(r, name); value != "" {
				values[name] = []string{value}
			}
		}

		return bindToStruct(v, "path", values, ErrFailedToParsePath)
	}
}
