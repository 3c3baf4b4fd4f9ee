package clientip

import "net/http"

// Middleware resolves the client IP once per request and stores it in the
// request context. With no arguments DefaultHeaders are trusted.
func Middleware(trusted ...string) func(http.Handler) http.Handler {
	if len(trusted) == 0 {
		trusted = DefaultHeaders
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := FromRequest(r, trusted...)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), ip)))
		})
	}
}
