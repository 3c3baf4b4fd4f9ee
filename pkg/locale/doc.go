// Package locale defines the two content languages served by the site and the
// wire conventions that carry them between requests, URLs and cookies.
//
// A Locale is a closed, two-valued type: EN and FR. Untrusted input is turned
// into a Locale with Parse, which never fails. Anything that is not exactly
// "FR" becomes EN, so callers never observe an "unknown" language.
//
// # Wire conventions
//
//   - Query marker: every canonical content URL carries ?lang=EN or ?lang=FR.
//   - Preference cookie: "language", path "/", max-age one year.
//   - Side channel: the resolved locale travels to page handlers in the
//     X-Language request header and in the request context.
//   - Path suffix: a trailing "-fr" path segment hints French to crawlers.
//
// # Usage
//
//	l := locale.Parse(r.URL.Query().Get(locale.QueryKey))
//	ctx := locale.WithContext(r.Context(), l)
//	...
//	current := locale.FromContext(ctx) // EN when unset
package locale
