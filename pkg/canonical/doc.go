// Package canonical decides, once per request, whether an interactive client
// must be redirected to the canonical URL of a page and publishes the resolved
// locale to downstream handlers.
//
// The canonical form of every content URL carries an explicit "lang" marker
// with a valid tag. Interactive clients whose URL lacks the marker (or carries
// an invalid one) receive exactly one 302 redirect to the same path with the
// marker set to the detected locale. Crawlers are never redirected; they are
// served directly and the detected locale travels on the request instead.
//
// Downstream code reads the locale with FromRequest, which checks the request
// context first and the X-Language request header second.
package canonical
