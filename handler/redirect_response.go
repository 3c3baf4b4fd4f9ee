package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

// redirectResponse handles redirects for both DataStar and regular requests
type redirectResponse struct {
	url  string
	code int
}

// Render performs the redirect. DataStar requests get an SSE redirect event.
func (r redirectResponse) Render(w http.ResponseWriter, req *http.Request) error {
	if IsDataStar(req) {
		return datastar.NewSSE(w, req).Redirect(r.url)
	}
	http.Redirect(w, req, r.url, r.code)
	return nil
}

// Redirect creates a redirect response with status 303 (See Other).
func Redirect(url string) Response {
	return redirectResponse{url: url, code: http.StatusSeeOther}
}

// RedirectWithCode creates a redirect response with a specific 3xx status code.
func RedirectWithCode(url string, code int) Response {
	return redirectResponse{url: url, code: code}
}

// redirectBackResponse handles redirect to referrer
type redirectBackResponse struct {
	fallback string
	code     int
}

func (r redirectBackResponse) Render(w http.ResponseWriter, req *http.Request) error {
	target := r.fallback
	if referer := req.Header.Get("Referer"); referer != "" && IsLocalRedirect(referer, req) {
		target = referer
	}
	return redirectResponse{url: target, code: r.code}.Render(w, req)
}

// RedirectBack redirects to the same-host referrer, or fallback.
func RedirectBack(fallback string) Response {
	return redirectBackResponse{fallback: fallback, code: http.StatusSeeOther}
}

// IsLocalRedirect reports whether target stays on the host serving r.
// Protocol-relative ("//evil.com") and backslash tricks are rejected, also
// when hidden in the path of an absolute same-host URL.
func IsLocalRedirect(target string, r *http.Request) bool {
	if target == "" || strings.HasPrefix(target, "//") || strings.Contains(target, `\`) {
		return false
	}
	parsed, err := url.Parse(target)
	if err != nil {
		return false
	}
	if strings.HasPrefix(parsed.Path, "//") || strings.Contains(parsed.Path, `\`) {
		return false
	}
	if parsed.Host == "" {
		return parsed.Scheme == "" && strings.HasPrefix(parsed.Path, "/")
	}
	return parsed.Host == r.Host
}

// IsSafeLocation reports whether loc can be sent as a Location header without
// leaving the site: it must be a rooted path that is not protocol-relative.
func IsSafeLocation(loc string) bool {
	return strings.HasPrefix(loc, "/") && !strings.HasPrefix(loc, "//") && !strings.Contains(loc, `\`)
}
