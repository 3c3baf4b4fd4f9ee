package site

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/folio/handler"
	"github.com/dmitrymomot/folio/pkg/langsync"
	"github.com/dmitrymomot/folio/pkg/locale"
	"github.com/dmitrymomot/folio/pkg/logger"
)

// switchLanguage is the no-JS language toggle: GET /language?to=FR&next=/blog?lang=EN.
// It applies an explicit switch to next, persists the preference cookie and
// redirects. next must stay on this site; anything else falls back to the referrer or "/".
func (s *Site) switchLanguage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	to := locale.Parse(q.Get("to"))

	next := q.Get("next")
	if next == "" || !handler.IsLocalRedirect(next, r) {
		next = "/"
		if ref := r.Referer(); ref != "" && handler.IsLocalRedirect(ref, r) {
			next = ref
		}
	}
	target, err := url.Parse(next)
	if err != nil {
		target = &url.URL{Path: "/"}
	}
	target.Scheme, target.Host, target.User = "", "", nil

	var cell locale.Locale
	if c, err := r.Cookie(s.detector.CookieName()); err == nil {
		cell = locale.Parse(c.Value)
	}

	plan := langsync.Reduce(langsync.State{
		Cell: cell,
		URL:  target,
		Key:  s.detector.QueryParam(),
	}, langsync.Switch{Locale: to})

	if plan.Persist {
		if err := langsync.NewResponsePreference(w, s.cookies).Save(r.Context(), plan.Locale); err != nil {
			s.log.WarnContext(r.Context(), "persist language preference", logger.Error(err))
		}
	}
	if plan.ReplaceURL != nil {
		target = plan.ReplaceURL
	}

	s.log.DebugContext(r.Context(), "language switched",
		logger.Locale(plan.Locale.String()),
		logger.Event("language_switch"),
	)
	loc := locale.RequestURI(target)
	if !handler.IsSafeLocation(loc) {
		loc = locale.RequestURI(locale.WithMarker(&url.URL{Path: "/"}, s.detector.QueryParam(), plan.Locale))
	}
	if err := handler.Redirect(loc).Render(w, r); err != nil {
		s.log.ErrorContext(r.Context(), "redirect after language switch", logger.Error(err))
	}
}

// frenchAlias maps /fr and /fr/<page> onto the canonical /<page>?lang=FR.
func (s *Site) frenchAlias(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/fr")
	if path == "" {
		path = "/"
	}
	u := &url.URL{Path: path, RawQuery: r.URL.RawQuery}
	u = locale.WithMarker(u, s.detector.QueryParam(), locale.FR)
	http.Redirect(w, r, locale.RequestURI(u), http.StatusMovedPermanently)
}
