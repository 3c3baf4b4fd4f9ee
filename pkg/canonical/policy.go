package canonical

import (
	"net/url"

	"github.com/dmitrymomot/folio/pkg/langdetect"
	"github.com/dmitrymomot/folio/pkg/locale"
)

// Decision is the output of the redirect policy for one request.
type Decision struct {
	// Locale is the value to publish on the side channel.
	Locale locale.Locale
	// Redirect is true when the client must be sent to Location.
	Redirect bool
	// Location is a path plus query, set only when Redirect is true.
	Location string
}

// Decide applies the redirect policy to a detection result.
// key is the marker query key; an empty key means locale.QueryKey.
func Decide(res langdetect.Result, u *url.URL, key string) Decision {
	if key == "" {
		key = locale.QueryKey
	}

	if res.Automated {
		return Decision{Locale: res.Locale}
	}

	if marker, ok := locale.Marker(u.RawQuery, key); ok && locale.IsValid(marker) {
		return Decision{Locale: locale.Parse(marker)}
	}

	return Decision{
		Locale:   res.Locale,
		Redirect: true,
		Location: locale.RequestURI(locale.WithMarker(u, key, res.Locale)),
	}
}
