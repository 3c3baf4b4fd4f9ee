package langsync

import (
	"net/url"
	"strings"

	"github.com/dmitrymomot/folio/pkg/locale"
)

// Href builds a link to target carrying the marker for l.
// Query parameters of the current page are carried over unless target sets
// the same key; the previous marker is always replaced.
func Href(target, currentQuery string, l locale.Locale) string {
	rest, fragment, hasFragment := strings.Cut(target, "#")
	path, query, _ := strings.Cut(rest, "?")
	if path == "" {
		path = "/"
	}

	query = locale.SetMarker(mergeQuery(query, currentQuery), locale.QueryKey, l)

	out := path + "?" + query
	if hasFragment {
		out += "#" + fragment
	}
	return out
}

func mergeQuery(target, current string) string {
	if current == "" {
		return target
	}

	own := make(map[string]struct{})
	parts := make([]string, 0, 8)
	for part := range strings.SplitSeq(target, "&") {
		if part == "" {
			continue
		}
		own[queryKey(part)] = struct{}{}
		parts = append(parts, part)
	}
	for part := range strings.SplitSeq(current, "&") {
		if part == "" {
			continue
		}
		if _, ok := own[queryKey(part)]; ok {
			continue
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "&")
}

func queryKey(part string) string {
	k, _, _ := strings.Cut(part, "=")
	if v, err := url.QueryUnescape(k); err == nil {
		return v
	}
	return k
}
