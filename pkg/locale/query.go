package locale

import (
	"net/url"
	"strings"
)

// Marker returns the raw value of the locale marker key in rawQuery and whether the key is present.
func Marker(rawQuery, key string) (string, bool) {
	for part := range strings.SplitSeq(rawQuery, "&") {
		k, v, _ := strings.Cut(part, "=")
		if unescape(k) != key {
			continue
		}
		return unescape(v), true
	}
	return "", false
}

// SetMarker returns rawQuery with key set to l.
// Every other parameter is kept byte for byte and in its original order.
// The first occurrence of key is replaced in place and later duplicates are removed;
// when key is absent it is appended.
func SetMarker(rawQuery, key string, l Locale) string {
	pair := url.QueryEscape(key) + "=" + l.String()
	if rawQuery == "" {
		return pair
	}

	parts := strings.Split(rawQuery, "&")
	out := make([]string, 0, len(parts)+1)
	replaced := false
	for _, part := range parts {
		if part == "" {
			continue
		}
		k, _, _ := strings.Cut(part, "=")
		if unescape(k) != key {
			out = append(out, part)
			continue
		}
		if !replaced {
			out = append(out, pair)
			replaced = true
		}
	}
	if !replaced {
		out = append(out, pair)
	}
	return strings.Join(out, "&")
}

// WithMarker returns a copy of u carrying the marker for l.
func WithMarker(u *url.URL, key string, l Locale) *url.URL {
	c := *u
	c.RawQuery = SetMarker(u.RawQuery, key, l)
	c.ForceQuery = false
	return &c
}

// RequestURI formats u as a path plus query, without scheme or host.
func RequestURI(u *url.URL) string {
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery == "" {
		return path
	}
	return path + "?" + u.RawQuery
}

func unescape(s string) string {
	if v, err := url.QueryUnescape(s); err == nil {
		return v
	}
	return s
}
