package langsync

import (
	"log/slog"
	"strings"
)

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithLogger sets the logger used for effect failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Synchronizer) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithQueryKey overrides the marker key (default "lang").
func WithQueryKey(key string) Option {
	return func(s *Synchronizer) {
		if key != "" {
			s.key = key
		}
	}
}

// WithHardReload marks paths whose locale switch requires a full reload.
func WithHardReload(match func(path string) bool) Option {
	return func(s *Synchronizer) {
		s.hardReload = match
	}
}

// DetailPages matches paths strictly below any of the given prefixes,
// e.g. "/blog/hello" for prefix "/blog/" but not "/blog/" itself.
func DetailPages(prefixes ...string) func(path string) bool {
	return func(path string) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(path, p) && len(strings.Trim(path[len(p):], "/")) > 0 {
				return true
			}
		}
		return false
	}
}
