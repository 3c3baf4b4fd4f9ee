package content

import (
	"log/slog"
	"strings"
)

// Option configures a Resolver.
type Option func(*Resolver)

// WithDir sets the directory of kind relative to the filesystem root.
func WithDir(kind Kind, dir string) Option {
	return func(r *Resolver) {
		if dir = strings.Trim(dir, "/"); dir != "" {
			r.dirs[kind] = dir
		}
	}
}

// WithExtensions sets the accepted file extensions, including the dot.
func WithExtensions(exts ...string) Option {
	return func(r *Resolver) {
		if len(exts) > 0 {
			r.exts = exts
		}
	}
}

// WithWorkers bounds how many files are parsed concurrently.
func WithWorkers(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.workers = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithCache enables listing caching.
func WithCache(c Cache) Option {
	return func(r *Resolver) { r.cache = c }
}
