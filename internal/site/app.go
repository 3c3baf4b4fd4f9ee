package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/dmitrymomot/folio/pkg/content"
	"github.com/dmitrymomot/folio/pkg/cookie"
	"github.com/dmitrymomot/folio/pkg/environment"
	"github.com/dmitrymomot/folio/pkg/httpserver"
	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/ratelimiter"
	"github.com/dmitrymomot/folio/pkg/redis"
)

// Run builds the site described by cfg and serves it until ctx is cancelled.
func Run(ctx context.Context, cfg Config, log *slog.Logger) error {
	fsys := os.DirFS(cfg.ContentDir)

	cache, cacheCheck, closeCache, err := openCache(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeCache()

	bag, err := LoadLabels(fsys, cfg.LabelsDir)
	if err != nil {
		return fmt.Errorf("load labels: %w", err)
	}

	resolverOpts := []content.Option{content.WithLogger(log.With(logger.Component("content")))}
	if cache != nil {
		resolverOpts = append(resolverOpts, content.WithCache(cache))
	}

	checks := []httpserver.Check{{Name: "content", Fn: contentCheck(fsys)}}
	if cacheCheck.Fn != nil {
		checks = append(checks, cacheCheck)
	}

	opts := []Option{
		WithLogger(log),
		WithBaseURL(cfg.BaseURL),
		WithCookies(cookie.NewFromConfig(cfg.Cookie)),
		WithEnvironment(environment.Parse(cfg.Env)),
		WithReadiness(checks...),
		WithTrustedProxyHeaders(cfg.TrustedProxyHeaders...),
	}
	if cfg.RateLimit.Enabled() {
		store := ratelimiter.NewMemoryStore()
		defer store.Close()
		limiter, err := ratelimiter.NewBucket(store, cfg.RateLimit)
		if err != nil {
			return fmt.Errorf("api rate limit: %w", err)
		}
		opts = append(opts, WithAPILimiter(limiter))
	}

	s := New(content.NewResolver(fsys, resolverOpts...), bag, opts...)

	log.InfoContext(ctx, "starting site",
		slog.String("content_dir", cfg.ContentDir),
		slog.String("cache", cfg.CacheDriver),
		slog.String("base_url", cfg.BaseURL),
	)
	return httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, s.Handler())
}

// openCache returns the listing cache selected by cfg.CacheDriver, or nil for "none".
func openCache(ctx context.Context, cfg Config, log *slog.Logger) (content.Cache, httpserver.Check, func(), error) {
	noop := func() {}
	switch cfg.CacheDriver {
	case "", CacheNone:
		return nil, httpserver.Check{}, noop, nil
	case CacheLRU:
		return content.NewMemoryCache(cfg.CacheSize, cfg.CacheTTL), httpserver.Check{}, noop, nil
	case CacheRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, httpserver.Check{}, noop, fmt.Errorf("connect redis: %w", err)
		}
		store := redis.NewStore(client, cfg.Redis.KeyPrefix)
		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Warn("close redis", logger.Error(err))
			}
		}
		check := httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)}
		return content.NewRedisCache(store, cfg.CacheTTL, log), check, closeFn, nil
	default:
		return nil, httpserver.Check{}, noop, fmt.Errorf("%w: %q", ErrUnknownCacheDriver, cfg.CacheDriver)
	}
}

func contentCheck(fsys fs.FS) func(context.Context) error {
	return func(context.Context) error {
		info, err := fs.Stat(fsys, ".")
		if err != nil {
			return errors.Join(ErrContentUnavailable, err)
		}
		if !info.IsDir() {
			return ErrContentUnavailable
		}
		return nil
	}
}
