// Package httpserver runs the site's http.Handler with configured timeouts,
// graceful shutdown on context cancellation or SIGINT/SIGTERM, and health
// probes.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// The listener is opened before start hooks run, so Addr reports the bound
// address even for ":0". Listen failures are wrapped with ErrStart and
// shutdown failures with ErrShutdown.
//
// HealthCheckHandler serves liveness ("ALIVE") when given no checks and
// readiness ("READY" / 503 "NOT_READY") otherwise:
//
//	r.Get("/healthz", httpserver.HealthCheckHandler(log,
//		httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)},
//	))
package httpserver
