package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/folio/internal/site"
	"github.com/dmitrymomot/folio/pkg/clientip"
	"github.com/dmitrymomot/folio/pkg/config"
	"github.com/dmitrymomot/folio/pkg/environment"
	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/requestid"
)

func main() {
	var cfg site.Config
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Service),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := site.Run(ctx, cfg, log); err != nil {
		log.Error("site stopped", logger.Error(err))
		stop()
		os.Exit(1)
	}
}
