// Package logger builds *slog.Logger instances with functional options,
// consistent attribute helpers and transparent injection of values stored in
// context.Context.
//
// New picks a handler by Format: JSON for aggregation, logfmt text, or the
// compact tinted output from github.com/lmittmann/tint for local work. The
// handler is wrapped by LogHandlerDecorator which runs registered
// ContextExtractor callbacks on every record, so request-scoped values such
// as the request id show up without being passed explicitly.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "folio"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "listing served",
//	    logger.Kind("post"),
//	    logger.Locale("FR"),
//	    logger.Duration(time.Since(start)),
//	)
//
// Error and Errors return an empty attribute for nil errors, so
//
//	log.Info("done", logger.Error(err))
//
// needs no nil check.
package logger
