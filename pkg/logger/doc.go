// Package logger builds *slog.Logger instances with functional options and
// provides attribute constructors for the billing panel domain.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "billing-panel"),
//	    logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.InfoContext(ctx, "billing updated",
//	    logger.Owner("org", orgID),
//	    logger.Action("cancel"),
//	)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed without a nil check. Components that accept an optional logger fall
// back to Discard.
package logger
