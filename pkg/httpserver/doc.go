// Package httpserver runs an http.Handler until a context is canceled and
// then shuts it down gracefully.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Request contexts are canceled as soon as shutdown begins, which is what
// lets open DataStar event streams return. HealthCheckHandler serves
// liveness and readiness checks.
package httpserver
