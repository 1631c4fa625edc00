package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/billingpanel/pkg/config"
	"github.com/dmitrymomot/billingpanel/pkg/httpserver"
	"github.com/dmitrymomot/billingpanel/pkg/logger"
	"github.com/dmitrymomot/billingpanel/pkg/requestid"
)

func newServeCmd() *cobra.Command {
	var envFiles []string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(envFiles) > 0 {
				if err := config.LoadEnv(envFiles...); err != nil {
					return err
				}
			}
			var cfg appConfig
			if err := config.Load(&cfg); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringSliceVar(&envFiles, "env-file", nil, "additional .env files to load")
	return cmd
}

func serve(ctx context.Context, cfg appConfig) error {
	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.ServiceName),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	if err := a.connectRedis(ctx); err != nil {
		a.close()
		return err
	}

	if a.feed != nil {
		go func() {
			if err := a.feed.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.ErrorContext(ctx, "billing update feed stopped", logger.Error(err))
			}
		}()
	}

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithStopHook(a.close),
	)
	log.InfoContext(ctx, "starting billing panel",
		logger.Provider(cfg.Provider),
		logger.Channel(cfg.UpdatesChannel),
	)
	return srv.Run(ctx, a.routes())
}
