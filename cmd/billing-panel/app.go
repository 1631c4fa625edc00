package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"

	billingmodule "github.com/dmitrymomot/billingpanel/modules/billing"
	"github.com/dmitrymomot/billingpanel/pkg/billing"
	"github.com/dmitrymomot/billingpanel/pkg/httpserver"
	"github.com/dmitrymomot/billingpanel/pkg/i18n"
	"github.com/dmitrymomot/billingpanel/pkg/logger"
	"github.com/dmitrymomot/billingpanel/pkg/panel"
	"github.com/dmitrymomot/billingpanel/pkg/redis"
	"github.com/dmitrymomot/billingpanel/pkg/requestid"
	"github.com/dmitrymomot/billingpanel/svc/directory"
)

// app holds the wired components of the serve command.
type app struct {
	cfg      appConfig
	log      *slog.Logger
	dir      *directory.Directory
	module   *billingmodule.Service
	registry *prometheus.Registry
	redis    goredis.UniversalClient
	feed     *directory.RedisFeed
}

// newApp wires everything except the redis connection, which connectRedis adds.
func newApp(ctx context.Context, cfg appConfig, log *slog.Logger) (*app, error) {
	provider, err := newProvider(cfg)
	if err != nil {
		return nil, err
	}

	dirOpts := []directory.Option{directory.WithLogger(log)}
	if provider != nil {
		dirOpts = append(dirOpts, directory.WithProvider(cfg.Provider, provider))
	}
	if cfg.DemoData {
		dirOpts = append(dirOpts, directory.WithOwners(demoOwners(time.Now())...))
	}
	dir := directory.New(dirOpts...)

	translator, err := billingmodule.LoadTranslator(ctx,
		i18n.WithDefaultLanguage(cfg.DefaultLanguage),
		i18n.WithLogger(log),
		i18n.WithMissingTranslationsLogging(cfg.Env != logger.EnvProduction),
	)
	if err != nil {
		_ = dir.Close()
		return nil, fmt.Errorf("load translations: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := panel.MustNewMetrics(registry)

	module, err := billingmodule.NewService(dir, translator,
		billingmodule.WithBasePath(cfg.BasePath),
		billingmodule.WithLogger(log),
		billingmodule.WithPanelOptions(
			panel.WithConfig(cfg.Panel),
			panel.WithMetrics(metrics),
		),
	)
	if err != nil {
		_ = dir.Close()
		return nil, err
	}

	return &app{
		cfg:      cfg,
		log:      log,
		dir:      dir,
		module:   module,
		registry: registry,
	}, nil
}

func newProvider(cfg appConfig) (billing.Provider, error) {
	switch cfg.Provider {
	case providerNone, "":
		return nil, nil
	case providerPaddle:
		return billing.NewPaddleProvider(cfg.Paddle)
	case providerStripe:
		return billing.NewStripeProvider(cfg.Stripe)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

// connectRedis attaches the push feed when REDIS_URL is set.
func (a *app) connectRedis(ctx context.Context) error {
	if !a.cfg.Redis.Enabled() {
		a.log.InfoContext(ctx, "redis not configured, push updates disabled")
		return nil
	}
	client, err := redis.Connect(ctx, a.cfg.Redis)
	if err != nil {
		return err
	}
	a.redis = client
	a.feed = directory.NewRedisFeed(client, a.dir,
		directory.WithChannel(a.cfg.UpdatesChannel),
		directory.WithFeedLogger(a.log),
	)
	return nil
}

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)

	var checks []func(context.Context) error
	if a.redis != nil {
		checks = append(checks, redis.Healthcheck(a.redis))
	}
	r.Get("/healthz", httpserver.HealthCheckHandler(a.log))
	r.Get("/readyz", httpserver.HealthCheckHandler(a.log, append(checks, a.module.Healthcheck)...))
	r.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{Registry: a.registry}))

	r.Mount(a.cfg.BasePath, a.module.Handle())
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, a.cfg.BasePath+"/", http.StatusFound)
	})
	return r
}

func (a *app) close() {
	if err := a.module.Close(); err != nil {
		a.log.Error("failed to close billing module", logger.Error(err))
	}
	if err := a.dir.Close(); err != nil {
		a.log.Error("failed to close directory", logger.Error(err))
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error("failed to close redis client", logger.Error(err))
		}
	}
}
