package main

import (
	"github.com/dmitrymomot/billingpanel/pkg/billing"
	"github.com/dmitrymomot/billingpanel/pkg/httpserver"
	"github.com/dmitrymomot/billingpanel/pkg/panel"
	"github.com/dmitrymomot/billingpanel/pkg/redis"
)

// Providers selectable with BILLING_PROVIDER.
const (
	providerNone   = "none"
	providerPaddle = "paddle"
	providerStripe = "stripe"
)

type appConfig struct {
	Env             string `env:"APP_ENV" envDefault:"development"`
	ServiceName     string `env:"SERVICE_NAME" envDefault:"billing-panel"`
	Provider        string `env:"BILLING_PROVIDER" envDefault:"none"`
	UpdatesChannel  string `env:"BILLING_UPDATES_CHANNEL" envDefault:"billing:subscriptions"`
	BasePath        string `env:"BILLING_BASE_PATH" envDefault:"/billing"`
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"en"`
	// DemoData seeds the directory with sample owners.
	DemoData bool `env:"BILLING_DEMO_DATA" envDefault:"true"`

	HTTP   httpserver.Config
	Redis  redis.Config
	Panel  panel.Config
	Paddle billing.PaddleConfig
	Stripe billing.StripeConfig
}
