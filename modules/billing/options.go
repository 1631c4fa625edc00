package billing

import (
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/billingpanel/handler"
	"github.com/dmitrymomot/billingpanel/pkg/panel"
	"github.com/dmitrymomot/billingpanel/pkg/prompt"
)

// Option configures a Service.
type Option func(*Service)

// WithBasePath sets the prefix the router is mounted under, e.g. "/billing".
func WithBasePath(p string) Option {
	return func(s *Service) {
		s.basePath = strings.TrimRight(p, "/")
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithViews replaces some or all of the default views.
func WithViews(v Views) Option {
	return func(s *Service) { s.views = v }
}

// WithPanelOptions are applied to every panel instance, e.g. panel.WithConfig
// or panel.WithMetrics.
func WithPanelOptions(opts ...panel.Option) Option {
	return func(s *Service) {
		s.panelOpts = append(s.panelOpts, opts...)
	}
}

func WithBroker(b *prompt.Broker) Option {
	return func(s *Service) {
		if b != nil {
			s.broker = b
		}
	}
}

func WithErrorHandler(h handler.ErrorHandler[handler.Context]) Option {
	return func(s *Service) {
		if h != nil {
			s.errorHandler = h
		}
	}
}

// WithClock replaces time.Now for day counts.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
