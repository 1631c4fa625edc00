package panel

import (
	"log/slog"

	"github.com/dmitrymomot/billingpanel/pkg/logger"
)

// Option configures a Panel, Runner or Chooser.
type Option func(*options)

type options struct {
	cfg       Config
	localizer Localizer
	logger    *slog.Logger
	metrics   *Metrics
	scheduler Scheduler
}

func newOptions(opts []Option) options {
	o := options{
		cfg:       DefaultConfig(),
		localizer: DefaultLocalizer(),
		logger:    logger.Discard(),
		scheduler: SystemScheduler(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithLocalizer sets the localizer used for labels, prompt options and the fallback alert.
func WithLocalizer(l Localizer) Option {
	return func(o *options) {
		if l != nil {
			o.localizer = l
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics enables action and prompt counters.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithScheduler replaces the timer used to revert success and fail back to idle.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		if s != nil {
			o.scheduler = s
		}
	}
}
