package panel

import (
	"context"
	"time"

	"github.com/dmitrymomot/billingpanel/pkg/billing"
)

// Updater performs the billing mutation. Implementations refresh the owner's
// subscription record themselves; the panel never mutates it.
type Updater interface {
	UpdateBilling(ctx context.Context, params billing.UpdateParams) error
}

// UpdaterFunc adapts a function to Updater.
type UpdaterFunc func(ctx context.Context, params billing.UpdateParams) error

func (f UpdaterFunc) UpdateBilling(ctx context.Context, params billing.UpdateParams) error {
	return f(ctx, params)
}

// Prompter presents an ordered list of options and waits for a pick.
// ok is false when the prompt was dismissed.
type Prompter interface {
	Choose(ctx context.Context, title string, options []string) (index int, ok bool, err error)
}

// AlertKind is the severity of an alert.
type AlertKind string

const (
	AlertInfo    AlertKind = "info"
	AlertWarning AlertKind = "warning"
)

// Alerter shows a modal message to the user.
type Alerter interface {
	Alert(ctx context.Context, message string, kind AlertKind) error
}

// Dialogs launches the plan-update and premium upsell flows.
// Their outcome is observed through later subscription changes only.
type Dialogs interface {
	ShowUpdatePlan(ctx context.Context, org *Org) error
	ShowPremium(ctx context.Context) error
}

// Scheduler runs f once after d. The returned function cancels a pending run
// and reports whether it did so.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// SystemScheduler returns a Scheduler backed by the runtime timer.
func SystemScheduler() Scheduler { return systemScheduler{} }
