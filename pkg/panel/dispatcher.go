package panel

import (
	"context"

	"github.com/dmitrymomot/billingpanel/pkg/billing"
)

// Dispatcher turns a cancel/resume decision into a billing mutation.
type Dispatcher struct {
	updater Updater
}

func NewDispatcher(updater Updater) (*Dispatcher, error) {
	if updater == nil {
		return nil, ErrNilUpdater
	}
	return &Dispatcher{updater: updater}, nil
}

// SetCancel schedules cancellation at period end (cancel=true) or resumes the
// subscription (cancel=false). The owner is not modified and the updater's
// error is returned as is.
func (d *Dispatcher) SetCancel(ctx context.Context, owner Owner, cancel bool) error {
	if owner == nil {
		return ErrNilOwner
	}
	return d.updater.UpdateBilling(ctx, billing.UpdateParams{
		OwnerID:   owner.OwnerID(),
		OwnerKind: owner.OwnerKind(),
		Cancel:    cancel,
	})
}
