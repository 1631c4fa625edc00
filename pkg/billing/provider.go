package billing

import "context"

// Provider is the minimal surface the panel needs from a payment provider.
// Implementations schedule or revoke cancellation at the end of the current period;
// the owner's record is refreshed by whatever propagates provider state back.
type Provider interface {
	SetCancelAtPeriodEnd(ctx context.Context, sub *Subscription, cancel bool) error
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, sub *Subscription, cancel bool) error

func (f ProviderFunc) SetCancelAtPeriodEnd(ctx context.Context, sub *Subscription, cancel bool) error {
	return f(ctx, sub, cancel)
}
