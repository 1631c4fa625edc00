package billing

import (
	"context"
	"errors"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/subscription"
)

// StripeConfig holds configuration for the Stripe billing provider.
type StripeConfig struct {
	APIKey string `env:"STRIPE_API_KEY"`
}

// StripeSubscriptions is the part of the Stripe SDK the provider calls.
// *subscription.Client satisfies it.
type StripeSubscriptions interface {
	Update(id string, params *stripe.SubscriptionParams) (*stripe.Subscription, error)
}

// StripeProvider implements Provider using the Stripe subscriptions API.
type StripeProvider struct {
	subscriptions StripeSubscriptions
}

// NewStripeProvider creates a Stripe-backed provider without touching the global stripe.Key.
func NewStripeProvider(config StripeConfig) (*StripeProvider, error) {
	if config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	return NewStripeProviderWithClient(&subscription.Client{
		B:   stripe.GetBackend(stripe.APIBackend),
		Key: config.APIKey,
	}), nil
}

// NewStripeProviderWithClient builds the provider around an existing subscriptions client.
func NewStripeProviderWithClient(subscriptions StripeSubscriptions) *StripeProvider {
	if subscriptions == nil {
		panic("billing: stripe subscriptions client is required")
	}
	return &StripeProvider{subscriptions: subscriptions}
}

// SetCancelAtPeriodEnd toggles cancel_at_period_end on the Stripe subscription.
func (p *StripeProvider) SetCancelAtPeriodEnd(ctx context.Context, sub *Subscription, cancel bool) error {
	if sub == nil || sub.ProviderSubID == "" {
		return ErrNoProviderSubscription
	}

	params := &stripe.SubscriptionParams{
		CancelAtPeriodEnd: stripe.Bool(cancel),
	}
	params.Context = ctx

	if _, err := p.subscriptions.Update(sub.ProviderSubID, params); err != nil {
		perr := &ProviderError{Provider: "stripe", Err: err}
		var serr *stripe.Error
		if errors.As(err, &serr) {
			perr.Message = serr.Msg
		}
		return perr
	}
	return nil
}
