package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	paddle "github.com/PaddleHQ/paddle-go-sdk/v4"
	"github.com/PaddleHQ/paddle-go-sdk/v4/pkg/paddleerr"
)

// PaddleConfig holds configuration for the Paddle billing provider.
type PaddleConfig struct {
	APIKey      string `env:"PADDLE_API_KEY"`
	Environment string `env:"PADDLE_ENVIRONMENT" envDefault:"production"`
}

// PaddleSubscriptions is the part of the Paddle SDK the provider calls.
// *paddle.SubscriptionsClient satisfies it.
type PaddleSubscriptions interface {
	CancelSubscription(ctx context.Context, req *paddle.CancelSubscriptionRequest) (*paddle.Subscription, error)
	UpdateSubscription(ctx context.Context, req *paddle.UpdateSubscriptionRequest) (*paddle.Subscription, error)
}

// PaddleProvider implements Provider for Paddle Billing.
type PaddleProvider struct {
	subscriptions PaddleSubscriptions
}

// NewPaddleProvider creates a Paddle-backed provider for the configured environment.
func NewPaddleProvider(config PaddleConfig) (*PaddleProvider, error) {
	if config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	var client *paddle.SDK
	var err error

	switch strings.ToLower(config.Environment) {
	case "sandbox":
		client, err = paddle.NewSandbox(config.APIKey)
	case "production", "":
		client, err = paddle.New(config.APIKey)
	default:
		return nil, errors.Join(ErrInvalidProviderEnvironment, fmt.Errorf("paddle environment %q", config.Environment))
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create paddle client: %w", err)
	}

	return NewPaddleProviderWithClient(client.SubscriptionsClient), nil
}

// NewPaddleProviderWithClient builds the provider around an existing subscriptions client.
func NewPaddleProviderWithClient(subscriptions PaddleSubscriptions) *PaddleProvider {
	if subscriptions == nil {
		panic("billing: paddle subscriptions client is required")
	}
	return &PaddleProvider{subscriptions: subscriptions}
}

// SetCancelAtPeriodEnd schedules a cancellation for the next billing period,
// or clears the scheduled change to resume the subscription.
func (p *PaddleProvider) SetCancelAtPeriodEnd(ctx context.Context, sub *Subscription, cancel bool) error {
	if sub == nil || sub.ProviderSubID == "" {
		return ErrNoProviderSubscription
	}

	var err error
	if cancel {
		_, err = p.subscriptions.CancelSubscription(ctx, &paddle.CancelSubscriptionRequest{
			SubscriptionID: sub.ProviderSubID,
			EffectiveFrom:  paddle.PtrTo(paddle.EffectiveFromNextBillingPeriod),
		})
	} else {
		// Paddle resumes a pending cancellation by nulling the scheduled change
		_, err = p.subscriptions.UpdateSubscription(ctx, &paddle.UpdateSubscriptionRequest{
			SubscriptionID:  sub.ProviderSubID,
			ScheduledChange: paddle.NewPatchField[*paddle.SubscriptionScheduledChange](nil),
		})
	}

	if err != nil {
		perr := &ProviderError{Provider: "paddle", Err: err}
		var apiErr *paddleerr.Error
		if errors.As(err, &apiErr) {
			perr.Message = apiErr.Detail
		}
		return perr
	}
	return nil
}
