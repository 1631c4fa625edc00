// Package billing holds the billing records the panel reads and the providers
// that mutate them.
//
// The records (Plan, Subscription, Billing, Quota) are owned by the hosting
// application's account and organization model; this package only describes
// their shape and a few pure helpers over them, such as DaysUntil for the
// rounded-up day countdowns shown in the panel.
//
// # Providers
//
// Provider is the only mutation the panel issues: scheduling or revoking a
// cancellation at the end of the current billing period.
//
//	provider, err := billing.NewStripeProvider(billing.StripeConfig{APIKey: key})
//	if err != nil {
//		return err
//	}
//	err = provider.SetCancelAtPeriodEnd(ctx, sub, true)
//
// PaddleProvider and StripeProvider wrap SDK failures in *ProviderError. Its
// UserMessage carries the provider's human-readable explanation (for example a
// declined card) and errors.Is(err, ErrProviderError) holds for every such failure.
package billing
