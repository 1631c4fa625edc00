package billing

import (
	"errors"
	"fmt"
)

var (
	ErrNoProviderSubscription = errors.New("subscription is not managed by a billing provider")
	ErrProviderError          = errors.New("billing provider error")

	ErrMissingAPIKey              = errors.New("billing provider API key is required")
	ErrInvalidProviderEnvironment = errors.New("invalid billing provider environment")
)

// ProviderError wraps a billing provider failure together with a message
// that is safe to show to the person who triggered the mutation.
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Provider, e.Message)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

// UserMessage returns the human-readable part of the failure, if the provider gave one.
func (e *ProviderError) UserMessage() string {
	return e.Message
}

func (e *ProviderError) Unwrap() []error {
	return []error{ErrProviderError, e.Err}
}
