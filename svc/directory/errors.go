package directory

import "errors"

var (
	ErrOwnerNotFound     = errors.New("owner not found")
	ErrNilOwner          = errors.New("owner is nil")
	ErrNoSubscription    = errors.New("owner has no subscription")
	ErrOwnerKindMismatch = errors.New("owner kind does not match the request")
	ErrMalformedUpdate   = errors.New("malformed subscription update")
	ErrFeedClosed        = errors.New("subscription feed closed")
)
