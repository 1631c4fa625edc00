package billing

import (
	"math"
	"time"
)

// Subscription is the current billing record of an account or an organization.
type Subscription struct {
	ID            string             `json:"id"`
	Plan          Plan               `json:"plan"`
	Members       int64              `json:"members"`
	Status        SubscriptionStatus `json:"status"`
	WillCancel    bool               `json:"will_cancel"` // active until PeriodEnd, then terminates
	TrialEnd      *time.Time         `json:"trial_end,omitempty"`
	PeriodEnd     *time.Time         `json:"period_end,omitempty"`
	ProviderSubID string             `json:"provider_sub_id,omitempty"` // empty for free plans
}

// NewDefaultSubscription returns a disposable free-tier stand-in used for rendering
// when no subscription exists. It is never persisted.
func NewDefaultSubscription() *Subscription {
	return &Subscription{
		Plan:   FreePlan(),
		Status: StatusActive,
	}
}

// Canceled reports whether the subscription is canceled or scheduled to cancel.
// WillCancel is checked first: such a subscription is still active until period end.
func (s *Subscription) Canceled() bool {
	return s.WillCancel || s.Status == StatusCanceled
}

// IsTrialing reports whether the subscription is in its trial period.
func (s *Subscription) IsTrialing() bool {
	return s.Status == StatusTrialing
}

// TrialDaysLeftAt returns the whole days remaining until TrialEnd, rounded up.
// Returns 0 if TrialEnd is not set or already passed.
func (s *Subscription) TrialDaysLeftAt(now time.Time) int {
	return DaysUntil(s.TrialEnd, now)
}

// PeriodDaysLeftAt returns the whole days remaining until PeriodEnd, rounded up.
// Returns 0 if PeriodEnd is not set or already passed.
func (s *Subscription) PeriodDaysLeftAt(now time.Time) int {
	return DaysUntil(s.PeriodEnd, now)
}

// AnnualCost returns Members * Plan.Cost in minor currency units.
func (s *Subscription) AnnualCost() int64 {
	return s.Members * s.Plan.Cost
}

// Clone returns a deep copy so snapshots can be handed out without sharing timestamps.
func (s *Subscription) Clone() *Subscription {
	if s == nil {
		return nil
	}
	c := *s
	if s.TrialEnd != nil {
		t := *s.TrialEnd
		c.TrialEnd = &t
	}
	if s.PeriodEnd != nil {
		t := *s.PeriodEnd
		c.PeriodEnd = &t
	}
	return &c
}

// DaysUntil returns ceil((end - now) / 24h) clamped to >= 0, or 0 for a nil end.
func DaysUntil(end *time.Time, now time.Time) int {
	if end == nil {
		return 0
	}
	remaining := end.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Hours() / 24))
}
