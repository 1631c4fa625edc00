package billing

// PlanType identifies the tier a plan belongs to.
type PlanType string

const (
	PlanTypeFree     PlanType = "free"
	PlanTypePremium  PlanType = "premium"
	PlanTypeFamily   PlanType = "family"
	PlanTypeTeam     PlanType = "team"
	PlanTypeBusiness PlanType = "business"
)

// SubscriptionStatus is the lifecycle state reported by the billing provider.
type SubscriptionStatus string

const (
	StatusActive            SubscriptionStatus = "active"
	StatusTrialing          SubscriptionStatus = "trialing"
	StatusPastDue           SubscriptionStatus = "past_due"
	StatusUnpaid            SubscriptionStatus = "unpaid"
	StatusCanceled          SubscriptionStatus = "canceled"
	StatusIncomplete        SubscriptionStatus = "incomplete"
	StatusIncompleteExpired SubscriptionStatus = "incomplete_expired"
)

// PaymentFailed reports whether the status means the last charge did not go through.
func (s SubscriptionStatus) PaymentFailed() bool {
	return s == StatusPastDue || s == StatusUnpaid
}

const (
	// Unlimited indicates no ceiling for a quota (-1 chosen for SQL compatibility)
	Unlimited int64 = -1
)

// OwnerKind tells which kind of entity a billing record belongs to.
type OwnerKind string

const (
	OwnerAccount OwnerKind = "account"
	OwnerOrg     OwnerKind = "org"
)
