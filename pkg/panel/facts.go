package panel

import "github.com/dmitrymomot/billingpanel/pkg/billing"

// Resource names a quota tile of the panel.
type Resource string

const (
	ResourceMembers Resource = "members"
	ResourceGroups  Resource = "groups"
	ResourceVaults  Resource = "vaults"
	ResourceStorage Resource = "storage"
	ResourceItems   Resource = "items"
)

// QuotaItem is one usage tile. Used and Limit are counts, except for storage
// where Used is bytes and Limit is GB.
type QuotaItem struct {
	Resource  Resource
	Used      int64
	Limit     int64
	Unlimited bool
	Warning   bool
	Label     string
}

// BadgeKind selects which status badge, if any, the panel shows.
type BadgeKind string

const (
	BadgeNone          BadgeKind = ""
	BadgeCanceling     BadgeKind = "canceling"
	BadgeCanceled      BadgeKind = "canceled"
	BadgePaymentFailed BadgeKind = "payment_failed"
	BadgeTrialing      BadgeKind = "trialing"
)

// Badge is the subscription status tile.
type Badge struct {
	Kind     BadgeKind
	DaysLeft int
	Warning  bool
	Label    string
}

// Shown reports whether a badge should be rendered.
func (b Badge) Shown() bool {
	return b.Kind != BadgeNone
}

// Affordance is the single control the panel exposes for billing changes.
type Affordance string

const (
	AffordanceEdit      Affordance = "edit"
	AffordanceGoPremium Affordance = "go_premium"
)

// Cost is the yearly price tile.
type Cost struct {
	Minor int64  // members * plan cost, minor currency units
	Major string // Minor / 100 with two decimals
	Label string
}

// Facts is everything the panel displays, derived from an owner and its subscription.
type Facts struct {
	OwnerKind      billing.OwnerKind
	PlanName       string
	PlanType       billing.PlanType
	Quota          []QuotaItem
	Cost           Cost
	TrialDaysLeft  int
	PeriodDaysLeft int
	Status         Badge
	Affordance     Affordance
}

// Item returns the quota tile for a resource.
func (f Facts) Item(res Resource) (QuotaItem, bool) {
	for _, item := range f.Quota {
		if item.Resource == res {
			return item, true
		}
	}
	return QuotaItem{}, false
}
