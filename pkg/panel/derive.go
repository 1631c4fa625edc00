package panel

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dmitrymomot/billingpanel/pkg/billing"
)

const bytesPerGB int64 = 1_000_000_000

// Deriver maps an owner and its subscription to display facts.
// It is pure: the same inputs always yield the same Facts.
type Deriver struct {
	localizer        Localizer
	storageMargin    int64
	trialWarningDays int
}

// NewDeriver creates a Deriver. A nil localizer falls back to DefaultLocalizer.
func NewDeriver(cfg Config, localizer Localizer) *Deriver {
	if localizer == nil {
		localizer = DefaultLocalizer()
	}
	return &Deriver{
		localizer:        localizer,
		storageMargin:    cfg.StorageWarningMargin,
		trialWarningDays: cfg.TrialWarningDays,
	}
}

// Derive computes the panel facts with default configuration and English labels.
func Derive(owner Owner, sub *billing.Subscription, now time.Time) Facts {
	return NewDeriver(DefaultConfig(), nil).Derive(owner, sub, now)
}

// Derive computes the panel facts at the given instant.
// A nil subscription is replaced with the free-tier stand-in; it never fails.
func (d *Deriver) Derive(owner Owner, sub *billing.Subscription, now time.Time) Facts {
	if sub == nil {
		sub = billing.NewDefaultSubscription()
	}

	facts := Facts{
		PlanName:       sub.Plan.Name,
		PlanType:       sub.Plan.Type,
		TrialDaysLeft:  sub.TrialDaysLeftAt(now),
		PeriodDaysLeft: sub.PeriodDaysLeftAt(now),
		Affordance:     AffordanceEdit,
	}

	switch o := owner.(type) {
	case *Org:
		facts.OwnerKind = billing.OwnerOrg
		facts.Quota = []QuotaItem{
			d.countItem(ResourceMembers, o.Members, o.Quota.Members),
			d.countItem(ResourceGroups, o.Groups, o.Quota.Groups),
			d.countItem(ResourceVaults, o.Vaults, o.Quota.Vaults),
			d.storageItem(o.UsedStorage, o.Quota.Storage),
		}
	case *Account:
		facts.OwnerKind = billing.OwnerAccount
		facts.Quota = []QuotaItem{
			d.itemsItem(o.Items, o.Quota.Items),
			d.storageItem(o.UsedStorage, o.Quota.Storage),
		}
		if sub.Plan.IsFree() {
			facts.Affordance = AffordanceGoPremium
		}
	default:
		if sub.Plan.IsFree() {
			facts.Affordance = AffordanceGoPremium
		}
	}

	facts.Cost = d.cost(sub)
	facts.Status = d.badge(sub, facts.TrialDaysLeft, facts.PeriodDaysLeft)

	return facts
}

// StorageWarning reports whether used bytes reached the warning threshold
// of a storage quota given in GB.
func (d *Deriver) StorageWarning(used, quotaGB int64) bool {
	return used >= quotaGB*bytesPerGB-d.storageMargin
}

func (d *Deriver) countItem(res Resource, used, limit int64) QuotaItem {
	return QuotaItem{
		Resource: res,
		Used:     used,
		Limit:    limit,
		Warning:  used >= limit,
		Label:    d.usage(used, limit),
	}
}

// itemsItem is the only tile honouring the Unlimited sentinel.
func (d *Deriver) itemsItem(used, limit int64) QuotaItem {
	item := QuotaItem{
		Resource: ResourceItems,
		Used:     used,
		Limit:    limit,
	}
	if limit == billing.Unlimited {
		item.Unlimited = true
		item.Label = d.localizer.T(MsgUnlimited)
		return item
	}
	item.Warning = used >= limit
	item.Label = d.usage(used, limit)
	return item
}

func (d *Deriver) storageItem(used, quotaGB int64) QuotaItem {
	return QuotaItem{
		Resource: ResourceStorage,
		Used:     used,
		Limit:    quotaGB,
		Warning:  d.StorageWarning(used, quotaGB),
		Label: d.localizer.T(MsgStorageUsage,
			"used", humanize.Bytes(uint64(max(used, 0))),
			"limit", strconv.FormatInt(quotaGB, 10),
		),
	}
}

func (d *Deriver) usage(used, limit int64) string {
	return d.localizer.T(MsgQuotaUsage,
		"used", strconv.FormatInt(used, 10),
		"limit", strconv.FormatInt(limit, 10),
	)
}

func (d *Deriver) cost(sub *billing.Subscription) Cost {
	minor := sub.AnnualCost()
	major := formatMinorUnits(minor)
	return Cost{
		Minor: minor,
		Major: major,
		Label: d.localizer.T(MsgCostPerYear, "amount", major),
	}
}

// badge applies the status priority: scheduled cancellation, canceled,
// failed payment, trial. Any other status shows no badge.
func (d *Deriver) badge(sub *billing.Subscription, trialDays, periodDays int) Badge {
	switch {
	case sub.WillCancel:
		return Badge{
			Kind:     BadgeCanceling,
			DaysLeft: periodDays,
			Warning:  true,
			Label:    d.localizer.T(MsgStatusCanceling, "days", strconv.Itoa(periodDays)),
		}
	case sub.Status == billing.StatusCanceled:
		return Badge{
			Kind:    BadgeCanceled,
			Warning: true,
			Label:   d.localizer.T(MsgStatusCanceled),
		}
	case sub.Status.PaymentFailed():
		return Badge{
			Kind:    BadgePaymentFailed,
			Warning: true,
			Label:   d.localizer.T(MsgStatusPaymentFail),
		}
	case sub.IsTrialing():
		return Badge{
			Kind:     BadgeTrialing,
			DaysLeft: trialDays,
			Warning:  trialDays < d.trialWarningDays,
			Label:    d.localizer.T(MsgStatusTrialing, "days", strconv.Itoa(trialDays)),
		}
	default:
		return Badge{Kind: BadgeNone}
	}
}

// formatMinorUnits renders minor currency units as a major amount with two decimals.
func formatMinorUnits(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}
