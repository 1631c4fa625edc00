package panel_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/billingpanel/pkg/billing"
	"github.com/dmitrymomot/billingpanel/pkg/panel"
)

func TestDeriver_StorageWarning(t *testing.T) {
	t.Parallel()

	d := panel.NewDeriver(panel.DefaultConfig(), nil)

	tests := []struct {
		name    string
		used    int64
		quotaGB int64
		want    bool
	}{
		{"empty", 0, 1, false},
		{"just below margin", 994_999_999, 1, false},
		{"at margin", 995_000_000, 1, true},
		{"over cap", 1_200_000_000, 1, true},
		{"zero quota always warns", 0, 0, true},
		{"large quota", 9_994_999_999, 10, false},
		{"large quota at margin", 9_995_000_000, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, d.StorageWarning(tt.used, tt.quotaGB))
			assert.Equal(t, tt.used >= tt.quotaGB*1_000_000_000-5_000_000, d.StorageWarning(tt.used, tt.quotaGB))
		})
	}

	t.Run("margin is configurable", func(t *testing.T) {
		t.Parallel()
		cfg := panel.DefaultConfig()
		cfg.StorageWarningMargin = 0
		d := panel.NewDeriver(cfg, nil)
		assert.False(t, d.StorageWarning(995_000_000, 1))
		assert.True(t, d.StorageWarning(1_000_000_000, 1))
	})
}

func TestDerive_OrgQuota(t *testing.T) {
	t.Parallel()

	org := newOrg(paidSubscription())
	org.Members = 5
	org.Groups = 1
	org.Vaults = 10
	org.UsedStorage = 1_500_000

	facts := panel.Derive(org, panel.SubscriptionOf(org), testNow)

	assert.Equal(t, billing.OwnerOrg, facts.OwnerKind)
	require.Len(t, facts.Quota, 4)

	members, ok := facts.Item(panel.ResourceMembers)
	require.True(t, ok)
	assert.True(t, members.Warning)
	assert.Equal(t, "5 / 5", members.Label)

	groups, _ := facts.Item(panel.ResourceGroups)
	assert.False(t, groups.Warning)
	assert.Equal(t, "1 / 3", groups.Label)

	vaults, _ := facts.Item(panel.ResourceVaults)
	assert.True(t, vaults.Warning)

	storage, _ := facts.Item(panel.ResourceStorage)
	assert.False(t, storage.Warning)
	assert.Equal(t, "1.5 MB / 1 GB", storage.Label)

	_, hasItems := facts.Item(panel.ResourceItems)
	assert.False(t, hasItems)
	assert.Equal(t, panel.AffordanceEdit, facts.Affordance)
}

func TestDerive_AccountQuota(t *testing.T) {
	t.Parallel()

	t.Run("unlimited items never warn", func(t *testing.T) {
		t.Parallel()
		acc := newAccount(paidSubscription())
		acc.Quota.Items = billing.Unlimited
		acc.Items = 1000

		facts := panel.Derive(acc, panel.SubscriptionOf(acc), testNow)

		items, ok := facts.Item(panel.ResourceItems)
		require.True(t, ok)
		assert.True(t, items.Unlimited)
		assert.False(t, items.Warning)
		assert.Equal(t, "Unlimited", items.Label)
	})

	t.Run("limited items warn at quota", func(t *testing.T) {
		t.Parallel()
		acc := newAccount(nil)
		acc.Items = 50

		facts := panel.Derive(acc, nil, testNow)

		items, _ := facts.Item(panel.ResourceItems)
		assert.True(t, items.Warning)
		assert.Equal(t, "50 / 50", items.Label)
		_, hasMembers := facts.Item(panel.ResourceMembers)
		assert.False(t, hasMembers)
	})
}

func TestDerive_MissingSubscription(t *testing.T) {
	t.Parallel()

	acc := newAccount(nil)
	facts := panel.Derive(acc, nil, testNow)
	assert.Equal(t, "Free", facts.PlanName)
	assert.Equal(t, billing.PlanTypeFree, facts.PlanType)
	assert.Equal(t, panel.AffordanceGoPremium, facts.Affordance)
	assert.Equal(t, "0.00 / Year", facts.Cost.Label)
	assert.False(t, facts.Status.Shown())
	assert.Zero(t, facts.TrialDaysLeft)
	assert.Zero(t, facts.PeriodDaysLeft)

	org := newOrg(nil)
	assert.Equal(t, panel.AffordanceEdit, panel.Derive(org, nil, testNow).Affordance)

	paid := newAccount(paidSubscription())
	assert.Equal(t, panel.AffordanceEdit, panel.Derive(paid, panel.SubscriptionOf(paid), testNow).Affordance)
}

func TestDerive_Cost(t *testing.T) {
	t.Parallel()

	sub := paidSubscription()
	facts := panel.Derive(newOrg(sub), sub, testNow)
	assert.Equal(t, int64(1497), facts.Cost.Minor)
	assert.Equal(t, "14.97", facts.Cost.Major)
	assert.Equal(t, "14.97 / Year", facts.Cost.Label)

	sub.Members = 10
	sub.Plan.Cost = 1000
	assert.Equal(t, "100.00 / Year", panel.Derive(newOrg(sub), sub, testNow).Cost.Label)
}

func TestDerive_StatusBadge(t *testing.T) {
	t.Parallel()

	t.Run("will cancel wins over any status", func(t *testing.T) {
		t.Parallel()
		for _, status := range []billing.SubscriptionStatus{
			billing.StatusActive,
			billing.StatusTrialing,
			billing.StatusPastDue,
			billing.StatusUnpaid,
			billing.StatusCanceled,
			billing.StatusIncomplete,
		} {
			sub := paidSubscription()
			sub.Status = status
			sub.WillCancel = true
			sub.PeriodEnd = at(9*24*time.Hour + time.Hour)
			sub.TrialEnd = at(time.Hour)

			badge := panel.Derive(newOrg(sub), sub, testNow).Status
			assert.Equal(t, panel.BadgeCanceling, badge.Kind, status)
			assert.Equal(t, 10, badge.DaysLeft, status)
			assert.True(t, badge.Warning, status)
			assert.Equal(t, "Canceled (10 days left)", badge.Label, status)
		}
	})

	tests := []struct {
		name    string
		status  billing.SubscriptionStatus
		kind    panel.BadgeKind
		label   string
		warning bool
	}{
		{"canceled", billing.StatusCanceled, panel.BadgeCanceled, "Canceled", true},
		{"past due", billing.StatusPastDue, panel.BadgePaymentFailed, "Payment Failed", true},
		{"unpaid", billing.StatusUnpaid, panel.BadgePaymentFailed, "Payment Failed", true},
		{"active", billing.StatusActive, panel.BadgeNone, "", false},
		{"incomplete falls through", billing.StatusIncomplete, panel.BadgeNone, "", false},
		{"unknown falls through", billing.SubscriptionStatus("paused"), panel.BadgeNone, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sub := paidSubscription()
			sub.Status = tt.status

			badge := panel.Derive(newOrg(sub), sub, testNow).Status
			assert.Equal(t, tt.kind, badge.Kind)
			assert.Equal(t, tt.label, badge.Label)
			assert.Equal(t, tt.warning, badge.Warning)
		})
	}
}

func TestDerive_Trial(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		end     *time.Time
		days    int
		warning bool
	}{
		{"two days left", at(48 * time.Hour), 2, true},
		{"partial day rounds up", at(49 * time.Hour), 3, false},
		{"three days left", at(72 * time.Hour), 3, false},
		{"expired", at(-time.Hour), 0, true},
		{"no trial end", nil, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sub := paidSubscription()
			sub.Status = billing.StatusTrialing
			sub.TrialEnd = tt.end

			facts := panel.Derive(newAccount(sub), sub, testNow)
			assert.Equal(t, tt.days, facts.TrialDaysLeft)
			assert.Equal(t, panel.BadgeTrialing, facts.Status.Kind)
			assert.Equal(t, tt.warning, facts.Status.Warning)
		})
	}

	t.Run("label", func(t *testing.T) {
		t.Parallel()
		sub := paidSubscription()
		sub.Status = billing.StatusTrialing
		sub.TrialEnd = at(48 * time.Hour)
		assert.Equal(t, "Trialing (2 days left)", panel.Derive(newAccount(sub), sub, testNow).Status.Label)
	})
}

type upperLocalizer struct{}

func (upperLocalizer) T(key string, args ...string) string {
	return "<" + key + ">"
}

func TestDeriver_UsesLocalizer(t *testing.T) {
	t.Parallel()

	sub := paidSubscription()
	sub.Status = billing.StatusCanceled
	d := panel.NewDeriver(panel.DefaultConfig(), upperLocalizer{})

	facts := d.Derive(newOrg(sub), sub, testNow)
	assert.Equal(t, "<"+panel.MsgStatusCanceled+">", facts.Status.Label)
	assert.Equal(t, "<"+panel.MsgCostPerYear+">", facts.Cost.Label)
}
