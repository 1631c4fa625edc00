package main

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/billingpanel/pkg/billing"
	"github.com/dmitrymomot/billingpanel/pkg/panel"
)

// Fixed IDs keep demo URLs stable across restarts.
var (
	demoOrgID      = uuid.MustParse("6f1c1c3e-8f0a-4a57-9a34-0e7d3c1a2b01")
	demoPastDueID  = uuid.MustParse("6f1c1c3e-8f0a-4a57-9a34-0e7d3c1a2b02")
	demoPremiumID  = uuid.MustParse("6f1c1c3e-8f0a-4a57-9a34-0e7d3c1a2b03")
	demoFreeID     = uuid.MustParse("6f1c1c3e-8f0a-4a57-9a34-0e7d3c1a2b04")
	demoTrialOrgID = uuid.MustParse("6f1c1c3e-8f0a-4a57-9a34-0e7d3c1a2b05")
)

func demoOwners(now time.Time) []panel.Owner {
	periodEnd := now.AddDate(0, 0, 24)
	trialEnd := now.AddDate(0, 0, 2)

	team := billing.Plan{ID: "team", Name: "Team", Type: billing.PlanTypeTeam, Cost: 4800}
	business := billing.Plan{ID: "business", Name: "Business", Type: billing.PlanTypeBusiness, Cost: 7200}
	premium := billing.Plan{ID: "premium", Name: "Premium", Type: billing.PlanTypePremium, Cost: 3600}

	return []panel.Owner{
		&panel.Org{
			ID:          demoOrgID,
			Name:        "Acme Corp",
			Quota:       billing.Quota{Members: 10, Groups: 5, Vaults: 10, Storage: 5},
			Members:     7,
			Groups:      5,
			Vaults:      4,
			UsedStorage: 1_250_000_000,
			Billing: &billing.Billing{Subscription: &billing.Subscription{
				ID:            "sub_acme",
				Plan:          team,
				Members:       7,
				Status:        billing.StatusActive,
				PeriodEnd:     &periodEnd,
				ProviderSubID: "sub_acme_provider",
			}},
		},
		&panel.Org{
			ID:          demoPastDueID,
			Name:        "Globex",
			Quota:       billing.Quota{Members: 50, Groups: 20, Vaults: 50, Storage: 20},
			Members:     31,
			Groups:      8,
			Vaults:      19,
			UsedStorage: 19_996_000_000,
			Billing: &billing.Billing{Subscription: &billing.Subscription{
				ID:            "sub_globex",
				Plan:          business,
				Members:       31,
				Status:        billing.StatusPastDue,
				PeriodEnd:     &periodEnd,
				ProviderSubID: "sub_globex_provider",
			}},
		},
		&panel.Org{
			ID:      demoTrialOrgID,
			Name:    "Initech",
			Quota:   billing.Quota{Members: 10, Groups: 5, Vaults: 10, Storage: 5},
			Members: 3,
			Vaults:  1,
			Billing: &billing.Billing{Subscription: &billing.Subscription{
				ID:            "sub_initech",
				Plan:          team,
				Members:       3,
				Status:        billing.StatusTrialing,
				TrialEnd:      &trialEnd,
				ProviderSubID: "sub_initech_provider",
			}},
		},
		&panel.Account{
			ID:          demoPremiumID,
			Email:       "ada@example.com",
			Quota:       billing.Quota{Items: billing.Unlimited, Storage: 1},
			Items:       412,
			UsedStorage: 120_000_000,
			Billing: &billing.Billing{Subscription: &billing.Subscription{
				ID:            "sub_ada",
				Plan:          premium,
				Members:       1,
				Status:        billing.StatusActive,
				PeriodEnd:     &periodEnd,
				ProviderSubID: "sub_ada_provider",
			}},
		},
		&panel.Account{
			ID:    demoFreeID,
			Email: "grace@example.com",
			Quota: billing.Quota{Items: 50, Storage: 1},
			Items: 50,
		},
	}
}
