package panel

import (
	"github.com/google/uuid"

	"github.com/dmitrymomot/billingpanel/pkg/billing"
)

// Owner is the entity whose billing the panel shows: an *Account or an *Org.
// The set is closed; consumers switch over the concrete types.
type Owner interface {
	OwnerID() uuid.UUID
	OwnerKind() billing.OwnerKind
	BillingInfo() *billing.Billing

	sealed()
}

// Account is an individual user account.
type Account struct {
	ID          uuid.UUID        `json:"id"`
	Email       string           `json:"email"`
	Billing     *billing.Billing `json:"billing,omitempty"`
	Quota       billing.Quota    `json:"quota"`
	UsedStorage int64            `json:"used_storage"` // bytes
	Items       int64            `json:"items"`        // size of the main vault
}

func (a *Account) OwnerID() uuid.UUID            { return a.ID }
func (a *Account) OwnerKind() billing.OwnerKind  { return billing.OwnerAccount }
func (a *Account) BillingInfo() *billing.Billing { return a.Billing }
func (*Account) sealed()                         {}

// Org is an organization with its member, group and vault collections.
type Org struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Billing     *billing.Billing `json:"billing,omitempty"`
	Quota       billing.Quota    `json:"quota"`
	Members     int64            `json:"members"`
	Groups      int64            `json:"groups"`
	Vaults      int64            `json:"vaults"`
	UsedStorage int64            `json:"used_storage"` // bytes
}

func (o *Org) OwnerID() uuid.UUID            { return o.ID }
func (o *Org) OwnerKind() billing.OwnerKind  { return billing.OwnerOrg }
func (o *Org) BillingInfo() *billing.Billing { return o.Billing }
func (*Org) sealed()                         {}

// SubscriptionOf returns the owner's subscription or nil when there is none.
func SubscriptionOf(owner Owner) *billing.Subscription {
	if owner == nil {
		return nil
	}
	b := owner.BillingInfo()
	if b == nil {
		return nil
	}
	return b.Subscription
}

// CloneOwner returns a deep copy of the owner so a snapshot can outlive later updates.
func CloneOwner(owner Owner) Owner {
	switch o := owner.(type) {
	case *Account:
		if o == nil {
			return nil
		}
		c := *o
		c.Billing = o.Billing.Clone()
		return &c
	case *Org:
		if o == nil {
			return nil
		}
		c := *o
		c.Billing = o.Billing.Clone()
		return &c
	default:
		return nil
	}
}
