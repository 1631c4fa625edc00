package billing

import "github.com/google/uuid"

// Billing is the container an account or organization owns.
// A nil Subscription means the owner is on the implicit free tier.
type Billing struct {
	Subscription       *Subscription `json:"subscription,omitempty"`
	ProviderCustomerID string        `json:"provider_customer_id,omitempty"`
}

// Clone returns a deep copy of the billing container.
func (b *Billing) Clone() *Billing {
	if b == nil {
		return nil
	}
	return &Billing{
		Subscription:       b.Subscription.Clone(),
		ProviderCustomerID: b.ProviderCustomerID,
	}
}

// Quota defines numeric resource ceilings of an owner.
// Storage is measured in GB. Items uses Unlimited (-1) for no ceiling.
type Quota struct {
	Members int64 `json:"members"`
	Groups  int64 `json:"groups"`
	Vaults  int64 `json:"vaults"`
	Storage int64 `json:"storage"`
	Items   int64 `json:"items"`
}

// UpdateParams is the request sent to the billing-mutation collaborator.
// Cancel true schedules cancellation at period end, false resumes.
type UpdateParams struct {
	OwnerID   uuid.UUID
	OwnerKind OwnerKind
	Cancel    bool
}
