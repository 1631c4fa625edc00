package directory

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/billingpanel/pkg/billing"
	"github.com/dmitrymomot/billingpanel/pkg/logger"
	"github.com/dmitrymomot/billingpanel/pkg/panel"
)

// Change announces that an owner's record was replaced.
type Change struct {
	OwnerID uuid.UUID
	Kind    billing.OwnerKind
	Reason  Reason
}

// Reason tells where a change came from.
type Reason string

const (
	ReasonPut     Reason = "put"
	ReasonUpdated Reason = "billing_updated"
	ReasonPushed  Reason = "pushed"
)

// Directory is an in-memory registry of accounts and organizations.
// Reads return deep copies, so a snapshot is never changed by later writes.
// It implements panel.Updater by forwarding cancellations to a billing.Provider.
type Directory struct {
	mu     sync.RWMutex
	owners map[uuid.UUID]panel.Owner

	provider     billing.Provider
	providerName string
	logger       *slog.Logger
	bufferSize   int

	watchMu  sync.Mutex
	watchers map[uuid.UUID]map[*watcher]struct{}
	closed   bool
}

var _ panel.Updater = (*Directory)(nil)

// New creates an empty directory.
func New(opts ...Option) *Directory {
	d := &Directory{
		owners:     make(map[uuid.UUID]panel.Owner),
		watchers:   make(map[uuid.UUID]map[*watcher]struct{}),
		logger:     logger.Discard(),
		bufferSize: 8,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With(logger.Component("directory"))
	return d
}

// Put stores a copy of owner, replacing an existing record with the same ID.
func (d *Directory) Put(owner panel.Owner) error {
	c := panel.CloneOwner(owner)
	if c == nil {
		return ErrNilOwner
	}
	d.mu.Lock()
	d.owners[c.OwnerID()] = c
	d.mu.Unlock()

	d.notify(Change{OwnerID: c.OwnerID(), Kind: c.OwnerKind(), Reason: ReasonPut})
	return nil
}

// Owner returns a snapshot of the owner.
func (d *Directory) Owner(_ context.Context, id uuid.UUID) (panel.Owner, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	o, ok := d.owners[id]
	if !ok {
		return nil, ErrOwnerNotFound
	}
	return panel.CloneOwner(o), nil
}

// Owners returns snapshots of all owners, organizations first, then by ID.
func (d *Directory) Owners(_ context.Context) []panel.Owner {
	d.mu.RLock()
	out := make([]panel.Owner, 0, len(d.owners))
	for _, o := range d.owners {
		out = append(out, panel.CloneOwner(o))
	}
	d.mu.RUnlock()

	slices.SortFunc(out, func(a, b panel.Owner) int {
		if a.OwnerKind() != b.OwnerKind() {
			return cmp.Compare(b.OwnerKind(), a.OwnerKind())
		}
		return cmp.Compare(a.OwnerID().String(), b.OwnerID().String())
	})
	return out
}

// UpdateBilling schedules (Cancel=true) or revokes (Cancel=false) the
// cancellation of the owner's subscription at the provider and records the
// new flag once the provider accepted it. Provider errors are returned as is.
func (d *Directory) UpdateBilling(ctx context.Context, params billing.UpdateParams) error {
	owner, err := d.Owner(ctx, params.OwnerID)
	if err != nil {
		return err
	}
	if params.OwnerKind != "" && params.OwnerKind != owner.OwnerKind() {
		return ErrOwnerKindMismatch
	}
	sub := panel.SubscriptionOf(owner)
	if sub == nil {
		return ErrNoSubscription
	}

	log := d.logger.With(
		logger.Owner(string(owner.OwnerKind()), owner.OwnerID()),
		slog.Bool("cancel", params.Cancel),
	)

	if d.provider != nil {
		if err := d.provider.SetCancelAtPeriodEnd(ctx, sub, params.Cancel); err != nil {
			log.WarnContext(ctx, "provider rejected billing update", logger.Provider(d.providerName), logger.Error(err))
			return err
		}
	}

	if err := d.mutate(params.OwnerID, ReasonUpdated, func(s *billing.Subscription) *billing.Subscription {
		if s == nil {
			return nil
		}
		s.WillCancel = params.Cancel
		return s
	}); err != nil {
		return err
	}

	log.InfoContext(ctx, "billing updated", logger.Provider(d.providerName))
	return nil
}

// Apply replaces the owner's subscription with a server-pushed record.
// A nil subscription moves the owner back to the implicit free tier.
func (d *Directory) Apply(ctx context.Context, ownerID uuid.UUID, sub *billing.Subscription) error {
	next := sub.Clone()
	if err := d.mutate(ownerID, ReasonPushed, func(*billing.Subscription) *billing.Subscription {
		return next
	}); err != nil {
		return err
	}
	d.logger.DebugContext(ctx, "subscription applied", slog.String("owner_id", ownerID.String()))
	return nil
}

// mutate swaps the owner for a copy with fn applied to its subscription, then notifies watchers.
func (d *Directory) mutate(id uuid.UUID, reason Reason, fn func(*billing.Subscription) *billing.Subscription) error {
	d.mu.Lock()
	current, ok := d.owners[id]
	if !ok {
		d.mu.Unlock()
		return ErrOwnerNotFound
	}

	next := panel.CloneOwner(current)
	var b *billing.Billing
	switch o := next.(type) {
	case *panel.Account:
		if o.Billing == nil {
			o.Billing = &billing.Billing{}
		}
		b = o.Billing
	case *panel.Org:
		if o.Billing == nil {
			o.Billing = &billing.Billing{}
		}
		b = o.Billing
	}
	b.Subscription = fn(b.Subscription)
	d.owners[id] = next
	d.mu.Unlock()

	d.notify(Change{OwnerID: id, Kind: next.OwnerKind(), Reason: reason})
	return nil
}
