package directory

import (
	"log/slog"

	"github.com/dmitrymomot/billingpanel/pkg/billing"
	"github.com/dmitrymomot/billingpanel/pkg/panel"
)

// Option configures a Directory.
type Option func(*Directory)

// WithProvider forwards billing updates to p. Without a provider updates are
// only recorded locally.
func WithProvider(name string, p billing.Provider) Option {
	return func(d *Directory) {
		d.provider = p
		d.providerName = name
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(d *Directory) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithWatchBuffer sets how many changes a watcher may lag behind. Minimum 1.
func WithWatchBuffer(n int) Option {
	return func(d *Directory) {
		d.bufferSize = max(n, 1)
	}
}

// WithOwners seeds the directory.
func WithOwners(owners ...panel.Owner) Option {
	return func(d *Directory) {
		for _, o := range owners {
			if c := panel.CloneOwner(o); c != nil {
				d.owners[c.OwnerID()] = c
			}
		}
	}
}
