package directory

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type watcher struct {
	ch chan Change
}

// Watch streams changes of one owner until ctx is done or the directory is
// closed, then the channel is closed. A watcher that falls behind misses
// changes instead of blocking writers; every Change means "re-read the owner",
// so a missed one is covered by the next.
func (d *Directory) Watch(ctx context.Context, ownerID uuid.UUID) <-chan Change {
	w := &watcher{ch: make(chan Change, d.bufferSize)}

	d.watchMu.Lock()
	if d.closed {
		d.watchMu.Unlock()
		close(w.ch)
		return w.ch
	}
	set, ok := d.watchers[ownerID]
	if !ok {
		set = make(map[*watcher]struct{})
		d.watchers[ownerID] = set
	}
	set[w] = struct{}{}
	d.watchMu.Unlock()

	context.AfterFunc(ctx, func() { d.unwatch(ownerID, w) })
	return w.ch
}

// Watchers returns how many watchers follow ownerID.
func (d *Directory) Watchers(ownerID uuid.UUID) int {
	d.watchMu.Lock()
	defer d.watchMu.Unlock()
	return len(d.watchers[ownerID])
}

// Close ends all watches. Reads and writes keep working.
func (d *Directory) Close() error {
	d.watchMu.Lock()
	defer d.watchMu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	for id, set := range d.watchers {
		for w := range set {
			close(w.ch)
		}
		delete(d.watchers, id)
	}
	return nil
}

func (d *Directory) unwatch(ownerID uuid.UUID, w *watcher) {
	d.watchMu.Lock()
	defer d.watchMu.Unlock()
	set, ok := d.watchers[ownerID]
	if !ok {
		return
	}
	if _, ok := set[w]; !ok {
		return
	}
	delete(set, w)
	close(w.ch)
	if len(set) == 0 {
		delete(d.watchers, ownerID)
	}
}

// notify sends under watchMu so a channel is never closed mid-send.
func (d *Directory) notify(c Change) {
	d.watchMu.Lock()
	defer d.watchMu.Unlock()
	for w := range d.watchers[c.OwnerID] {
		select {
		case w.ch <- c:
		default:
			d.logger.Debug("watcher is behind, change dropped", slog.String("owner_id", c.OwnerID.String()))
		}
	}
}
