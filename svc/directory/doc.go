// Package directory keeps the accounts and organizations whose billing panels
// are served, and the live subscription records attached to them.
//
// Directory hands out deep-copied snapshots and implements panel.Updater:
// a cancel or resume request goes to the configured billing.Provider and,
// once accepted, the owner's WillCancel flag is updated and watchers of that
// owner are notified. RedisFeed applies subscription records pushed by the
// billing backend over redis pub/sub:
//
//	{"owner_id": "…", "subscription": {"status": "past_due", …}}
package directory
