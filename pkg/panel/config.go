package panel

import "time"

// DefaultStorageWarningMargin is how far below the nominal storage cap the
// storage tile starts warning, in bytes.
const DefaultStorageWarningMargin int64 = 5_000_000

// Config holds the tunables of the panel. It is loadable with pkg/config.
type Config struct {
	// FeedbackInterval is how long the success/fail state stays visible before reverting to idle.
	FeedbackInterval time.Duration `env:"BILLING_FEEDBACK_INTERVAL" envDefault:"1s"`
	// StorageWarningMargin is subtracted from quota.Storage*1e9 to get the storage warning threshold.
	StorageWarningMargin int64 `env:"BILLING_STORAGE_WARNING_MARGIN" envDefault:"5000000"`
	// TrialWarningDays flags the trial badge when fewer days than this remain.
	TrialWarningDays int `env:"BILLING_TRIAL_WARNING_DAYS" envDefault:"3"`
	// MutationTimeout bounds a started billing mutation. The caller going away
	// does not cancel it. Zero means no bound.
	MutationTimeout time.Duration `env:"BILLING_MUTATION_TIMEOUT" envDefault:"30s"`
}

// DefaultConfig returns the values used when no configuration is loaded.
func DefaultConfig() Config {
	return Config{
		FeedbackInterval:     time.Second,
		StorageWarningMargin: DefaultStorageWarningMargin,
		TrialWarningDays:     3,
		MutationTimeout:      30 * time.Second,
	}
}
