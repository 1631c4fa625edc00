package i18n

import "log/slog"

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the language used for fallbacks and unmatched requests.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = lang
		}
	}
}

// WithFallbackToKey controls whether a missing key renders as the key itself.
func WithFallbackToKey(fallback bool) Option {
	return func(t *Translator) { t.fallbackToKey = fallback }
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMissingTranslationsLogging logs a warning for every missing key.
func WithMissingTranslationsLogging(enabled bool) Option {
	return func(t *Translator) { t.logMissing = enabled }
}
