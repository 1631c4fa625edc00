package billing

import (
	"context"
	"embed"

	"github.com/dmitrymomot/billingpanel/pkg/i18n"
)

//go:embed locales/*.yaml
var locales embed.FS

// LoadTranslator loads the built-in panel translations.
func LoadTranslator(ctx context.Context, opts ...i18n.Option) (*i18n.Translator, error) {
	return i18n.NewTranslator(ctx, i18n.NewFSAdapter(i18n.NewYAMLParser(), locales, "locales"), opts...)
}
