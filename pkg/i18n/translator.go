package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/billingpanel/pkg/logger"
)

// DefaultLanguage is used when no other language is configured or matched.
const DefaultLanguage = "en"

// Translator resolves dot-separated keys to localized templates and fills
// %{name} placeholders.
type Translator struct {
	mu            sync.RWMutex
	translations  map[string]map[string]any
	defaultLang   string
	fallbackToKey bool
	logMissing    bool
	logger        *slog.Logger

	langs   []string
	matcher language.Matcher
}

// NewTranslator loads translations through adapter.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	for lang, m := range translations {
		if lang == "" {
			return nil, ErrEmptyLanguage
		}
		if m == nil {
			return nil, fmt.Errorf("%w: %s", ErrNilTranslations, lang)
		}
	}

	t.translations = translations
	t.buildMatcher()
	t.logger.InfoContext(ctx, "translations loaded", slog.Any("languages", t.langs))
	return t, nil
}

// buildMatcher puts the default language first so it wins when nothing matches.
func (t *Translator) buildMatcher() {
	langs := make([]string, 0, len(t.translations)+1)
	langs = append(langs, t.defaultLang)
	for lang := range t.translations {
		if lang != t.defaultLang {
			langs = append(langs, lang)
		}
	}
	slices.Sort(langs[1:])

	tags := make([]language.Tag, len(langs))
	for i, l := range langs {
		tags[i] = language.Make(l)
	}
	t.langs = langs
	t.matcher = language.NewMatcher(tags)
}

// SupportedLanguages returns the loaded languages, default first.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.langs)
}

// DefaultLanguage returns the fallback language.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// Match picks the best supported language for an Accept-Language header or
// plain language tags. The default language is returned when nothing fits.
func (t *Translator) Match(preferences ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, idx := language.MatchStrings(t.matcher, preferences...)
	if idx < 0 || idx >= len(t.langs) {
		return t.defaultLang
	}
	return t.langs[idx]
}

// Has reports whether lang has a translation for key.
func (t *Translator) Has(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := lookup(t.translations[lang], key)
	return ok
}

// T translates key for lang. args are name/value pairs substituted into
// %{name} placeholders. A key missing in lang is looked up in the default
// language, then the key itself is used when fallback to key is enabled.
func (t *Translator) T(lang, key string, args ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if tmpl, ok := lookup(t.translations[lang], key); ok {
		return substitute(tmpl, args)
	}
	if lang != t.defaultLang {
		if tmpl, ok := lookup(t.translations[t.defaultLang], key); ok {
			return substitute(tmpl, args)
		}
	}
	if t.logMissing {
		t.logger.Warn("translation not found", slog.String("lang", lang), slog.String("key", key))
	}
	if t.fallbackToKey {
		return substitute(key, args)
	}
	return ""
}

// Printer binds the translator to a language.
func (t *Translator) Printer(lang string) *Printer {
	return &Printer{translator: t, lang: lang}
}

// lookup walks a nested map along a dot-separated key.
func lookup(m map[string]any, key string) (string, bool) {
	if m == nil {
		return "", false
	}
	// flat keys containing dots win over nesting
	if v, ok := m[key]; ok {
		s, isString := v.(string)
		return s, isString
	}

	head, rest, nested := strings.Cut(key, ".")
	if !nested {
		return "", false
	}
	switch next := m[head].(type) {
	case map[string]any:
		return lookup(next, rest)
	case map[any]any:
		converted := make(map[string]any, len(next))
		for k, v := range next {
			if ks, ok := k.(string); ok {
				converted[ks] = v
			}
		}
		return lookup(converted, rest)
	default:
		return "", false
	}
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// substitute replaces %{name} placeholders. Unknown names are left as is.
func substitute(tmpl string, args []string) string {
	if len(args) < 2 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if v, ok := params[match[2:len(match)-1]]; ok {
			return v
		}
		return match
	})
}
