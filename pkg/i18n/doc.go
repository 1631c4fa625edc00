// Package i18n loads YAML translation files and renders localized messages.
//
// Translation files use language codes as top-level keys; nested maps are
// addressed with dot-separated keys and %{name} placeholders are filled from
// name/value arguments:
//
//	en:
//	  billing:
//	    status:
//	      trialing: "Trialing (%{days} days left)"
//
//	t, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(i18n.NewYAMLParser(), locales, "locales"))
//	t.T("en", "billing.status.trialing", "days", "2") // Trialing (2 days left)
//
// Missing keys fall back to the default language and then to the key itself.
// Match negotiates Accept-Language values using golang.org/x/text/language,
// and Middleware stores the result in the request context. A Printer binds a
// translator to one language.
package i18n
