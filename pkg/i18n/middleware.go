package i18n

import "net/http"

// LangQueryParam overrides Accept-Language when present in the query string.
const LangQueryParam = "lang"

// Middleware negotiates the request language against the translator's
// languages and stores it with SetLocale.
func Middleware(t *Translator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			prefs := make([]string, 0, 2)
			if q := r.URL.Query().Get(LangQueryParam); q != "" {
				prefs = append(prefs, q)
			}
			if h := r.Header.Get("Accept-Language"); h != "" {
				prefs = append(prefs, h)
			}
			lang := t.Match(prefs...)
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}
