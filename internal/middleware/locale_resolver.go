package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"esselab.org/esse-web/internal/i18n"
)

// Locale reads the {locale} URL segment. Unknown codes select French strings
// and formats.
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := i18n.Normalize(strings.ToLower(chi.URLParam(r, "locale")))
		w.Header().Set("Content-Language", lang)
		next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), lang)))
	})
}

// Lang returns the supported locale of the request, French by default.
func Lang(r *http.Request) string {
	if v, ok := r.Context().Value(ctxKeyLocale).(string); ok && v != "" {
		return v
	}
	return i18n.French
}

// RedirectToLocale sends / to the best locale for Accept-Language.
func RedirectToLocale(bundle *i18n.Bundle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := bundle.Resolve(r.Header.Get("Accept-Language"))
		w.Header().Add("Vary", "Accept-Language")
		http.Redirect(w, r, "/"+lang+"/", http.StatusFound)
	}
}
