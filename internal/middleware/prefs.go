package middleware

import (
	"net/http"
	"strings"

	"github.com/diewo77/go-immobiliare/i18n"
)

const langCookie = "lang"

// Prefs resolves the UI language (query > cookie > Accept-Language) and stores it
// in the request context. A language chosen with ?lang= is kept in a cookie for ~30 days.
func Prefs(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var lang string
		if ql := strings.TrimSpace(r.URL.Query().Get("lang")); ql != "" {
			lang = i18n.Normalize(ql)
			http.SetCookie(w, &http.Cookie{Name: langCookie, Value: lang, Path: "/", MaxAge: 86400 * 30, HttpOnly: true, SameSite: http.SameSiteLaxMode})
		} else if c, err := r.Cookie(langCookie); err == nil && c.Value != "" {
			lang = i18n.Normalize(c.Value)
		} else {
			lang = i18n.DetectLanguage(r.Header.Get("Accept-Language"))
		}
		next.ServeHTTP(w, r.WithContext(i18n.WithLang(r.Context(), lang)))
	})
}
