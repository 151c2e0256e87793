package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strings"

	"bidportal/internal/logging"
	"bidportal/models"
)

func (m *Manager) CookieName() string { return m.opts.CookieName }

// SetCookie hands the session id to the browser.
func (m *Manager) SetCookie(w http.ResponseWriter, s *Data) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    s.ID,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Token returns the session id sent by the browser, if any.
func (m *Manager) Token(r *http.Request) string {
	c, err := r.Cookie(m.opts.CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// Load attaches the session user to the request context when the cookie
// points at a live session. It never rejects a request.
func (m *Manager) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.Token(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}
		user, err := m.Resolve(r.Context(), token)
		if err != nil {
			if !errors.Is(err, ErrSessionNotFound) {
				logging.Warn("session lookup failed", "error", err.Error())
			}
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// ProtectPage sends anonymous browsers to the login page and answers other
// anonymous clients with 401.
func (m *Manager) ProtectPage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsLoggedIn(r.Context()) {
			next.ServeHTTP(w, r)
			return
		}
		if wantsHTML(r) {
			http.Redirect(w, r, m.opts.LoginPath, http.StatusSeeOther)
			return
		}
		writeError(w, http.StatusUnauthorized, "authentication required")
	})
}

// RequireRole lets through only users holding one of roles.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := CurrentUser(r.Context())
			if u == nil {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if !slices.Contains(roles, u.Role) {
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
