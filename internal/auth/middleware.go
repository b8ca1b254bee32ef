package auth

import (
	"net/http"
	"time"

	"github.com/ecoleweb/portail/internal/rbac"
)

// SessionCookieName carries the signed session token.
const SessionCookieName = "session"

// SetSessionCookie writes the session cookie. Secure is on in prod.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie discards the session on logout.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionMiddleware resolves the session cookie to a live user and puts
// both the user and its role into the request context. Requests without
// a usable session pass through unauthenticated; the role gate decides
// whether that is acceptable for the route.
func SessionMiddleware(sessions *Sessions, store UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(SessionCookieName)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			u, ok := CurrentUser(r.Context(), sessions, store, c.Value)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			ctx := WithUser(r.Context(), u)
			ctx = rbac.WithRole(ctx, u.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
