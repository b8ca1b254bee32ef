package rbac

import (
	"net/http"
	"net/url"
	"strings"
)

// RequireRole gates a route subtree to the allowed roles. Unauthenticated
// browser requests are sent to the login page carrying the original path;
// API clients get a plain 401. A valid session with the wrong role is 403.
func RequireRole(allowed ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			if role == "" {
				if wantsHTML(r) {
					http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
					return
				}
				http.Error(w, "unauthenticated", http.StatusUnauthorized)
				return
			}
			if !HasRole(role, allowed...) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
