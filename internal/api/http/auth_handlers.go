package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ecoleweb/portail/internal/audit"
	"github.com/ecoleweb/portail/internal/auth"
)

type loginReq struct {
	LoginCode string `json:"login_code" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

type userView struct {
	ID        string `json:"id"`
	LoginCode string `json:"login_code"`
	Name      string `json:"name"`
	Role      string `json:"role"`
}

func viewOf(u auth.User) userView {
	return userView{ID: u.ID, LoginCode: u.LoginCode, Name: u.Name, Role: string(u.Role)}
}

// POST /login  { "login_code": "...", "password": "..." }
func LoginHandler(sessions *auth.Sessions, users auth.UserStore, events *audit.EventRepo, secureCookies bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "login_code and password are required", http.StatusBadRequest)
			return
		}
		u, err := auth.Authenticate(r.Context(), users, req.LoginCode, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				// one message for unknown user and wrong password
				http.Error(w, "invalid credentials", http.StatusUnauthorized)
				return
			}
			writeError(w, err)
			return
		}
		tok, err := sessions.Issue(u)
		if err != nil {
			writeError(w, err)
			return
		}
		auth.SetSessionCookie(w, tok, sessions.TTL(), secureCookies)
		if events != nil {
			_ = events.Append(r.Context(), audit.TypeLogin, u.ID, map[string]string{"login_code": u.LoginCode})
		}
		writeJSON(w, http.StatusOK, viewOf(u))
	}
}

// POST /logout
func LogoutHandler(secureCookies bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth.ClearSessionCookie(w, secureCookies)
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /me
func MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := auth.UserFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthenticated", http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, viewOf(u))
	}
}
