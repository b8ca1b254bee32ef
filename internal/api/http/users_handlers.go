package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ecoleweb/portail/internal/auth"
	"github.com/ecoleweb/portail/internal/rbac"
)

type upsertUserReq struct {
	LoginCode string `json:"login_code" validate:"required"`
	Name      string `json:"name"`
	Role      string `json:"role" validate:"required"`
	Password  string `json:"password" validate:"required,min=8"`
}

// POST /admin/users — insert or replace by login_code
func UpsertUserHandler(users auth.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req upsertUserReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "login_code, role and a password of 8+ chars are required", http.StatusBadRequest)
			return
		}
		role, err := rbac.ParseRole(req.Role)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			writeError(w, err)
			return
		}
		u := auth.User{
			ID:           uuid.NewString(),
			LoginCode:    req.LoginCode,
			Name:         req.Name,
			Role:         role,
			PasswordHash: hash,
			Active:       true,
		}
		if err := users.UpsertUser(r.Context(), u); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, viewOf(u))
	}
}

// GET /admin/users?role=eleve
func ListUsersHandler(users auth.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var role rbac.Role
		if s := r.URL.Query().Get("role"); s != "" {
			parsed, err := rbac.ParseRole(s)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			role = parsed
		}
		list, err := users.ListUsers(r.Context(), role)
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]userView, 0, len(list))
		for _, u := range list {
			out = append(out, viewOf(u))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// POST /admin/users/{userID}/deactivate — sessions die on the next
// request, not at token expiry
func DeactivateUserHandler(users auth.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := users.SetActive(r.Context(), chi.URLParam(r, "userID"), false); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
