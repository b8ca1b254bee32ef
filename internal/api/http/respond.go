package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/ecoleweb/portail/internal/auth"
	"github.com/ecoleweb/portail/internal/quiz"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto the portal's status taxonomy.
// Upstream store failures are logged with detail but surfaced as a
// generic 500, never with internal error text.
func writeError(w http.ResponseWriter, err error) {
	var verr quiz.ValidationError
	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, quiz.ErrNotOpen), errors.Is(err, quiz.ErrExpired):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, quiz.ErrFinalized):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, quiz.ErrQuizNotFound), errors.Is(err, quiz.ErrSubmissionNotFound),
		errors.Is(err, auth.ErrUserNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Printf("api: internal error: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
