package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ecoleweb/portail/internal/auth"
	"github.com/ecoleweb/portail/internal/quiz"
)

// GET /eleve/quizzes — answer keys stripped
func ListQuizzesStudentHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qs, err := store.ListQuizzes(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]quiz.Quiz, 0, len(qs))
		for _, q := range qs {
			out = append(out, q.StripAnswerKeys())
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// GET /eleve/quizzes/{quizID} — answer keys stripped
func GetQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := store.GetQuiz(r.Context(), chi.URLParam(r, "quizID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

type submitReq struct {
	Answers map[string]interface{} `json:"answers"`
}

// POST /eleve/quizzes/{quizID}/submit
func SubmitQuizHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		u, ok := auth.UserFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthenticated", http.StatusUnauthorized)
			return
		}
		sub, err := svc.Submit(r.Context(), chi.URLParam(r, "quizID"), u.ID, req.Answers)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sub)
	}
}

// GET /eleve/quizzes/{quizID}/submission — the student's own row
func GetOwnSubmissionHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := auth.UserFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthenticated", http.StatusUnauthorized)
			return
		}
		sub, err := store.GetSubmission(r.Context(), chi.URLParam(r, "quizID"), u.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sub)
	}
}
