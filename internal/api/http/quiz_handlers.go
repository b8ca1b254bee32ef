package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ecoleweb/portail/internal/auth"
	"github.com/ecoleweb/portail/internal/quiz"
)

type createQuizReq struct {
	Title     string          `json:"title" validate:"required"`
	Scale     float64         `json:"scale"`
	Questions []quiz.Question `json:"questions" validate:"required,min=1"`
	StartTime *int64          `json:"start_time"`
	EndTime   int64           `json:"end_time" validate:"required"`
}

// POST /prof/quizzes
func CreateQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createQuizReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "title, questions and end_time are required", http.StatusBadRequest)
			return
		}
		if req.Scale == 0 {
			req.Scale = quiz.DefaultScale
		}
		u, _ := auth.UserFromContext(r.Context())
		q := quiz.Quiz{
			ID:        uuid.NewString(),
			Title:     req.Title,
			Scale:     req.Scale,
			Questions: req.Questions,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			CreatedBy: u.ID,
		}
		if err := q.Validate(); err != nil {
			writeError(w, err)
			return
		}
		if err := store.PutQuiz(r.Context(), q); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, q)
	}
}

// GET /prof/quizzes
func ListQuizzesHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qs, err := store.ListQuizzes(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if qs == nil {
			qs = []quiz.Quiz{}
		}
		writeJSON(w, http.StatusOK, qs)
	}
}

// GET /prof/quizzes/{quizID}
func GetQuizFullHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := store.GetQuizFull(r.Context(), chi.URLParam(r, "quizID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

// GET /prof/quizzes/{quizID}/submissions
func ListSubmissionsHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subs, err := store.ListSubmissions(r.Context(), chi.URLParam(r, "quizID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if subs == nil {
			subs = []quiz.Submission{}
		}
		writeJSON(w, http.StatusOK, subs)
	}
}

type manualGradeReq struct {
	Score   *float64 `json:"score" validate:"required"`
	Comment string   `json:"comment"`
}

// POST /prof/quizzes/{quizID}/submissions/{studentID}/grade
func ApplyGradeHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req manualGradeReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "score is required", http.StatusBadRequest)
			return
		}
		sub, err := svc.GradeManually(r.Context(),
			chi.URLParam(r, "quizID"), chi.URLParam(r, "studentID"), *req.Score, req.Comment)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sub)
	}
}
