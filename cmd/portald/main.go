package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/ecoleweb/portail/internal/api/http"
	"github.com/ecoleweb/portail/internal/audit"
	"github.com/ecoleweb/portail/internal/auth"
	"github.com/ecoleweb/portail/internal/config"
	"github.com/ecoleweb/portail/internal/db"
	"github.com/ecoleweb/portail/internal/quiz"
	"github.com/ecoleweb/portail/internal/rbac"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	users := auth.NewSQLUserStore(dbh)
	quizzes := quiz.NewSQLStore(dbh)
	events := audit.NewEventRepo(dbh)
	svc := quiz.NewService(quizzes, events)

	sessions, err := auth.NewSessions(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		log.Fatalf("sessions: %v", err)
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(auth.SessionMiddleware(sessions, users))

	r.Post("/login", api.LoginHandler(sessions, users, events, cfg.SecureCookies))
	r.Post("/logout", api.LogoutHandler(cfg.SecureCookies))
	r.Get("/me", api.MeHandler())

	// Role-gated areas. One gate per prefix; handlers never re-check
	// role strings themselves.
	r.Route("/admin", func(ar chi.Router) {
		ar.Use(rbac.RequireRole(rbac.RoleAdmin))
		ar.Post("/users", api.UpsertUserHandler(users))
		ar.Get("/users", api.ListUsersHandler(users))
		ar.Post("/users/{userID}/deactivate", api.DeactivateUserHandler(users))
	})

	r.Route("/prof", func(pr chi.Router) {
		pr.Use(rbac.RequireRole(rbac.RoleProf))
		pr.Post("/quizzes", api.CreateQuizHandler(quizzes))
		pr.Get("/quizzes", api.ListQuizzesHandler(quizzes))
		pr.Get("/quizzes/{quizID}", api.GetQuizFullHandler(quizzes))
		pr.Get("/quizzes/{quizID}/submissions", api.ListSubmissionsHandler(quizzes))
		pr.Post("/quizzes/{quizID}/submissions/{studentID}/grade", api.ApplyGradeHandler(svc))
	})

	r.Route("/eleve", func(er chi.Router) {
		er.Use(rbac.RequireRole(rbac.RoleEleve))
		er.Get("/quizzes", api.ListQuizzesStudentHandler(quizzes))
		er.Get("/quizzes/{quizID}", api.GetQuizHandler(quizzes))
		er.Post("/quizzes/{quizID}/submit", api.SubmitQuizHandler(svc))
		er.Get("/quizzes/{quizID}/submission", api.GetOwnSubmissionHandler(quizzes))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("portald listening on %s (env=%s, db=%s)", cfg.HTTPAddr, cfg.Env, cfg.DBDriver)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal(err)
	}
}
