package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", userHeader, "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		if s.RequestTimeout > 0 {
			r.Use(timeoutMiddleware(s.RequestTimeout))
		}
		r.Use(userMiddleware)

		r.Get("/quizzes", s.handleListQuizzes)
		r.Post("/quizzes", s.handleImportQuiz)
		r.Get("/quizzes/{quizID}", s.handleGetQuiz)
		r.Post("/quizzes/{quizID}/attempts", s.handleStartAttempt)
		r.Get("/quizzes/{quizID}/attempts", s.handleListAttempts)
		r.Get("/quizzes/{quizID}/attempts/active", s.handleActiveAttempt)

		r.Get("/attempts/{attemptID}", s.handleGetAttempt)
		r.Post("/attempts/{attemptID}/answers", s.handleSubmitAnswer)
		r.Post("/attempts/{attemptID}/progress", s.handleSaveProgress)
		r.Post("/attempts/{attemptID}/complete", s.handleCompleteAttempt)
		r.Get("/attempts/{attemptID}/results", s.handleAttemptResults)
	})
	return r
}
