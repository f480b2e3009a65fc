package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := s.QuizService.ListQuizzes(r.Context(), userFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"quizzes": quizzes})
}

func (s *Server) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	render, err := s.QuizService.GetQuiz(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "quizID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, render)
}

// handleImportQuiz stores a quiz document owned by the caller.
func (s *Server) handleImportQuiz(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	qz, err := s.QuizService.Import(r.Context(), userFromContext(r.Context()), body)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, qz)
}
