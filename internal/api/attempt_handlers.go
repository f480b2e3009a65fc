package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/quizengine/internal/errors"
	"github.com/vytor/quizengine/internal/logger"
	"github.com/vytor/quizengine/internal/models"
)

type startAttemptRequest struct {
	Mode      models.AttemptMode `json:"mode"`
	Randomize bool               `json:"randomize"`
}

type submitAnswerRequest struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

type saveProgressRequest struct {
	CurrentQuestionIndex *int `json:"current_question_index"`
}

func (s *Server) handleStartAttempt(w http.ResponseWriter, r *http.Request) {
	var req startAttemptRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.AttemptService.Start(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "quizID"), req.Mode, req.Randomize)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleListAttempts(w http.ResponseWriter, r *http.Request) {
	attempts, err := s.AttemptService.ListAttempts(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "quizID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"attempts": attempts})
}

func (s *Server) handleActiveAttempt(w http.ResponseWriter, r *http.Request) {
	view, err := s.AttemptService.GetActiveAttempt(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "quizID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleGetAttempt(w http.ResponseWriter, r *http.Request) {
	view, err := s.AttemptService.GetAttempt(r.Context(), chi.URLParam(r, "attemptID"), userFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req submitAnswerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	feedback, err := s.AttemptService.SubmitAnswer(r.Context(), chi.URLParam(r, "attemptID"), userFromContext(r.Context()), req.QuestionID, req.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, feedback)
}

func (s *Server) handleSaveProgress(w http.ResponseWriter, r *http.Request) {
	var req saveProgressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.CurrentQuestionIndex == nil {
		handleError(w, r, errors.NewValidationError("current_question_index", "required"))
		return
	}

	err := s.AttemptService.SaveProgress(r.Context(), chi.URLParam(r, "attemptID"), userFromContext(r.Context()), *req.CurrentQuestionIndex)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"accepted": true})
}

func (s *Server) handleCompleteAttempt(w http.ResponseWriter, r *http.Request) {
	attempt, err := s.AttemptService.Complete(r.Context(), chi.URLParam(r, "attemptID"), userFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Debug("attempt %s scored %.2f", attempt.ID, attempt.Score)
	writeJSON(w, http.StatusOK, attempt)
}

func (s *Server) handleAttemptResults(w http.ResponseWriter, r *http.Request) {
	results, err := s.AttemptService.GetResults(r.Context(), chi.URLParam(r, "attemptID"), userFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}
