package services

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/vytor/quizengine/internal/errors"
	"github.com/vytor/quizengine/internal/logger"
	"github.com/vytor/quizengine/internal/models"
	"github.com/vytor/quizengine/internal/repository"
)

// QuizService exposes the quiz catalog and the import path for quiz documents.
type QuizService interface {
	GetQuiz(ctx context.Context, userID, quizID string) (*models.QuizRender, error)
	ListQuizzes(ctx context.Context, userID string) ([]models.QuizSummary, error)
	Import(ctx context.Context, ownerID string, r io.Reader) (*models.Quiz, error)
	ImportFile(ctx context.Context, path string) (*models.Quiz, error)
}

type quizService struct {
	quizRepo repository.QuizRepository
	now      func() time.Time
}

// NewQuizService creates a new QuizService
func NewQuizService(quizRepo repository.QuizRepository) QuizService {
	return &quizService{quizRepo: quizRepo, now: time.Now}
}

func (s *quizService) GetQuiz(ctx context.Context, userID, quizID string) (*models.QuizRender, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting quiz: quiz_id=%s", quizID)

	qz, err := loadVisibleQuiz(ctx, s.quizRepo, userID, quizID)
	if err != nil {
		return nil, err
	}
	return models.NewQuizRender(qz, qz.Sections, qz.CanonicalOrder()), nil
}

func (s *quizService) ListQuizzes(ctx context.Context, userID string) ([]models.QuizSummary, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing quizzes for user_id=%s", userID)

	list, err := s.quizRepo.List(ctx, userID)
	if err != nil {
		log.Error("failed to list quizzes: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return list, nil
}

// Import decodes one quiz document and stores it. Only the JSON shape is
// checked here; structural invariants are enforced when an attempt starts.
// A non-empty ownerID overrides the owner named in the document, and such an
// import may only replace a quiz that ownerID already owns. Imports without
// an owner come from the server's quiz directory and may replace anything.
func (s *quizService) Import(ctx context.Context, ownerID string, r io.Reader) (*models.Quiz, error) {
	log := logger.FromContext(ctx)

	var qz models.Quiz
	if err := json.NewDecoder(r).Decode(&qz); err != nil {
		return nil, errors.NewValidationError("quiz", fmt.Sprintf("invalid document: %v", err))
	}
	qz.ID = strings.TrimSpace(qz.ID)
	if qz.ID == "" {
		return nil, errors.NewValidationError("id", "required")
	}
	if ownerID != "" {
		qz.OwnerID = ownerID
	}
	if qz.CreatedAt.IsZero() {
		qz.CreatedAt = s.now()
	}

	if err := s.store(ctx, qz, ownerID != ""); err != nil {
		if stderrors.Is(err, repository.ErrConflict) {
			return nil, errors.NewValidationError("id", "already in use")
		}
		log.Error("failed to store quiz %s: %v", qz.ID, err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("quiz imported: id=%s, questions=%d, sections=%d", qz.ID, len(qz.Questions), len(qz.Sections))
	return &qz, nil
}

func (s *quizService) store(ctx context.Context, qz models.Quiz, guarded bool) error {
	if guarded {
		return s.quizRepo.UpsertOwned(ctx, qz)
	}
	return s.quizRepo.Upsert(ctx, qz)
}

func (s *quizService) ImportFile(ctx context.Context, path string) (*models.Quiz, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewInternalError(fmt.Errorf("open %s: %w", path, err))
	}
	defer f.Close()
	return s.Import(ctx, "", f)
}

// loadVisibleQuiz hides quizzes the user may not see behind NOT_FOUND.
func loadVisibleQuiz(ctx context.Context, repo repository.QuizRepository, userID, quizID string) (*models.Quiz, error) {
	qz, err := repo.Get(ctx, quizID)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.NewNotFoundError("quiz", quizID)
	}
	if err != nil {
		logger.FromContext(ctx).Error("failed to load quiz %s: %v", quizID, err)
		return nil, errors.NewInternalError(err)
	}
	if !qz.VisibleTo(userID) {
		return nil, errors.NewNotFoundError("quiz", quizID)
	}
	return qz, nil
}
