package services

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/quizengine/internal/errors"
	"github.com/vytor/quizengine/internal/logger"
	"github.com/vytor/quizengine/internal/models"
	"github.com/vytor/quizengine/internal/quiz"
	"github.com/vytor/quizengine/internal/repository"
)

// AttemptService runs a user's attempts through a quiz. Concurrent writes to
// the same attempt are last-write-wins per answer entry and per progress
// field; no cross-request locking is performed.
type AttemptService interface {
	Start(ctx context.Context, userID, quizID string, mode models.AttemptMode, randomize bool) (*models.AttemptView, error)
	SubmitAnswer(ctx context.Context, attemptID, userID, questionID, answer string) (*models.AnswerFeedback, error)
	SaveProgress(ctx context.Context, attemptID, userID string, currentQuestionIndex int) error
	Complete(ctx context.Context, attemptID, userID string) (*models.Attempt, error)
	GetAttempt(ctx context.Context, attemptID, userID string) (*models.AttemptView, error)
	GetResults(ctx context.Context, attemptID, userID string) (*models.AttemptResults, error)
	GetActiveAttempt(ctx context.Context, userID, quizID string) (*models.AttemptView, error)
	ListAttempts(ctx context.Context, userID, quizID string) ([]models.Attempt, error)
}

// AttemptOption configures an AttemptService.
type AttemptOption func(*attemptService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) AttemptOption {
	return func(s *attemptService) { s.now = now }
}

// WithShuffler sets the source used to randomize question order.
func WithShuffler(sh quiz.Shuffler) AttemptOption {
	return func(s *attemptService) { s.shuffler = sh }
}

// WithIDGenerator replaces the attempt id generator.
func WithIDGenerator(gen func() string) AttemptOption {
	return func(s *attemptService) { s.newID = gen }
}

type attemptService struct {
	attemptRepo repository.AttemptRepository
	quizRepo    repository.QuizRepository
	now         func() time.Time
	shuffler    quiz.Shuffler
	newID       func() string
}

// NewAttemptService creates a new AttemptService
func NewAttemptService(attemptRepo repository.AttemptRepository, quizRepo repository.QuizRepository, opts ...AttemptOption) AttemptService {
	s := &attemptService{
		attemptRepo: attemptRepo,
		quizRepo:    quizRepo,
		now:         time.Now,
		shuffler:    quiz.DefaultShuffler,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *attemptService) Start(ctx context.Context, userID, quizID string, mode models.AttemptMode, randomize bool) (*models.AttemptView, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting attempt: user_id=%s, quiz_id=%s, mode=%s, randomize=%t", userID, quizID, mode, randomize)

	if !mode.Valid() {
		return nil, errors.NewValidationError("mode", "must be 'practice' or 'test'")
	}

	qz, err := loadVisibleQuiz(ctx, s.quizRepo, userID, quizID)
	if err != nil {
		return nil, err
	}
	if err := quiz.Validate(qz); err != nil {
		log.Warn("refusing to start attempt on malformed quiz %s: %v", quizID, err)
		return nil, errors.NewValidationError("quiz", err.Error())
	}

	attempt := models.Attempt{
		ID:        s.newID(),
		QuizID:    qz.ID,
		UserID:    userID,
		Mode:      mode,
		Status:    models.StatusInProgress,
		Answers:   map[string]string{},
		StartedAt: s.now(),
		MaxScore:  qz.Scoring.MaxScore,

		QuizSnapshot: qz,
	}
	if randomize {
		order := quiz.Randomize(qz, s.shuffler)
		attempt.IsRandomized = true
		attempt.RandomizedOrder = &order
	}

	abandoned, err := s.attemptRepo.Start(ctx, attempt)
	if err != nil {
		log.Error("failed to create attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}
	for _, id := range abandoned {
		log.Info("attempt abandoned: id=%s, replaced_by=%s", id, attempt.ID)
	}

	log.Info("attempt started: id=%s, quiz_id=%s, mode=%s, randomized=%t", attempt.ID, qz.ID, mode, randomize)
	return models.NewAttemptView(&attempt, qz), nil
}

func (s *attemptService) SubmitAnswer(ctx context.Context, attemptID, userID, questionID, answer string) (*models.AnswerFeedback, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting answer: attempt_id=%s, question_id=%s", attemptID, questionID)

	questionID = strings.TrimSpace(questionID)
	answer = strings.TrimSpace(answer)
	if questionID == "" {
		return nil, errors.NewValidationError("question_id", "required")
	}
	if answer == "" {
		return nil, errors.NewValidationError("answer", "required")
	}

	current, err := s.activeAttempt(ctx, attemptID, userID)
	if err != nil {
		return nil, err
	}
	qz, err := s.attemptQuiz(ctx, current)
	if err != nil {
		return nil, err
	}
	question, ok := qz.QuestionIndex()[questionID]
	if !ok {
		return nil, errors.NewValidationError("question_id", "not part of this quiz")
	}

	updated, err := s.attemptRepo.Update(ctx, attemptID, func(a *models.Attempt) error {
		if err := checkActive(a, userID); err != nil {
			return err
		}
		if a.Answers == nil {
			a.Answers = map[string]string{}
		}
		a.Answers[questionID] = answer
		return nil
	})
	if err != nil {
		return nil, s.storeError(ctx, "attempt", attemptID, err)
	}

	feedback := &models.AnswerFeedback{Accepted: true}
	if updated.Mode == models.ModePractice {
		res := quiz.Evaluate(question, &answer)
		feedback.Correct = &res.Correct
		feedback.CorrectAnswer = res.CorrectAnswer
	}
	return feedback, nil
}

func (s *attemptService) SaveProgress(ctx context.Context, attemptID, userID string, currentQuestionIndex int) error {
	log := logger.FromContext(ctx)
	log.Debug("saving progress: attempt_id=%s, index=%d", attemptID, currentQuestionIndex)

	current, err := s.activeAttempt(ctx, attemptID, userID)
	if err != nil {
		return err
	}
	qz, err := s.attemptQuiz(ctx, current)
	if err != nil {
		return err
	}
	if currentQuestionIndex < 0 || currentQuestionIndex >= len(qz.Questions) {
		return errors.NewValidationError("current_question_index", "out of range")
	}

	_, err = s.attemptRepo.Update(ctx, attemptID, func(a *models.Attempt) error {
		if err := checkActive(a, userID); err != nil {
			return err
		}
		now := s.now()
		a.CurrentQuestionIndex = currentQuestionIndex
		a.LastSavedAt = &now
		return nil
	})
	if err != nil {
		return s.storeError(ctx, "attempt", attemptID, err)
	}
	return nil
}

func (s *attemptService) Complete(ctx context.Context, attemptID, userID string) (*models.Attempt, error) {
	log := logger.FromContext(ctx)
	log.Debug("completing attempt: attempt_id=%s", attemptID)

	current, err := s.activeAttempt(ctx, attemptID, userID)
	if err != nil {
		return nil, err
	}
	qz, err := s.attemptQuiz(ctx, current)
	if err != nil {
		return nil, err
	}

	completed, err := s.attemptRepo.Update(ctx, attemptID, func(a *models.Attempt) error {
		if err := checkActive(a, userID); err != nil {
			return err
		}
		outcome := quiz.Score(qz, a.Answers)
		now := s.now()

		a.Status = models.StatusCompleted
		a.CompletedAt = &now
		a.TimeSpentSeconds = elapsedSeconds(a.StartedAt, now)
		a.Score = outcome.Score
		a.Percentage = quiz.Percentage(outcome.Score, a.MaxScore)
		a.Results = outcome.PerQuestion
		return nil
	})
	if err != nil {
		return nil, s.storeError(ctx, "attempt", attemptID, err)
	}

	log.Info("attempt completed: id=%s, score=%.2f/%.2f, time_spent=%ds",
		completed.ID, completed.Score, completed.MaxScore, completed.TimeSpentSeconds)
	return completed, nil
}

func (s *attemptService) GetAttempt(ctx context.Context, attemptID, userID string) (*models.AttemptView, error) {
	logger.FromContext(ctx).Debug("getting attempt: attempt_id=%s", attemptID)

	a, err := s.ownedAttempt(ctx, attemptID, userID)
	if err != nil {
		return nil, err
	}
	qz, err := s.attemptQuiz(ctx, a)
	if err != nil {
		return nil, err
	}
	return models.NewAttemptView(a, qz), nil
}

func (s *attemptService) GetResults(ctx context.Context, attemptID, userID string) (*models.AttemptResults, error) {
	logger.FromContext(ctx).Debug("getting results: attempt_id=%s", attemptID)

	a, err := s.ownedAttempt(ctx, attemptID, userID)
	if err != nil {
		return nil, err
	}
	if a.Status != models.StatusCompleted {
		return nil, errors.NewInvalidStateError("attempt", "not completed")
	}
	return models.NewAttemptResults(a), nil
}

func (s *attemptService) GetActiveAttempt(ctx context.Context, userID, quizID string) (*models.AttemptView, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting active attempt: user_id=%s, quiz_id=%s", userID, quizID)

	qz, err := loadVisibleQuiz(ctx, s.quizRepo, userID, quizID)
	if err != nil {
		return nil, err
	}
	a, err := s.attemptRepo.GetActive(ctx, userID, quizID)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.NewNotFoundError("active attempt", quizID)
	}
	if err != nil {
		log.Error("failed to get active attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return models.NewAttemptView(a, qz), nil
}

func (s *attemptService) ListAttempts(ctx context.Context, userID, quizID string) ([]models.Attempt, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing attempts: user_id=%s, quiz_id=%s", userID, quizID)

	if _, err := loadVisibleQuiz(ctx, s.quizRepo, userID, quizID); err != nil {
		return nil, err
	}
	attempts, err := s.attemptRepo.List(ctx, models.AttemptFilter{UserID: userID, QuizID: quizID})
	if err != nil {
		log.Error("failed to list attempts: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return attempts, nil
}

// ownedAttempt loads an attempt, reporting attempts of other users as missing.
func (s *attemptService) ownedAttempt(ctx context.Context, attemptID, userID string) (*models.Attempt, error) {
	a, err := s.attemptRepo.Get(ctx, attemptID)
	if err != nil {
		return nil, s.storeError(ctx, "attempt", attemptID, err)
	}
	if a.UserID != userID {
		return nil, errors.NewNotFoundError("attempt", attemptID)
	}
	return a, nil
}

func (s *attemptService) activeAttempt(ctx context.Context, attemptID, userID string) (*models.Attempt, error) {
	a, err := s.ownedAttempt(ctx, attemptID, userID)
	if err != nil {
		return nil, err
	}
	if err := checkActive(a, userID); err != nil {
		return nil, err
	}
	return a, nil
}

// attemptQuiz returns the quiz the attempt was started against. Attempts
// stored without a snapshot fall back to the current definition.
func (s *attemptService) attemptQuiz(ctx context.Context, a *models.Attempt) (*models.Quiz, error) {
	if a.QuizSnapshot != nil {
		return a.QuizSnapshot, nil
	}
	qz, err := s.quizRepo.Get(ctx, a.QuizID)
	if err != nil {
		return nil, s.storeError(ctx, "quiz", a.QuizID, err)
	}
	return qz, nil
}

// storeError passes AppErrors through and maps repository failures.
func (s *attemptService) storeError(ctx context.Context, resource, id string, err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	if stderrors.Is(err, repository.ErrNotFound) {
		return errors.NewNotFoundError(resource, id)
	}
	logger.FromContext(ctx).Error("%s store failure for %s: %v", resource, id, err)
	return errors.NewInternalError(err)
}

func checkActive(a *models.Attempt, userID string) error {
	if a.UserID != userID {
		return errors.NewNotFoundError("attempt", a.ID)
	}
	if a.Status != models.StatusInProgress {
		return errors.NewInvalidStateError("attempt", "status is "+string(a.Status))
	}
	return nil
}

func elapsedSeconds(start, end time.Time) int64 {
	d := end.Sub(start)
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}
