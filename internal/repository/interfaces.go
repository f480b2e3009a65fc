package repository

import (
	"context"
	"errors"

	"github.com/vytor/quizengine/internal/models"
)

// ErrNotFound is returned when a keyed record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a write would replace a record owned by someone else.
var ErrConflict = errors.New("record owned by another user")

// QuizRepository handles quiz definition storage
type QuizRepository interface {
	Get(ctx context.Context, id string) (*models.Quiz, error)
	// List returns quizzes owned by ownerID together with shared ones.
	List(ctx context.Context, ownerID string) ([]models.QuizSummary, error)
	// Upsert inserts or replaces the quiz regardless of its current owner.
	Upsert(ctx context.Context, quiz models.Quiz) error
	// UpsertOwned inserts the quiz, or replaces it only when the stored copy
	// has the same owner. Otherwise it returns ErrConflict and changes nothing.
	UpsertOwned(ctx context.Context, quiz models.Quiz) error
}

// AttemptRepository is the durable attempt store. Each method applies its
// change to a single attempt atomically.
type AttemptRepository interface {
	Get(ctx context.Context, id string) (*models.Attempt, error)
	GetActive(ctx context.Context, userID, quizID string) (*models.Attempt, error)
	List(ctx context.Context, filter models.AttemptFilter) ([]models.Attempt, error)
	// Start marks any in-progress attempt of the same user and quiz as
	// abandoned and inserts attempt, in one transaction. It returns the ids
	// of the abandoned attempts.
	Start(ctx context.Context, attempt models.Attempt) ([]string, error)
	// Update loads the attempt, lets fn mutate it and persists the result in
	// one transaction. Nothing is written when fn returns an error.
	Update(ctx context.Context, id string, fn func(*models.Attempt) error) (*models.Attempt, error)
}
