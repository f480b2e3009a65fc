package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/quizengine/internal/models"
)

// MockQuizRepository is a mock implementation of repository.QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Get(ctx context.Context, id string) (*models.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quiz), args.Error(1)
}

func (m *MockQuizRepository) List(ctx context.Context, ownerID string) ([]models.QuizSummary, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QuizSummary), args.Error(1)
}

func (m *MockQuizRepository) Upsert(ctx context.Context, quiz models.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) UpsertOwned(ctx context.Context, quiz models.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}
