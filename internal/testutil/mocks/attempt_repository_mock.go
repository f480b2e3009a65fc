package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/quizengine/internal/models"
)

// MockAttemptRepository is a mock implementation of repository.AttemptRepository.
// Update applies the callback to the attempt configured as its first return
// value, so expectations describe the stored record before the change.
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Get(ctx context.Context, id string) (*models.Attempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) GetActive(ctx context.Context, userID, quizID string) (*models.Attempt, error) {
	args := m.Called(ctx, userID, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) List(ctx context.Context, filter models.AttemptFilter) ([]models.Attempt, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) Start(ctx context.Context, attempt models.Attempt) ([]string, error) {
	args := m.Called(ctx, attempt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAttemptRepository) Update(ctx context.Context, id string, fn func(*models.Attempt) error) (*models.Attempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if err := args.Error(1); err != nil {
		return nil, err
	}
	stored := args.Get(0).(*models.Attempt)
	if err := fn(stored); err != nil {
		return nil, err
	}
	return stored, nil
}
