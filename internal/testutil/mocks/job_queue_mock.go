package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueQuizImport(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}
