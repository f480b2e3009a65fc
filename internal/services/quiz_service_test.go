package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/quizengine/internal/errors"
	"github.com/vytor/quizengine/internal/models"
	"github.com/vytor/quizengine/internal/repository"
	"github.com/vytor/quizengine/internal/testutil"
	"github.com/vytor/quizengine/internal/testutil/mocks"
)

const quizDocument = `{
  "id": "logic-101",
  "title": "Logic 101",
  "total_questions": 2,
  "sections": [{"id": "s1", "name": "Basics", "question_ids": ["q1", "q2"]}],
  "questions": [
    {"id": "q1", "type": "analogy", "prompt": "Hot is to cold as up is to ?", "choices": {"A": "down", "B": "left"}, "answer": "A"},
    {"id": "q2", "type": "matrix", "prompt": [[1, 2], [3, null]], "choices": {"A": "4", "B": "5"}, "answer": "A"}
  ],
  "scoring": {"correct_points": 1, "wrong_points": 0, "max_score": 2}
}`

func TestQuizService_Import(t *testing.T) {
	repo := new(mocks.MockQuizRepository)
	repo.On("UpsertOwned", mock.Anything, mock.MatchedBy(func(q models.Quiz) bool {
		return q.ID == "logic-101" && q.OwnerID == "alice" && len(q.Questions) == 2
	})).Return(nil)

	svc := NewQuizService(repo)
	qz, err := svc.Import(context.Background(), "alice", strings.NewReader(quizDocument))
	require.NoError(t, err)

	assert.Equal(t, "Logic 101", qz.Title)
	assert.False(t, qz.CreatedAt.IsZero())
	assert.Equal(t, models.PromptGrid, qz.Questions[1].Prompt.Kind)
	repo.AssertExpectations(t)
}

func TestQuizService_ImportCannotReplaceOthersQuiz(t *testing.T) {
	repo := new(mocks.MockQuizRepository)
	repo.On("UpsertOwned", mock.Anything, mock.AnythingOfType("models.Quiz")).Return(repository.ErrConflict)

	_, err := NewQuizService(repo).Import(context.Background(), "bob", strings.NewReader(quizDocument))
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestQuizService_ImportRejectsBadDocuments(t *testing.T) {
	svc := NewQuizService(new(mocks.MockQuizRepository))

	_, err := svc.Import(context.Background(), "", strings.NewReader("{not json"))
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))

	_, err = svc.Import(context.Background(), "", strings.NewReader(`{"title": "no id"}`))
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))
}

func TestQuizService_ImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logic.json")
	require.NoError(t, os.WriteFile(path, []byte(quizDocument), 0o644))

	repo := new(mocks.MockQuizRepository)
	repo.On("Upsert", mock.Anything, mock.AnythingOfType("models.Quiz")).Return(nil)

	qz, err := NewQuizService(repo).ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, qz.OwnerID)
	repo.AssertNotCalled(t, "UpsertOwned", mock.Anything, mock.Anything)

	_, err = NewQuizService(repo).ImportFile(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestQuizService_GetQuizHidesAnswers(t *testing.T) {
	repo := new(mocks.MockQuizRepository)
	q := testutil.SampleQuiz("quiz-1")
	repo.On("Get", mock.Anything, "quiz-1").Return(&q, nil)

	render, err := NewQuizService(repo).GetQuiz(context.Background(), "alice", "quiz-1")
	require.NoError(t, err)

	require.Len(t, render.Questions, 3)
	assert.Equal(t, "q1", render.Questions[0].ID)
	assert.Equal(t, q.Sections, render.Sections)
}

func TestQuizService_GetQuizVisibility(t *testing.T) {
	repo := new(mocks.MockQuizRepository)
	q := testutil.SampleQuiz("private")
	q.OwnerID = "bob"
	repo.On("Get", mock.Anything, "private").Return(&q, nil)
	repo.On("Get", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

	svc := NewQuizService(repo)

	_, err := svc.GetQuiz(context.Background(), "bob", "private")
	assert.NoError(t, err)

	_, err = svc.GetQuiz(context.Background(), "alice", "private")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))

	_, err = svc.GetQuiz(context.Background(), "alice", "missing")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestQuizService_ListQuizzes(t *testing.T) {
	repo := new(mocks.MockQuizRepository)
	repo.On("List", mock.Anything, "alice").Return([]models.QuizSummary{{ID: "quiz-1"}}, nil)

	list, err := NewQuizService(repo).ListQuizzes(context.Background(), "alice")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
