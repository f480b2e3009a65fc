package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/quizengine/internal/models"
)

func TestQuiz_CanonicalOrder(t *testing.T) {
	quiz := models.Quiz{
		Sections: []models.Section{
			{ID: "s1", QuestionIDs: []string{"q3", "q1"}},
			{ID: "s2", QuestionIDs: []string{"q2"}},
		},
		Questions: []models.Question{{ID: "q1"}, {ID: "q2"}, {ID: "q3"}, {ID: "q4"}},
	}

	assert.Equal(t, []string{"q3", "q1", "q2", "q4"}, quiz.CanonicalOrder())
}

func TestQuiz_VisibleTo(t *testing.T) {
	shared := models.Quiz{ID: "q"}
	owned := models.Quiz{ID: "q", OwnerID: "alice"}

	assert.True(t, shared.VisibleTo("bob"))
	assert.True(t, owned.VisibleTo("alice"))
	assert.False(t, owned.VisibleTo("bob"))
}

func TestAttemptView_UsesEffectiveOrderAndHidesAnswers(t *testing.T) {
	quiz := &models.Quiz{
		ID:        "quiz",
		Sections:  []models.Section{{ID: "s1", QuestionIDs: []string{"q1", "q2"}}},
		Questions: []models.Question{{ID: "q1", Answer: "A"}, {ID: "q2", Answer: "B"}},
	}
	attempt := &models.Attempt{
		IsRandomized: true,
		RandomizedOrder: &models.RandomizedOrder{
			Order:    []string{"q2", "q1"},
			Sections: []models.Section{{ID: "s1", QuestionIDs: []string{"q2", "q1"}}},
		},
	}

	view := models.NewAttemptView(attempt, quiz)

	assert.Equal(t, "q2", view.Quiz.Questions[0].ID)
	assert.Equal(t, "q1", view.Quiz.Questions[1].ID)
	assert.Equal(t, []string{"q2", "q1"}, view.Quiz.Sections[0].QuestionIDs)
}

func TestAttemptStatus_Terminal(t *testing.T) {
	assert.False(t, models.StatusInProgress.Terminal())
	assert.True(t, models.StatusCompleted.Terminal())
	assert.True(t, models.StatusAbandoned.Terminal())
}

func TestQuestionType_AcceptsPrompt(t *testing.T) {
	assert.True(t, models.QuestionMatrix.AcceptsPrompt(models.PromptGrid))
	assert.False(t, models.QuestionMatrix.AcceptsPrompt(models.PromptText))
	assert.False(t, models.QuestionSequence.AcceptsPrompt(models.PromptGrid))
	assert.True(t, models.QuestionSequence.AcceptsPrompt(""))
	assert.True(t, models.QuestionLogicPuzzle.AcceptsPrompt(models.PromptStructured))
	assert.True(t, models.QuestionLogicPuzzle.AcceptsPrompt(models.PromptText))
	assert.False(t, models.QuestionClassification.AcceptsPrompt(models.PromptStructured))
	assert.False(t, models.QuestionAnalogy.AcceptsPrompt(models.PromptKind("audio")))
}
