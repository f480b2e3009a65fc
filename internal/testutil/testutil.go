package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vytor/quizengine/internal/db"
	"github.com/vytor/quizengine/internal/models"
)

// NewTestDB opens an in-memory SQLite database with all migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	database, err := db.Open(db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	return database
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// SampleQuiz returns a shared quiz with two sections: q1, q2 in "verbal" and
// q3 in "numeric". Canonical answers are A, B and C; one point per correct
// answer, nothing for a wrong one, max score 3.
func SampleQuiz(id string) models.Quiz {
	return models.Quiz{
		ID:             id,
		Title:          fmt.Sprintf("Reasoning %s", id),
		TotalQuestions: 3,
		Sections: []models.Section{
			{ID: "verbal", Name: "Verbal", QuestionIDs: []string{"q1", "q2"}},
			{ID: "numeric", Name: "Numeric", QuestionIDs: []string{"q3"}},
		},
		Questions: []models.Question{
			{
				ID:      "q1",
				Type:    models.QuestionAnalogy,
				Prompt:  models.TextPrompt("Bird is to nest as bee is to ?"),
				Choices: map[string]string{"A": "hive", "B": "flower", "C": "honey"},
				Answer:  "A",
			},
			{
				ID:   "q2",
				Type: models.QuestionPropositionalLogic,
				Prompt: models.Prompt{Kind: models.PromptStructured, Structured: &models.StructuredPrompt{
					Premises:   []string{"If it rains, the grass is wet", "The grass is not wet"},
					Conclusion: "It did not rain",
				}},
				Choices: map[string]string{"A": "Invalid", "B": "Valid"},
				Answer:  "B",
			},
			{
				ID:      "q3",
				Type:    models.QuestionMatrix,
				Prompt:  models.GridPrompt([][]string{{"1", "2"}, {"3", ""}}),
				Choices: map[string]string{"A": "5", "B": "6", "C": "4"},
				Answer:  "C",
			},
		},
		Scoring: models.Scoring{CorrectPoints: 1, WrongPoints: 0, MaxScore: 3},
	}
}
