package quiz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/quizengine/internal/quiz"
)

func TestScore_TwoOfThree(t *testing.T) {
	q := bank(3)

	out := quiz.Score(q, map[string]string{"q1": "A", "q2": "a", "q3": "B"})

	assert.Equal(t, 2.0, out.Score)
	assert.InDelta(t, 66.7, out.Percentage, 0.05)
	assert.True(t, out.PerQuestion["q2"].Correct, "comparison is case-insensitive")
	assert.False(t, out.PerQuestion["q3"].Correct)
	require.NotNil(t, out.PerQuestion["q3"].UserAnswer)
	assert.Equal(t, "B", *out.PerQuestion["q3"].UserAnswer)
	assert.Equal(t, "A", out.PerQuestion["q3"].CorrectAnswer)
}

func TestScore_UnansweredCountsAsWrong(t *testing.T) {
	q := bank(3)

	out := quiz.Score(q, map[string]string{"q1": "A"})

	assert.Equal(t, 1.0, out.Score)
	assert.Len(t, out.PerQuestion, 3)
	assert.Nil(t, out.PerQuestion["q2"].UserAnswer)
	assert.False(t, out.PerQuestion["q2"].Correct)
}

func TestScore_WrongPointsPenalty(t *testing.T) {
	q := bank(4)
	q.Scoring.CorrectPoints = 4
	q.Scoring.WrongPoints = -1
	q.Scoring.MaxScore = 16

	out := quiz.Score(q, map[string]string{"q1": "A", "q2": "C"})

	assert.Equal(t, 4.0+-1-1-1, out.Score)
	assert.InDelta(t, 6.25, out.Percentage, 1e-9)
}

func TestScore_NegativeScoreKeepsNegativePercentage(t *testing.T) {
	q := bank(2)
	q.Scoring.WrongPoints = -2
	q.Scoring.MaxScore = 2

	out := quiz.Score(q, nil)

	assert.Equal(t, -4.0, out.Score)
	assert.Equal(t, -200.0, out.Percentage)
}

func TestScore_ZeroMaxScore(t *testing.T) {
	q := bank(2)
	q.Scoring.MaxScore = 0

	out := quiz.Score(q, map[string]string{"q1": "A", "q2": "A"})

	assert.Equal(t, 2.0, out.Score)
	assert.Equal(t, 0.0, out.Percentage)
}

func TestScore_DoesNotMutateAnswers(t *testing.T) {
	q := bank(2)
	answers := map[string]string{"q1": "b"}

	quiz.Score(q, answers)

	assert.Equal(t, map[string]string{"q1": "b"}, answers)
}

func TestAnswerMatches(t *testing.T) {
	assert.True(t, quiz.AnswerMatches("c", "C"))
	assert.True(t, quiz.AnswerMatches(" c\t", "C"))
	assert.True(t, quiz.AnswerMatches("B", " b "))
	assert.False(t, quiz.AnswerMatches("", "C"))
	assert.False(t, quiz.AnswerMatches("C D", "C"))
}
