package quiz

import (
	"strings"

	"github.com/vytor/quizengine/internal/models"
)

// Outcome is the scored result of a full answer set.
type Outcome struct {
	PerQuestion map[string]models.QuestionResult
	Score       float64
	Percentage  float64
}

// AnswerMatches is the single correctness rule for every question type:
// case-insensitive equality of choice keys, ignoring surrounding whitespace.
func AnswerMatches(given, canonical string) bool {
	return strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(canonical))
}

// Evaluate grades one question. A nil answer means the question was not answered.
func Evaluate(q *models.Question, answer *string) models.QuestionResult {
	res := models.QuestionResult{CorrectAnswer: q.Answer}
	if answer != nil {
		given := *answer
		res.UserAnswer = &given
		res.Correct = AnswerMatches(given, q.Answer)
	}
	return res
}

// Score grades every question of the quiz against answers. Unanswered
// questions count as wrong. The percentage is 0 when the quiz max score is
// not positive; negative scores yield negative percentages.
func Score(q *models.Quiz, answers map[string]string) Outcome {
	out := Outcome{PerQuestion: make(map[string]models.QuestionResult, len(q.Questions))}

	for i := range q.Questions {
		question := &q.Questions[i]
		var given *string
		if a, ok := answers[question.ID]; ok {
			given = &a
		}
		res := Evaluate(question, given)
		out.PerQuestion[question.ID] = res

		if res.Correct {
			out.Score += q.Scoring.CorrectPoints
		} else {
			out.Score += q.Scoring.WrongPoints
		}
	}

	out.Percentage = Percentage(out.Score, q.Scoring.MaxScore)
	return out
}

func Percentage(score, maxScore float64) float64 {
	if maxScore <= 0 {
		return 0
	}
	return score / maxScore * 100
}
