package quiz_test

import (
	"fmt"

	"github.com/vytor/quizengine/internal/models"
)

// bank builds a quiz with the given section sizes; questions are named
// q1..qN and all have canonical answer "A".
func bank(sizes ...int) *models.Quiz {
	q := &models.Quiz{
		ID:      "bank",
		Title:   "Bank",
		Scoring: models.Scoring{CorrectPoints: 1, WrongPoints: 0},
	}
	n := 0
	for s, size := range sizes {
		section := models.Section{ID: fmt.Sprintf("s%d", s+1), Name: fmt.Sprintf("Section %d", s+1)}
		for i := 0; i < size; i++ {
			n++
			id := fmt.Sprintf("q%d", n)
			section.QuestionIDs = append(section.QuestionIDs, id)
			q.Questions = append(q.Questions, models.Question{
				ID:      id,
				Type:    models.QuestionSequence,
				Prompt:  models.TextPrompt("1, 2, ?"),
				Choices: map[string]string{"A": "3", "B": "4"},
				Answer:  "A",
			})
		}
		q.Sections = append(q.Sections, section)
	}
	q.TotalQuestions = n
	q.Scoring.MaxScore = float64(n)
	return q
}
