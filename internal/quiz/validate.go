package quiz

import (
	"fmt"

	"github.com/vytor/quizengine/internal/models"
)

// Validate checks the structural invariants the attempt engine relies on:
// the declared total matches the question list, question ids are unique,
// types belong to the known set and carry a matching prompt shape, and every
// section references known questions with no question shared between sections.
func Validate(q *models.Quiz) error {
	if q.ID == "" {
		return fmt.Errorf("quiz id is empty")
	}
	if len(q.Questions) != q.TotalQuestions {
		return fmt.Errorf("quiz %s declares %d questions but has %d", q.ID, q.TotalQuestions, len(q.Questions))
	}

	known := make(map[string]bool, len(q.Questions))
	for _, question := range q.Questions {
		if question.ID == "" {
			return fmt.Errorf("quiz %s has a question without id", q.ID)
		}
		if known[question.ID] {
			return fmt.Errorf("quiz %s has duplicate question id %q", q.ID, question.ID)
		}
		if !question.Type.Valid() {
			return fmt.Errorf("question %q has unknown type %q", question.ID, question.Type)
		}
		if !question.Type.AcceptsPrompt(question.Prompt.Kind) {
			return fmt.Errorf("question %q of type %s cannot take a %s prompt", question.ID, question.Type, question.Prompt.Kind)
		}
		if question.Answer == "" {
			return fmt.Errorf("question %q has no canonical answer", question.ID)
		}
		known[question.ID] = true
	}

	owner := make(map[string]string, len(q.Questions))
	for _, s := range q.Sections {
		for _, id := range s.QuestionIDs {
			if !known[id] {
				return fmt.Errorf("section %q references unknown question %q", s.ID, id)
			}
			if prev, ok := owner[id]; ok {
				return fmt.Errorf("question %q appears in sections %q and %q", id, prev, s.ID)
			}
			owner[id] = s.ID
		}
	}
	return nil
}
