package models

import "time"

// RenderQuestion is a question as shown to the person taking the quiz; the
// canonical answer is withheld.
type RenderQuestion struct {
	ID         string            `json:"id"`
	Type       QuestionType      `json:"type"`
	Prompt     Prompt            `json:"prompt"`
	Choices    map[string]string `json:"choices"`
	Definition string            `json:"definition,omitempty"`
}

type QuizRender struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Sections  []Section        `json:"sections"`
	Questions []RenderQuestion `json:"questions"`
}

// AttemptView is an attempt together with the quiz data needed to render it.
type AttemptView struct {
	*Attempt
	Quiz *QuizRender `json:"quiz,omitempty"`
}

// NewQuizRender lists the quiz questions in order, skipping unknown ids.
func NewQuizRender(quiz *Quiz, sections []Section, order []string) *QuizRender {
	idx := quiz.QuestionIndex()
	render := &QuizRender{
		ID:        quiz.ID,
		Title:     quiz.Title,
		Sections:  sections,
		Questions: make([]RenderQuestion, 0, len(order)),
	}
	for _, id := range order {
		q, ok := idx[id]
		if !ok {
			continue
		}
		render.Questions = append(render.Questions, RenderQuestion{
			ID:         q.ID,
			Type:       q.Type,
			Prompt:     q.Prompt,
			Choices:    q.Choices,
			Definition: q.Definition,
		})
	}
	return render
}

// NewAttemptView renders the quiz in the attempt's effective order.
func NewAttemptView(a *Attempt, quiz *Quiz) *AttemptView {
	return &AttemptView{
		Attempt: a,
		Quiz:    NewQuizRender(quiz, a.EffectiveSections(quiz), a.EffectiveOrder(quiz)),
	}
}

// AnswerFeedback is returned by SubmitAnswer. Correct and CorrectAnswer are
// only set in practice mode.
type AnswerFeedback struct {
	Accepted      bool   `json:"accepted"`
	Correct       *bool  `json:"correct,omitempty"`
	CorrectAnswer string `json:"correct_answer,omitempty"`
}

// AttemptResults is the results-only view of a completed attempt.
type AttemptResults struct {
	AttemptID        string                    `json:"attempt_id"`
	QuizID           string                    `json:"quiz_id"`
	Mode             AttemptMode               `json:"mode"`
	Score            float64                   `json:"score"`
	MaxScore         float64                   `json:"max_score"`
	Percentage       float64                   `json:"percentage"`
	TimeSpentSeconds int64                     `json:"time_spent_seconds"`
	CompletedAt      *time.Time                `json:"completed_at"`
	Results          map[string]QuestionResult `json:"results"`
}

func NewAttemptResults(a *Attempt) *AttemptResults {
	return &AttemptResults{
		AttemptID:        a.ID,
		QuizID:           a.QuizID,
		Mode:             a.Mode,
		Score:            a.Score,
		MaxScore:         a.MaxScore,
		Percentage:       a.Percentage,
		TimeSpentSeconds: a.TimeSpentSeconds,
		CompletedAt:      a.CompletedAt,
		Results:          a.Results,
	}
}
