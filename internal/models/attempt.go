package models

import "time"

type AttemptMode string

const (
	ModePractice AttemptMode = "practice"
	ModeTest     AttemptMode = "test"
)

// Valid reports whether m is practice or test.
func (m AttemptMode) Valid() bool {
	return m == ModePractice || m == ModeTest
}

type AttemptStatus string

const (
	StatusInProgress AttemptStatus = "in_progress"
	StatusCompleted  AttemptStatus = "completed"
	StatusAbandoned  AttemptStatus = "abandoned"
)

// Terminal reports whether no further transition is possible.
func (s AttemptStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusAbandoned
}

// RandomizedOrder is the question order frozen on an attempt at start time.
type RandomizedOrder struct {
	Order    []string  `json:"order"`
	Sections []Section `json:"sections"`
}

type QuestionResult struct {
	Correct       bool    `json:"correct"`
	UserAnswer    *string `json:"user_answer"`
	CorrectAnswer string  `json:"correct_answer"`
}

type Attempt struct {
	ID                   string                    `json:"id"`
	QuizID               string                    `json:"quiz_id"`
	UserID               string                    `json:"user_id"`
	Mode                 AttemptMode               `json:"mode"`
	Status               AttemptStatus             `json:"status"`
	IsRandomized         bool                      `json:"is_randomized"`
	RandomizedOrder      *RandomizedOrder          `json:"randomized_order,omitempty"`
	Answers              map[string]string         `json:"answers"`
	CurrentQuestionIndex int                       `json:"current_question_index"`
	StartedAt            time.Time                 `json:"started_at"`
	LastSavedAt          *time.Time                `json:"last_saved_at"`
	CompletedAt          *time.Time                `json:"completed_at"`
	Score                float64                   `json:"score"`
	MaxScore             float64                   `json:"max_score"`
	Percentage           float64                   `json:"percentage"`
	TimeSpentSeconds     int64                     `json:"time_spent_seconds"`
	Results              map[string]QuestionResult `json:"results,omitempty"`

	// QuizSnapshot is the quiz as it was at start. Answers are checked and
	// scored against it, so later edits to the quiz do not reach the attempt.
	QuizSnapshot *Quiz `json:"-"`
}

// EffectiveOrder is the question order the attempt is taken in.
func (a *Attempt) EffectiveOrder(quiz *Quiz) []string {
	if a.IsRandomized && a.RandomizedOrder != nil {
		return a.RandomizedOrder.Order
	}
	return quiz.CanonicalOrder()
}

// EffectiveSections are the sections with their question lists in attempt order.
func (a *Attempt) EffectiveSections(quiz *Quiz) []Section {
	if a.IsRandomized && a.RandomizedOrder != nil {
		return a.RandomizedOrder.Sections
	}
	return quiz.Sections
}

// AttemptFilter narrows attempt history listings.
type AttemptFilter struct {
	UserID string
	QuizID string
	Status AttemptStatus
	Limit  int
	Offset int
}
