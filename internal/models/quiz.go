package models

import "time"

// QuestionType is the closed set of question tags a quiz may carry.
type QuestionType string

const (
	QuestionSequence           QuestionType = "sequence"
	QuestionMapping            QuestionType = "mapping"
	QuestionMatrix             QuestionType = "matrix"
	QuestionCustomOperator     QuestionType = "custom_operator"
	QuestionRecurrence         QuestionType = "recurrence"
	QuestionArithmeticWord     QuestionType = "arithmetic_word"
	QuestionQuantifiedLogic    QuestionType = "quantified_logic"
	QuestionPropositionalLogic QuestionType = "propositional_logic"
	QuestionLogicPuzzle        QuestionType = "logic_puzzle"
	QuestionAnalogy            QuestionType = "analogy"
	QuestionClassification     QuestionType = "classification"
	QuestionSymbolEncoding     QuestionType = "symbol_encoding"
)

var questionTypes = map[QuestionType]bool{
	QuestionSequence:           true,
	QuestionMapping:            true,
	QuestionMatrix:             true,
	QuestionCustomOperator:     true,
	QuestionRecurrence:         true,
	QuestionArithmeticWord:     true,
	QuestionQuantifiedLogic:    true,
	QuestionPropositionalLogic: true,
	QuestionLogicPuzzle:        true,
	QuestionAnalogy:            true,
	QuestionClassification:     true,
	QuestionSymbolEncoding:     true,
}

// Valid reports whether t belongs to the known tag set.
func (t QuestionType) Valid() bool {
	return questionTypes[t]
}

// AcceptsPrompt reports whether a prompt of kind k fits the question type.
// Matrix questions take a grid and nothing else takes one; structured
// payloads belong to the logic types. A zero kind counts as text.
func (t QuestionType) AcceptsPrompt(k PromptKind) bool {
	switch k {
	case PromptGrid:
		return t == QuestionMatrix
	case PromptStructured:
		return t == QuestionPropositionalLogic || t == QuestionQuantifiedLogic || t == QuestionLogicPuzzle
	case PromptText, "":
		return t != QuestionMatrix
	default:
		return false
	}
}

type Question struct {
	ID         string            `json:"id"`
	Type       QuestionType      `json:"type"`
	Prompt     Prompt            `json:"prompt"`
	Choices    map[string]string `json:"choices"`
	Answer     string            `json:"answer"`
	Definition string            `json:"definition,omitempty"`
}

type Section struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	QuestionIDs []string `json:"question_ids"`
}

// Scoring is the points policy of a quiz. WrongPoints may be zero or negative.
type Scoring struct {
	CorrectPoints float64 `json:"correct_points"`
	WrongPoints   float64 `json:"wrong_points"`
	MaxScore      float64 `json:"max_score"`
}

// Quiz is an immutable question bank. An empty OwnerID means the quiz is
// shared with every user.
type Quiz struct {
	ID             string     `json:"id"`
	OwnerID        string     `json:"owner_id,omitempty"`
	Title          string     `json:"title"`
	TotalQuestions int        `json:"total_questions"`
	Sections       []Section  `json:"sections"`
	Questions      []Question `json:"questions"`
	Scoring        Scoring    `json:"scoring"`
	CreatedAt      time.Time  `json:"created_at"`
}

// VisibleTo reports whether userID may start attempts against the quiz.
func (q *Quiz) VisibleTo(userID string) bool {
	return q.OwnerID == "" || q.OwnerID == userID
}

// QuestionIndex maps question ids to the questions themselves.
func (q *Quiz) QuestionIndex() map[string]*Question {
	idx := make(map[string]*Question, len(q.Questions))
	for i := range q.Questions {
		idx[q.Questions[i].ID] = &q.Questions[i]
	}
	return idx
}

// CanonicalOrder is the section-by-section question order of an unrandomized attempt.
// Questions that belong to no section follow in bank order.
func (q *Quiz) CanonicalOrder() []string {
	order := make([]string, 0, len(q.Questions))
	seen := make(map[string]bool, len(q.Questions))
	for _, s := range q.Sections {
		for _, id := range s.QuestionIDs {
			if !seen[id] {
				seen[id] = true
				order = append(order, id)
			}
		}
	}
	for _, question := range q.Questions {
		if !seen[question.ID] {
			seen[question.ID] = true
			order = append(order, question.ID)
		}
	}
	return order
}

// QuizSummary is the catalog listing entry.
type QuizSummary struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	TotalQuestions int       `json:"total_questions"`
	SectionCount   int       `json:"section_count"`
	MaxScore       float64   `json:"max_score"`
	CreatedAt      time.Time `json:"created_at"`
}
