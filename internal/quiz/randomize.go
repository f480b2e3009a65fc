package quiz

import (
	"math/rand/v2"

	"github.com/vytor/quizengine/internal/models"
)

// Shuffler permutes n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// DefaultShuffler uses the process-wide random source and is safe for
// concurrent use.
var DefaultShuffler Shuffler = globalShuffler{}

// Randomize shuffles questions within each section, keeping section
// membership and section order. Questions outside every section are shuffled
// among themselves and placed last. Ids a section references but the quiz
// does not contain are dropped. The quiz is not modified.
func Randomize(q *models.Quiz, s Shuffler) models.RandomizedOrder {
	if s == nil {
		s = DefaultShuffler
	}
	idx := q.QuestionIndex()

	out := models.RandomizedOrder{
		Order:    make([]string, 0, len(q.Questions)),
		Sections: make([]models.Section, 0, len(q.Sections)),
	}
	placed := make(map[string]bool, len(q.Questions))

	for _, section := range q.Sections {
		ids := make([]string, 0, len(section.QuestionIDs))
		for _, id := range section.QuestionIDs {
			if _, ok := idx[id]; ok && !placed[id] {
				placed[id] = true
				ids = append(ids, id)
			}
		}
		s.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

		out.Sections = append(out.Sections, models.Section{
			ID:          section.ID,
			Name:        section.Name,
			QuestionIDs: ids,
		})
		out.Order = append(out.Order, ids...)
	}

	var rest []string
	for _, question := range q.Questions {
		if !placed[question.ID] {
			placed[question.ID] = true
			rest = append(rest, question.ID)
		}
	}
	s.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })
	out.Order = append(out.Order, rest...)

	return out
}
