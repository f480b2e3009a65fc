package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/quizengine/internal/db"
	"github.com/vytor/quizengine/internal/logger"
	"github.com/vytor/quizengine/internal/models"
	"github.com/vytor/quizengine/internal/repository"
)

type quizRepository struct {
	db *db.DB
}

// NewQuizRepository creates a new QuizRepository implementation
func NewQuizRepository(db *db.DB) repository.QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Get(ctx context.Context, id string) (*models.Quiz, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("getting quiz: id=%s", id)

	query, args, err := r.db.Builder().
		Select("definition_json", "created_at").
		From("quizzes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var definition string
	var createdAt int64
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&definition, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("quiz not found: id=%s", id)
		return nil, repository.ErrNotFound
	}
	if err != nil {
		log.Error("failed to get quiz: %v", err)
		return nil, err
	}

	var q models.Quiz
	if err := json.Unmarshal([]byte(definition), &q); err != nil {
		log.Error("failed to decode quiz %s: %v", id, err)
		return nil, fmt.Errorf("decode quiz %s: %w", id, err)
	}
	q.CreatedAt = fromMillis(createdAt)
	return &q, nil
}

func (r *quizRepository) List(ctx context.Context, ownerID string) ([]models.QuizSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("listing quizzes: owner_id=%s", ownerID)

	owners := squirrel.Or{squirrel.Eq{"owner_id": ""}}
	if ownerID != "" {
		owners = append(owners, squirrel.Eq{"owner_id": ownerID})
	}
	query, args, err := r.db.Builder().
		Select("definition_json", "created_at").
		From("quizzes").
		Where(owners).
		OrderBy("title ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list quizzes: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.QuizSummary
	for rows.Next() {
		var definition string
		var createdAt int64
		if err := rows.Scan(&definition, &createdAt); err != nil {
			log.Error("failed to scan quiz row: %v", err)
			return nil, err
		}
		var q models.Quiz
		if err := json.Unmarshal([]byte(definition), &q); err != nil {
			return nil, fmt.Errorf("decode quiz: %w", err)
		}
		out = append(out, models.QuizSummary{
			ID:             q.ID,
			Title:          q.Title,
			TotalQuestions: q.TotalQuestions,
			SectionCount:   len(q.Sections),
			MaxScore:       q.Scoring.MaxScore,
			CreatedAt:      fromMillis(createdAt),
		})
	}
	log.Debug("found %d quizzes", len(out))
	return out, rows.Err()
}

func (r *quizRepository) Upsert(ctx context.Context, q models.Quiz) error {
	_, err := r.upsert(ctx, q, false)
	return err
}

func (r *quizRepository) UpsertOwned(ctx context.Context, q models.Quiz) error {
	written, err := r.upsert(ctx, q, true)
	if err != nil {
		return err
	}
	if !written {
		logger.FromContext(ctx).WithPrefix("quiz_repo").Warn("refusing to replace quiz %s: owned by another user", q.ID)
		return repository.ErrConflict
	}
	return nil
}

// upsert reports whether a row was written. With sameOwner set, an existing
// row is only replaced when its owner matches the incoming one.
func (r *quizRepository) upsert(ctx context.Context, q models.Quiz, sameOwner bool) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("upserting quiz: id=%s, questions=%d, same_owner=%t", q.ID, len(q.Questions), sameOwner)

	definition, err := json.Marshal(q)
	if err != nil {
		return false, fmt.Errorf("encode quiz %s: %w", q.ID, err)
	}
	conflict := `ON CONFLICT (id) DO UPDATE SET
    owner_id = excluded.owner_id,
    title = excluded.title,
    total_questions = excluded.total_questions,
    definition_json = excluded.definition_json`
	if sameOwner {
		conflict += "\nWHERE quizzes.owner_id = excluded.owner_id"
	}
	query, args, err := r.db.Builder().
		Insert("quizzes").
		Columns("id", "owner_id", "title", "total_questions", "definition_json", "created_at").
		Values(q.ID, q.OwnerID, q.Title, q.TotalQuestions, string(definition), toMillis(q.CreatedAt)).
		Suffix(conflict).
		ToSql()
	if err != nil {
		return false, err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to upsert quiz: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
