package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/quizengine/internal/db"
	"github.com/vytor/quizengine/internal/logger"
	"github.com/vytor/quizengine/internal/models"
	"github.com/vytor/quizengine/internal/repository"
)

var attemptColumns = []string{
	"id", "quiz_id", "user_id", "mode", "status", "is_randomized", "randomized_order_json",
	"current_question_index", "started_at", "last_saved_at", "completed_at",
	"score", "max_score", "percentage", "time_spent_seconds", "results_json",
	"quiz_snapshot_json",
}

type attemptRepository struct {
	db *db.DB
}

// NewAttemptRepository creates a new AttemptRepository implementation
func NewAttemptRepository(db *db.DB) repository.AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Get(ctx context.Context, id string) (*models.Attempt, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("getting attempt: id=%s", id)

	a, err := r.load(ctx, r.db, squirrel.Eq{"id": id}, false)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Error("failed to get attempt: %v", err)
	}
	return a, err
}

func (r *attemptRepository) GetActive(ctx context.Context, userID, quizID string) (*models.Attempt, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("getting active attempt: user_id=%s, quiz_id=%s", userID, quizID)

	a, err := r.load(ctx, r.db, squirrel.Eq{
		"user_id": userID,
		"quiz_id": quizID,
		"status":  string(models.StatusInProgress),
	}, false)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Error("failed to get active attempt: %v", err)
	}
	return a, err
}

func (r *attemptRepository) List(ctx context.Context, filter models.AttemptFilter) ([]models.Attempt, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("listing attempts: user_id=%s, quiz_id=%s, status=%s", filter.UserID, filter.QuizID, filter.Status)

	query := r.db.Builder().Select(attemptColumns...).From("attempts")
	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.QuizID != "" {
		query = query.Where(squirrel.Eq{"quiz_id": filter.QuizID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": string(filter.Status)})
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.OrderBy("started_at DESC", "id DESC").Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			log.Error("failed to scan attempt row: %v", err)
			return nil, err
		}
		attempts = append(attempts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range attempts {
		if attempts[i].Answers, err = r.loadAnswers(ctx, r.db, attempts[i].ID); err != nil {
			return nil, err
		}
	}
	log.Debug("found %d attempts", len(attempts))
	return attempts, nil
}

func (r *attemptRepository) Start(ctx context.Context, a models.Attempt) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("starting attempt: id=%s, user_id=%s, quiz_id=%s", a.ID, a.UserID, a.QuizID)

	var abandoned []string
	err := r.db.Tx(ctx, func(tx *sql.Tx) error {
		abandoned = nil
		active := squirrel.Eq{
			"user_id": a.UserID,
			"quiz_id": a.QuizID,
			"status":  string(models.StatusInProgress),
		}

		sel := r.db.Builder().Select("id").From("attempts").Where(active)
		if lock := r.db.LockClause(); lock != "" {
			sel = sel.Suffix(lock)
		}
		sqlStr, args, err := sel.ToSql()
		if err != nil {
			return err
		}
		rows, err := tx.QueryContext(ctx, sqlStr, args...)
		if err != nil {
			return err
		}
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return err
			}
			abandoned = append(abandoned, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		if len(abandoned) > 0 {
			sqlStr, args, err = r.db.Builder().
				Update("attempts").
				Set("status", string(models.StatusAbandoned)).
				Where(squirrel.Eq{"id": abandoned}).
				ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
				return fmt.Errorf("abandon attempts: %w", err)
			}
		}

		return r.insert(ctx, tx, a)
	})
	if err != nil {
		log.Error("failed to start attempt: %v", err)
		return nil, err
	}
	return abandoned, nil
}

func (r *attemptRepository) Update(ctx context.Context, id string, fn func(*models.Attempt) error) (*models.Attempt, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("updating attempt: id=%s", id)

	var updated *models.Attempt
	err := r.db.Tx(ctx, func(tx *sql.Tx) error {
		a, err := r.load(ctx, tx, squirrel.Eq{"id": id}, true)
		if err != nil {
			return err
		}
		before := make(map[string]string, len(a.Answers))
		for k, v := range a.Answers {
			before[k] = v
		}

		if err := fn(a); err != nil {
			return err
		}

		if err := r.save(ctx, tx, a); err != nil {
			return err
		}
		for qid, answer := range a.Answers {
			if prev, ok := before[qid]; ok && prev == answer {
				continue
			}
			if err := r.upsertAnswer(ctx, tx, a.ID, qid, answer); err != nil {
				return err
			}
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *attemptRepository) insert(ctx context.Context, q queryer, a models.Attempt) error {
	order, err := encodeOrder(a.RandomizedOrder)
	if err != nil {
		return err
	}
	results, err := encodeResults(a.Results)
	if err != nil {
		return err
	}
	snapshot, err := encodeSnapshot(a.QuizSnapshot)
	if err != nil {
		return err
	}
	sqlStr, args, err := r.db.Builder().
		Insert("attempts").
		Columns(attemptColumns...).
		Values(
			a.ID, a.QuizID, a.UserID, string(a.Mode), string(a.Status), a.IsRandomized, order,
			a.CurrentQuestionIndex, toMillis(a.StartedAt), toNullMillis(a.LastSavedAt), toNullMillis(a.CompletedAt),
			a.Score, a.MaxScore, a.Percentage, a.TimeSpentSeconds, results,
			snapshot,
		).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := q.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	for qid, answer := range a.Answers {
		if err := r.upsertAnswer(ctx, q, a.ID, qid, answer); err != nil {
			return err
		}
	}
	return nil
}

func (r *attemptRepository) save(ctx context.Context, q queryer, a *models.Attempt) error {
	results, err := encodeResults(a.Results)
	if err != nil {
		return err
	}
	sqlStr, args, err := r.db.Builder().
		Update("attempts").
		SetMap(map[string]any{
			"status":                 string(a.Status),
			"current_question_index": a.CurrentQuestionIndex,
			"last_saved_at":          toNullMillis(a.LastSavedAt),
			"completed_at":           toNullMillis(a.CompletedAt),
			"score":                  a.Score,
			"percentage":             a.Percentage,
			"time_spent_seconds":     a.TimeSpentSeconds,
			"results_json":           results,
		}).
		Where(squirrel.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := q.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("update attempt: %w", err)
	}
	return nil
}

func (r *attemptRepository) upsertAnswer(ctx context.Context, q queryer, attemptID, questionID, answer string) error {
	sqlStr, args, err := r.db.Builder().
		Insert("attempt_answers").
		Columns("attempt_id", "question_id", "answer", "answered_at").
		Values(attemptID, questionID, answer, toMillis(time.Now())).
		Suffix("ON CONFLICT (attempt_id, question_id) DO UPDATE SET answer = excluded.answer, answered_at = excluded.answered_at").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := q.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("upsert answer %s: %w", questionID, err)
	}
	return nil
}

func (r *attemptRepository) load(ctx context.Context, q queryer, where squirrel.Eq, lock bool) (*models.Attempt, error) {
	sel := r.db.Builder().Select(attemptColumns...).From("attempts").Where(where).
		OrderBy("started_at DESC").Limit(1)
	if lock {
		if clause := r.db.LockClause(); clause != "" {
			sel = sel.Suffix(clause)
		}
	}
	sqlStr, args, err := sel.ToSql()
	if err != nil {
		return nil, err
	}

	a, err := scanAttempt(q.QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if a.Answers, err = r.loadAnswers(ctx, q, a.ID); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *attemptRepository) loadAnswers(ctx context.Context, q queryer, attemptID string) (map[string]string, error) {
	sqlStr, args, err := r.db.Builder().
		Select("question_id", "answer").
		From("attempt_answers").
		Where(squirrel.Eq{"attempt_id": attemptID}).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := map[string]string{}
	for rows.Next() {
		var qid, answer string
		if err := rows.Scan(&qid, &answer); err != nil {
			return nil, err
		}
		answers[qid] = answer
	}
	return answers, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttempt(row rowScanner) (*models.Attempt, error) {
	var (
		a                    models.Attempt
		mode, status         string
		order, results       string
		snapshot             string
		startedAt            int64
		lastSaved, completed sql.NullInt64
	)
	err := row.Scan(
		&a.ID, &a.QuizID, &a.UserID, &mode, &status, &a.IsRandomized, &order,
		&a.CurrentQuestionIndex, &startedAt, &lastSaved, &completed,
		&a.Score, &a.MaxScore, &a.Percentage, &a.TimeSpentSeconds, &results,
		&snapshot,
	)
	if err != nil {
		return nil, err
	}
	a.Mode = models.AttemptMode(mode)
	a.Status = models.AttemptStatus(status)
	a.StartedAt = fromMillis(startedAt)
	a.LastSavedAt = fromNullMillis(lastSaved)
	a.CompletedAt = fromNullMillis(completed)

	if order != "" {
		a.RandomizedOrder = &models.RandomizedOrder{}
		if err := json.Unmarshal([]byte(order), a.RandomizedOrder); err != nil {
			return nil, fmt.Errorf("decode randomized order of %s: %w", a.ID, err)
		}
	}
	if results != "" {
		if err := json.Unmarshal([]byte(results), &a.Results); err != nil {
			return nil, fmt.Errorf("decode results of %s: %w", a.ID, err)
		}
	}
	if snapshot != "" {
		a.QuizSnapshot = &models.Quiz{}
		if err := json.Unmarshal([]byte(snapshot), a.QuizSnapshot); err != nil {
			return nil, fmt.Errorf("decode quiz snapshot of %s: %w", a.ID, err)
		}
	}
	return &a, nil
}

func encodeSnapshot(q *models.Quiz) (string, error) {
	if q == nil {
		return "", nil
	}
	b, err := json.Marshal(q)
	if err != nil {
		return "", fmt.Errorf("encode quiz snapshot: %w", err)
	}
	return string(b), nil
}

func encodeOrder(o *models.RandomizedOrder) (string, error) {
	if o == nil {
		return "", nil
	}
	b, err := json.Marshal(o)
	if err != nil {
		return "", fmt.Errorf("encode randomized order: %w", err)
	}
	return string(b), nil
}

func encodeResults(res map[string]models.QuestionResult) (string, error) {
	if len(res) == 0 {
		return "", nil
	}
	b, err := json.Marshal(res)
	if err != nil {
		return "", fmt.Errorf("encode results: %w", err)
	}
	return string(b), nil
}
