package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-phrase-bot/internal/domain"
	"telegram-phrase-bot/internal/domain/model"
	"telegram-phrase-bot/internal/domain/ports/repository"
)

var _ repository.SuggestionRepository = (*PostgresSuggestionRepo)(nil)

type PostgresSuggestionRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresSuggestionRepo(pool *pgxpool.Pool) *PostgresSuggestionRepo {
	return &PostgresSuggestionRepo{pool: pool}
}

func (r *PostgresSuggestionRepo) Add(ctx context.Context, tx repository.Tx, s *model.Suggestion) (int64, error) {
	const q = `
INSERT INTO suggestions (user_id, text, created_at)
VALUES ($1, $2, $3)
RETURNING id;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return 0, err
	}
	var id int64
	if err := ex.QueryRow(ctx, q, s.UserID, s.Text, s.CreatedAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert suggestion: %w", err)
	}
	s.ID = id
	return id, nil
}

// ListPending returns the whole queue in insertion (id) order; the moderation
// batch is rendered from this snapshot.
func (r *PostgresSuggestionRepo) ListPending(ctx context.Context, tx repository.Tx) ([]*model.Suggestion, error) {
	const q = `
SELECT id, user_id, text, created_at
  FROM suggestions
 ORDER BY id;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list suggestions: %w", err)
	}
	defer rows.Close()

	var out []*model.Suggestion
	for rows.Next() {
		var s model.Suggestion
		if err := rows.Scan(&s.ID, &s.UserID, &s.Text, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *PostgresSuggestionRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.Suggestion, error) {
	const q = `
SELECT id, user_id, text, created_at
  FROM suggestions
 WHERE id = $1;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	var s model.Suggestion
	if err := ex.QueryRow(ctx, q, id).Scan(&s.ID, &s.UserID, &s.Text, &s.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *PostgresSuggestionRepo) Delete(ctx context.Context, tx repository.Tx, id int64) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	_, err = ex.Exec(ctx, `DELETE FROM suggestions WHERE id = $1;`, id)
	return err
}

func (r *PostgresSuggestionRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := ex.QueryRow(ctx, `SELECT COUNT(*) FROM suggestions;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count suggestions: %w", err)
	}
	return n, nil
}
