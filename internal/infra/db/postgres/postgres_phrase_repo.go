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

var _ repository.PhraseRepository = (*PostgresPhraseRepo)(nil)

type PostgresPhraseRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresPhraseRepo(pool *pgxpool.Pool) *PostgresPhraseRepo {
	return &PostgresPhraseRepo{pool: pool}
}

func (r *PostgresPhraseRepo) Add(ctx context.Context, tx repository.Tx, p *model.Phrase) (int64, error) {
	const q = `
INSERT INTO phrases (text, approved, created_at)
VALUES ($1, $2, $3)
RETURNING id;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return 0, err
	}
	var id int64
	if err := ex.QueryRow(ctx, q, p.Text, p.Approved, p.CreatedAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert phrase: %w", err)
	}
	p.ID = id
	return id, nil
}

// RandomApproved samples one approved row uniformly. ORDER BY random() is fine
// at this table size; every row has equal probability on every call.
func (r *PostgresPhraseRepo) RandomApproved(ctx context.Context, tx repository.Tx) (*model.Phrase, error) {
	const q = `
SELECT id, text, approved, created_at
  FROM phrases
 WHERE approved
 ORDER BY random()
 LIMIT 1;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	var p model.Phrase
	if err := ex.QueryRow(ctx, q).Scan(&p.ID, &p.Text, &p.Approved, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNoApprovedPhrases
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostgresPhraseRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Phrase, error) {
	const q = `
SELECT id, text, approved, created_at
  FROM phrases
 ORDER BY id
OFFSET $1 LIMIT $2;
`
	if limit <= 0 {
		limit = 50
	}
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, q, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list phrases: %w", err)
	}
	defer rows.Close()

	var out []*model.Phrase
	for rows.Next() {
		var p model.Phrase
		if err := rows.Scan(&p.ID, &p.Text, &p.Approved, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (r *PostgresPhraseRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := ex.QueryRow(ctx, `SELECT COUNT(*) FROM phrases;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count phrases: %w", err)
	}
	return n, nil
}
