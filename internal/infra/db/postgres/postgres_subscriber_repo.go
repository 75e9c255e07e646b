package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-phrase-bot/internal/domain/model"
	"telegram-phrase-bot/internal/domain/ports/repository"
)

var _ repository.SubscriberRepository = (*PostgresSubscriberRepo)(nil)

type PostgresSubscriberRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresSubscriberRepo(pool *pgxpool.Pool) *PostgresSubscriberRepo {
	return &PostgresSubscriberRepo{pool: pool}
}

// Add is idempotent. ON CONFLICT swallows repeats; the unique-violation check
// stays as a belt for schemas migrated without the constraint name.
func (r *PostgresSubscriberRepo) Add(ctx context.Context, tx repository.Tx, tgID int64) error {
	const q = `
INSERT INTO subscribers (telegram_id, subscribed_at)
VALUES ($1, $2)
ON CONFLICT (telegram_id) DO NOTHING;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	if _, err := ex.Exec(ctx, q, tgID, time.Now()); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil
		}
		return fmt.Errorf("insert subscriber: %w", err)
	}
	return nil
}

func (r *PostgresSubscriberRepo) Remove(ctx context.Context, tx repository.Tx, tgID int64) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	_, err = ex.Exec(ctx, `DELETE FROM subscribers WHERE telegram_id = $1;`, tgID)
	return err
}

func (r *PostgresSubscriberRepo) List(ctx context.Context, tx repository.Tx) ([]*model.Subscriber, error) {
	const q = `
SELECT telegram_id, subscribed_at
  FROM subscribers
 ORDER BY telegram_id;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	var out []*model.Subscriber
	for rows.Next() {
		var s model.Subscriber
		if err := rows.Scan(&s.TelegramID, &s.SubscribedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *PostgresSubscriberRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := ex.QueryRow(ctx, `SELECT COUNT(*) FROM subscribers;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count subscribers: %w", err)
	}
	return n, nil
}
