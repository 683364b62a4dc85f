package usage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles plan_usage persistence.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Consume atomically checks the monthly quota and deducts one generation.
// It resets the counter to DefaultPlans when last_reset_month is behind the
// current month. Returns ErrQuotaExceeded when 0 rows are updated (quota
// exhausted or client absent).
func (s *Store) Consume(ctx context.Context, clientKey string) error {
	now := time.Now().Format("2006-01")

	tag, err := s.db.Exec(ctx, `
		UPDATE plan_usage SET
			plans_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE plans_remaining - 1 END,
			last_reset_month = $1
		WHERE client_key = $3 AND (last_reset_month < $1 OR plans_remaining > 0)
	`, now, DefaultPlans, clientKey)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrQuotaExceeded
	}
	return nil
}

// EnsureClient inserts a new plan_usage row with the default allowance.
// If the row already exists the insert is silently skipped.
func (s *Store) EnsureClient(ctx context.Context, clientKey string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO plan_usage (client_key, plans_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (client_key) DO NOTHING
	`, clientKey, DefaultPlans, time.Now().Format("2006-01"))
	return err
}
