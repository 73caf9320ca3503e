package state

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Load(ctx context.Context, visitorID, slot string, dest interface{}) error {
	const q = `
SELECT value
FROM state_slots
WHERE visitor_id = $1 AND slot = $2
`
	var raw []byte
	err := r.pool.QueryRow(ctx, q, visitorID, slot).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		r.logger.Printf("state repo: load visitor=%s slot=%s error=%v", visitorID, slot, err)
		return err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// Corrupt payloads are treated as absent, never surfaced upward.
		r.logger.Printf("state repo: decode visitor=%s slot=%s error=%v", visitorID, slot, err)
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Save(ctx context.Context, visitorID, slot string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO state_slots (visitor_id, slot, value, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (visitor_id, slot) DO UPDATE SET
    value = EXCLUDED.value,
    updated_at = now()
`
	if _, err := r.pool.Exec(ctx, q, visitorID, slot, raw); err != nil {
		r.logger.Printf("state repo: save visitor=%s slot=%s error=%v", visitorID, slot, err)
		return err
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, visitorID, slot string) error {
	const q = `
DELETE FROM state_slots
WHERE visitor_id = $1 AND slot = $2
`
	if _, err := r.pool.Exec(ctx, q, visitorID, slot); err != nil {
		r.logger.Printf("state repo: delete visitor=%s slot=%s error=%v", visitorID, slot, err)
		return err
	}
	return nil
}
