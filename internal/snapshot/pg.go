package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restaurant-ops/internal/restaurant"
)

// PGStore keeps the snapshot as a single JSONB row, replaced on every
// save. One restaurant per database keeps the schema trivial.
type PGStore struct {
	pool *pgxpool.Pool
}

const createSnapshotTable = `
CREATE TABLE IF NOT EXISTS restaurant_snapshot (
    id         int PRIMARY KEY DEFAULT 1 CHECK (id = 1),
    state      jsonb NOT NULL,
    saved_at   timestamptz NOT NULL DEFAULT now()
)`

func NewPGStore(ctx context.Context, host string, port int, user, pass, name string) (*PGStore, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s", user, pass, host, port, name)
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, createSnapshotTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}
	return &PGStore{pool: pool}, nil
}

func (p *PGStore) Load(ctx context.Context) (*restaurant.State, error) {
	var data []byte
	err := p.pool.QueryRow(ctx,
		`SELECT state FROM restaurant_snapshot WHERE id = 1`).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	var s restaurant.State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}

func (p *PGStore) Save(ctx context.Context, s *restaurant.State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = p.pool.Exec(ctx, `
		INSERT INTO restaurant_snapshot (id, state, saved_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET state = $1, saved_at = now()`, data)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (p *PGStore) Close() {
	if p != nil && p.pool != nil {
		p.pool.Close()
	}
}
