package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bakulab/scrumbot/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps documents as rows in a single JSONB table, one row per
// document name.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) store.Store {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Load(ctx context.Context, name string, out any) error {
	row := s.pool.QueryRow(ctx,
		`SELECT body FROM documents WHERE name = $1`, name)
	var body []byte
	if err := row.Scan(&body); err != nil {
		if err == pgx.ErrNoRows {
			return store.ErrNotFound
		}
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode document %s: %w", name, err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, name string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", name, err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO documents (name, body, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = NOW()`,
		name, body)
	return err
}
