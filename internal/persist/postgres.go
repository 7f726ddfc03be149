package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PGStore keeps values in the kv_store table of a PostgreSQL database.
type PGStore struct {
	db *DB
}

func NewPGStore(db *DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value, sum string
	err := s.db.Pool.QueryRow(ctx,
		`SELECT value, digest FROM kv_store WHERE key = $1`, key,
	).Scan(&value, &sum)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pg get %s: %w", key, err)
	}
	return verify(key, []byte(value), sum)
}

func (s *PGStore) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.Pool.Exec(ctx,
		`INSERT INTO kv_store (key, value, digest, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (key) DO UPDATE SET
		   value = EXCLUDED.value,
		   digest = EXCLUDED.digest,
		   updated_at = EXCLUDED.updated_at`,
		key, string(value), digest(value),
	)
	if err != nil {
		return fmt.Errorf("pg put %s: %w", key, err)
	}
	return nil
}

func (s *PGStore) Close() error {
	s.db.Close()
	return nil
}
