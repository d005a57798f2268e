// exposes the postgres-backed kv.Repository used when STORE_BACKEND=postgres
package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/kv"
)

type pgStore struct {
	db       *sqlx.DB
	watchers kv.Watchers
}

// compile-time check that pgStore implements kv.Repository
var _ kv.Repository = (*pgStore)(nil)

func NewStore(db *sqlx.DB) kv.Repository {
	return &pgStore{db: db}
}

func (s *pgStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.GetContext(ctx, &value, `SELECT value FROM kv_entries WHERE key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *pgStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = now()`,
		key, string(value),
	)
	if err != nil {
		return err
	}
	s.watchers.Notify(key)
	return nil
}

func (s *pgStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = $1`, key); err != nil {
		return err
	}
	s.watchers.Notify(key)
	return nil
}

func (s *pgStore) Watch(key string, fn func(key string)) func() {
	return s.watchers.Add(key, fn)
}
