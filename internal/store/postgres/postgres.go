// Package postgres is an optional durable KVStore adapter backed by
// Postgres via pgx. It is not imported by pkg/sdk — callers wire it in
// explicitly when they want durability, keeping the scoring core free of
// a database dependency on its hot path (spec §1, §6).
//
// Grounded on the teacher's internal/db/postgres.go: pool construction
// via pgxpool.New, a Ping on connect, and parameterized Exec/QueryRow
// calls, adapted from bespoke forensics tables to a single generic
// key/value table.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rawblock/threatcore/internal/store"
)

// Store is a Postgres-backed KVStore.
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens a connection pool and verifies connectivity.
func Connect(ctx context.Context, connStr string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping failed: %v", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// InitSchema loads and executes the kv_store schema file.
func (s *Store) InitSchema(ctx context.Context) error {
	schemaBytes, err := os.ReadFile("internal/store/postgres/schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema file: %v", err)
	}
	if _, err := s.pool.Exec(ctx, string(schemaBytes)); err != nil {
		return fmt.Errorf("failed to execute schema migrations: %v", err)
	}
	return nil
}

var _ store.KVStore = (*Store)(nil)

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.pool.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("kv get failed: %v", err)
	}
	return value, true, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	sql := `
		INSERT INTO kv_store (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value;
	`
	_, err := s.pool.Exec(ctx, sql, key, value)
	if err != nil {
		return fmt.Errorf("kv put failed: %v", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("kv delete failed: %v", err)
	}
	return nil
}
