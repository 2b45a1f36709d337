// Package postgres stores results and LLM events in PostgreSQL.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sablekanishka11/mbti-mirror/internal/store"
)

const schema = `
CREATE SEQUENCE IF NOT EXISTS global_sequence;

CREATE TABLE IF NOT EXISTS results (
    id TEXT PRIMARY KEY,
    sequence BIGINT NOT NULL DEFAULT nextval('global_sequence'),
    owner TEXT NOT NULL,
    type_code CHAR(4) NOT NULL,
    profile JSONB NOT NULL,
    answers JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_results_owner_created ON results (owner, created_at DESC);

CREATE TABLE IF NOT EXISTS llm_request_events (
    id BIGSERIAL PRIMARY KEY,
    sequence BIGINT NOT NULL DEFAULT nextval('global_sequence'),
    timestamp TIMESTAMPTZ NOT NULL DEFAULT now(),
    provider TEXT NOT NULL,
    model TEXT NOT NULL,
    purpose TEXT NOT NULL DEFAULT '',
    input_tokens INTEGER NOT NULL DEFAULT 0,
    output_tokens INTEGER NOT NULL DEFAULT 0,
    latency_ms BIGINT NOT NULL DEFAULT 0,
    success BOOLEAN NOT NULL DEFAULT false,
    error_message TEXT NOT NULL DEFAULT '',
    request_body TEXT NOT NULL DEFAULT '',
    response_body TEXT NOT NULL DEFAULT ''
);
`

// Store wraps a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to databaseURL, verifies the connection and creates the
// schema if needed.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	const op = "postgres.Open"

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: parse database config: %w", op, err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: create database pool: %w", op, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: ping database: %w", op, err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: create schema: %w", op, err)
	}

	return &Store{pool: pool}, nil
}

// Pool returns the underlying pool.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Close releases the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// ResultRepo returns a results.Repo backed by this store.
func (s *Store) ResultRepo() *ResultRepo {
	return &ResultRepo{pool: s.pool}
}

// EventRepo returns a store.EventRepo backed by this store.
func (s *Store) EventRepo() store.EventRepo {
	return &EventRepo{pool: s.pool}
}
