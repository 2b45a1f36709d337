package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sablekanishka11/mbti-mirror/internal/personality"
	"github.com/Sablekanishka11/mbti-mirror/internal/results"
)

// ResultRepo implements results.Repo on PostgreSQL.
type ResultRepo struct {
	pool *pgxpool.Pool
}

var _ results.Repo = (*ResultRepo)(nil)

// Append inserts rec; an existing id is left untouched.
func (r *ResultRepo) Append(ctx context.Context, rec *results.Record) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO results (id, owner, type_code, profile, answers, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`, rec.ID, rec.Owner, string(rec.TypeCode), rec.Profile, rec.Answers, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's records, newest first.
func (r *ResultRepo) ListByOwner(ctx context.Context, owner string) ([]*results.Record, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner, type_code, profile, answers, created_at
		FROM results
		WHERE owner = $1
		ORDER BY created_at DESC, sequence DESC
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var out []*results.Record
	for rows.Next() {
		rec, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return out, nil
}

// Get returns the record with id, or results.ErrNotFound.
func (r *ResultRepo) Get(ctx context.Context, id string) (*results.Record, error) {
	rec, err := scanResult(r.pool.QueryRow(ctx, `
		SELECT id, owner, type_code, profile, answers, created_at
		FROM results
		WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, results.ErrNotFound
	}
	return rec, err
}

func scanResult(row pgx.Row) (*results.Record, error) {
	var (
		rec     results.Record
		code    string
		created time.Time
	)
	rec.Answers = personality.AnswerSet{}
	if err := row.Scan(&rec.ID, &rec.Owner, &code, &rec.Profile, &rec.Answers, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan result: %w", err)
	}
	rec.TypeCode = personality.TypeCode(code)
	rec.CreatedAt = created.UTC()
	return &rec, nil
}
