package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/Sablekanishka11/mbti-mirror/internal/personality"
	"github.com/Sablekanishka11/mbti-mirror/internal/results"
)

const resultsTable = "results"

var resultColumns = []string{"id", "owner", "type_code", "profile", "answers", "created_at"}

// ResultRepo implements results.Repo on SQLite.
type ResultRepo struct {
	db  *sql.DB
	sql *entsql.DialectBuilder
	seq *sequenceCounter
}

var _ results.Repo = (*ResultRepo)(nil)

// Append inserts rec. Appending a record whose id already exists is a no-op,
// so a retried write cannot produce duplicates.
func (r *ResultRepo) Append(ctx context.Context, rec *results.Record) error {
	profile, err := json.Marshal(rec.Profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	answers, err := json.Marshal(rec.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	query, args := r.sql.Insert(resultsTable).
		Columns("id", "sequence", "owner", "type_code", "profile", "answers", "created_at").
		Values(rec.ID, seq, rec.Owner, string(rec.TypeCode), string(profile), string(answers), rec.CreatedAt.UnixMilli()).
		OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's records ordered by creation time, newest first.
func (r *ResultRepo) ListByOwner(ctx context.Context, owner string) ([]*results.Record, error) {
	t := r.sql.Table(resultsTable)
	query, args := r.sql.Select(resultColumns...).
		From(t).
		Where(entsql.EQ("owner", owner)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("sequence")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
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
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return out, nil
}

// Get returns the record with id, or results.ErrNotFound.
func (r *ResultRepo) Get(ctx context.Context, id string) (*results.Record, error) {
	query, args := r.sql.Select(resultColumns...).
		From(r.sql.Table(resultsTable)).
		Where(entsql.EQ("id", id)).
		Query()

	rec, err := scanResult(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, results.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (*results.Record, error) {
	var (
		rec              results.Record
		code             string
		profile, answers string
		createdMs        int64
	)
	if err := row.Scan(&rec.ID, &rec.Owner, &code, &profile, &answers, &createdMs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan result: %w", err)
	}
	rec.TypeCode = personality.TypeCode(code)
	rec.CreatedAt = time.UnixMilli(createdMs).UTC()

	if err := json.Unmarshal([]byte(profile), &rec.Profile); err != nil {
		return nil, fmt.Errorf("decode profile for %s: %w", rec.ID, err)
	}
	rec.Answers = personality.AnswerSet{}
	if err := json.Unmarshal([]byte(answers), &rec.Answers); err != nil {
		return nil, fmt.Errorf("decode answers for %s: %w", rec.ID, err)
	}
	return &rec, nil
}
