package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sablekanishka11/mbti-mirror/internal/store"
)

// EventRepo implements store.EventRepo on PostgreSQL.
type EventRepo struct {
	pool *pgxpool.Pool
}

var _ store.EventRepo = (*EventRepo)(nil)

const eventColumns = `id, sequence, timestamp, provider, model, purpose, input_tokens,
	output_tokens, latency_ms, success, error_message, request_body, response_body`

func (r *EventRepo) AppendLLMRequest(ctx context.Context, d store.LLMRequestEventData) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO llm_request_events (provider, model, purpose, input_tokens, output_tokens,
			latency_ms, success, error_message, request_body, response_body)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, d.Provider, d.Model, d.Purpose, d.InputTokens, d.OutputTokens,
		d.LatencyMs, d.Success, d.ErrorMessage, d.RequestBody, d.ResponseBody)
	if err != nil {
		return fmt.Errorf("failed to save LLM request event: %w", err)
	}
	return nil
}

func (r *EventRepo) QueryLLMEvents(ctx context.Context, opts store.QueryOpts) ([]store.LLMEvent, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if opts.After > 0 {
		add("sequence > $%d", opts.After)
	}
	if opts.Before > 0 {
		add("sequence < $%d", opts.Before)
	}
	if !opts.From.IsZero() {
		add("timestamp >= $%d", opts.From)
	}
	if !opts.To.IsZero() {
		add("timestamp <= $%d", opts.To)
	}
	if opts.Purpose != "" {
		add("purpose = $%d", opts.Purpose)
	}

	q := "SELECT " + eventColumns + " FROM llm_request_events"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY sequence DESC"
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query LLM events: %w", err)
	}
	defer rows.Close()

	var out []store.LLMEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *EventRepo) GetLLMEvent(ctx context.Context, id int) (*store.LLMEvent, error) {
	e, err := scanEvent(r.pool.QueryRow(ctx,
		"SELECT "+eventColumns+" FROM llm_request_events WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

func (r *EventRepo) LLMUsageByPurpose(ctx context.Context) ([]store.LLMPurposeUsage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT purpose, COUNT(*), COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0),
			COALESCE(AVG(latency_ms), 0)::BIGINT
		FROM llm_request_events
		GROUP BY purpose
		ORDER BY purpose
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage by purpose: %w", err)
	}
	defer rows.Close()

	var out []store.LLMPurposeUsage
	for rows.Next() {
		var u store.LLMPurposeUsage
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("failed to scan usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *EventRepo) LLMUsageByModel(ctx context.Context) ([]store.LLMModelUsage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT model, COUNT(*), COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0)
		FROM llm_request_events
		GROUP BY model
		ORDER BY model
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage by model: %w", err)
	}
	defer rows.Close()

	var out []store.LLMModelUsage
	for rows.Next() {
		var u store.LLMModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("failed to scan usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func scanEvent(row pgx.Row) (*store.LLMEvent, error) {
	var e store.LLMEvent
	err := row.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.Provider, &e.Model, &e.Purpose,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
		&e.ErrorMessage, &e.RequestBody, &e.ResponseBody)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan LLM event: %w", err)
	}
	e.Timestamp = e.Timestamp.UTC()
	return &e, nil
}
