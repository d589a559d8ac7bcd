package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// llmEventRepo implements LLMEventRepo with the ent SQL builder.
type llmEventRepo struct {
	db      *sql.DB
	dialect string
}

var llmEventColumns = []string{
	"id", "timestamp", "provider", "model", "purpose", "input_tokens", "output_tokens",
	"latency_ms", "success", "error_message", "request_body", "response_body",
}

func (r *llmEventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	q, args := entsql.Dialect(r.dialect).
		Insert(tableLLM).
		Columns(llmEventColumns[1:]...).
		Values(formatTimestamp(time.Now()), data.Provider, data.Model, data.Purpose,
			data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success,
			data.ErrorMessage, data.RequestBody, data.ResponseBody).
		Query()

	if _, err := exec(ctx, r.db, q, args); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func scanLLMEvent(rows *sql.Rows) (LLMEventRecord, error) {
	var (
		e  LLMEventRecord
		ts string
	)
	if err := rows.Scan(&e.ID, &ts, &e.Provider, &e.Model, &e.Purpose, &e.InputTokens,
		&e.OutputTokens, &e.LatencyMs, &e.Success, &e.ErrorMessage, &e.RequestBody,
		&e.ResponseBody); err != nil {
		return e, err
	}
	t, err := parseTimestamp(ts)
	if err != nil {
		return e, fmt.Errorf("parse timestamp %q: %w", ts, err)
	}
	e.Timestamp = t
	return e, nil
}

func (r *llmEventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error) {
	sel := entsql.Dialect(r.dialect).
		Select(llmEventColumns...).
		From(entsql.Table(tableLLM))

	var preds []*entsql.Predicate
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", formatTimestamp(opts.From)))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", formatTimestamp(opts.To)))
	}
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}
	sel = sel.OrderBy(entsql.Desc("id"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}

	q, args := sel.Query()
	events, err := scanAll(ctx, r.db, q, args, scanLLMEvent)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	return events, nil
}

func (r *llmEventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error) {
	q, args := entsql.Dialect(r.dialect).
		Select(llmEventColumns...).
		From(entsql.Table(tableLLM)).
		Where(entsql.EQ("id", id)).
		Query()

	events, err := scanAll(ctx, r.db, q, args, scanLLMEvent)
	if err != nil {
		return nil, fmt.Errorf("get LLM event: %w", err)
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

func (r *llmEventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error) {
	q, args := entsql.Dialect(r.dialect).
		Select(
			"purpose",
			entsql.As(entsql.Count("*"), "calls"),
			entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
			entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
			entsql.As(entsql.Sum("latency_ms"), "latency_ms"),
		).
		From(entsql.Table(tableLLM)).
		GroupBy("purpose").
		OrderBy("purpose").
		Query()

	return scanAll(ctx, r.db, q, args, func(rows *sql.Rows) (LLMPurposeUsage, error) {
		var (
			u         LLMPurposeUsage
			latencyMs int64
		)
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &latencyMs); err != nil {
			return u, err
		}
		if u.Calls > 0 {
			u.AvgLatencyMs = latencyMs / int64(u.Calls)
		}
		return u, nil
	})
}

func (r *llmEventRepo) LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error) {
	q, args := entsql.Dialect(r.dialect).
		Select(
			"model",
			entsql.As(entsql.Count("*"), "calls"),
			entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
			entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
		).
		From(entsql.Table(tableLLM)).
		GroupBy("model").
		OrderBy("model").
		Query()

	return scanAll(ctx, r.db, q, args, func(rows *sql.Rows) (LLMModelUsage, error) {
		var u LLMModelUsage
		err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens)
		return u, err
	})
}
