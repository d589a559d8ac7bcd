package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// sessionRepo implements SessionRepo with the ent SQL builder.
type sessionRepo struct {
	db      *sql.DB
	dialect string
}

var sessionColumns = []string{
	"id", "user_id", "date", "total", "correct", "best_streak", "details", "created_at",
}

func (r *sessionRepo) AppendSession(ctx context.Context, rec SessionRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	if rec.Details == "" {
		rec.Details = "[]"
	}

	q, args := entsql.Dialect(r.dialect).
		Insert(tableSessions).
		Columns(sessionColumns...).
		Values(rec.ID, rec.UserID, formatDate(rec.Date), rec.Total, rec.Correct,
			rec.BestStreak, rec.Details, formatTimestamp(rec.CreatedAt)).
		Query()

	if _, err := exec(ctx, r.db, q, args); err != nil {
		return fmt.Errorf("append session: %w", err)
	}
	return nil
}

func (r *sessionRepo) QuerySessions(ctx context.Context, userID string, opts QueryOpts) Result[[]SessionRecord] {
	preds := []*entsql.Predicate{entsql.EQ("user_id", userID)}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("created_at", formatTimestamp(opts.From)))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("created_at", formatTimestamp(opts.To)))
	}

	sel := entsql.Dialect(r.dialect).
		Select(sessionColumns...).
		From(entsql.Table(tableSessions)).
		Where(entsql.And(preds...)).
		OrderBy(entsql.Desc("created_at"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	q, args := sel.Query()

	recs, err := scanAll(ctx, r.db, q, args, func(rows *sql.Rows) (SessionRecord, error) {
		var (
			rec             SessionRecord
			date, createdAt string
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &date, &rec.Total, &rec.Correct,
			&rec.BestStreak, &rec.Details, &createdAt); err != nil {
			return rec, err
		}
		var err error
		if rec.Date, err = parseDate(date); err != nil {
			return rec, fmt.Errorf("parse date %q: %w", date, err)
		}
		if rec.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return rec, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		return rec, nil
	})
	if err != nil {
		return Unavailable[[]SessionRecord](fmt.Errorf("query sessions: %w", err))
	}
	return Ok(recs)
}
