package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// reviewRepo implements ReviewRepo with the ent SQL builder.
type reviewRepo struct {
	db      *sql.DB
	dialect string
}

var reviewColumns = []string{
	"user_id", "kind", "item", "topic", "interval_days",
	"next_review", "status", "version",
}

func scanReview(rows *sql.Rows) (ReviewRecord, error) {
	var (
		rec  ReviewRecord
		next string
	)
	if err := rows.Scan(&rec.UserID, &rec.Kind, &rec.Item, &rec.Topic, &rec.IntervalDays,
		&next, &rec.Status, &rec.Version); err != nil {
		return rec, err
	}
	t, err := parseDate(next)
	if err != nil {
		return rec, fmt.Errorf("parse next_review %q: %w", next, err)
	}
	rec.NextReview = t
	return rec, nil
}

func (r *reviewRepo) selectReviews() *entsql.Selector {
	return entsql.Dialect(r.dialect).
		Select(reviewColumns...).
		From(entsql.Table(tableReviews))
}

func (r *reviewRepo) GetReview(ctx context.Context, userID, kind, item string) Result[*ReviewRecord] {
	q, args := r.selectReviews().
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("kind", kind),
			entsql.EQ("item", item),
		)).
		Query()

	recs, err := scanAll(ctx, r.db, q, args, scanReview)
	if err != nil {
		return Unavailable[*ReviewRecord](fmt.Errorf("get review: %w", err))
	}
	if len(recs) == 0 {
		return Ok[*ReviewRecord](nil)
	}
	return Ok(&recs[0])
}

// ListDueReviews compares dates as "2006-01-02" strings, which sort the
// same way as the dates themselves.
func (r *reviewRepo) ListDueReviews(ctx context.Context, userID string, today time.Time) Result[[]ReviewRecord] {
	q, args := r.selectReviews().
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("status", "active"),
			entsql.LTE("next_review", formatDate(today)),
		)).
		OrderBy("next_review", "kind", "item").
		Query()

	recs, err := scanAll(ctx, r.db, q, args, scanReview)
	if err != nil {
		return Unavailable[[]ReviewRecord](fmt.Errorf("list due reviews: %w", err))
	}
	return Ok(recs)
}

func (r *reviewRepo) ListReviews(ctx context.Context, userID string) Result[[]ReviewRecord] {
	q, args := r.selectReviews().
		Where(entsql.EQ("user_id", userID)).
		OrderBy("next_review", "kind", "item").
		Query()

	recs, err := scanAll(ctx, r.db, q, args, scanReview)
	if err != nil {
		return Unavailable[[]ReviewRecord](fmt.Errorf("list reviews: %w", err))
	}
	return Ok(recs)
}

func (r *reviewRepo) SaveReview(ctx context.Context, rec *ReviewRecord) error {
	var (
		q    string
		args []any
	)
	if rec.Version == 0 {
		q, args = entsql.Dialect(r.dialect).
			Insert(tableReviews).
			Columns(reviewColumns...).
			Values(rec.UserID, rec.Kind, rec.Item, rec.Topic, rec.IntervalDays,
				formatDate(rec.NextReview), rec.Status, 1).
			OnConflict(entsql.ConflictColumns("user_id", "kind", "item"), entsql.DoNothing()).
			Query()
	} else {
		q, args = entsql.Dialect(r.dialect).
			Update(tableReviews).
			Set("topic", rec.Topic).
			Set("interval_days", rec.IntervalDays).
			Set("next_review", formatDate(rec.NextReview)).
			Set("status", rec.Status).
			Set("version", rec.Version+1).
			Where(entsql.And(
				entsql.EQ("user_id", rec.UserID),
				entsql.EQ("kind", rec.Kind),
				entsql.EQ("item", rec.Item),
				entsql.EQ("version", rec.Version),
			)).
			Query()
	}

	n, err := exec(ctx, r.db, q, args)
	if err != nil {
		return fmt.Errorf("save review: %w", err)
	}
	if n == 0 {
		return ErrConflict
	}
	rec.Version++
	return nil
}
