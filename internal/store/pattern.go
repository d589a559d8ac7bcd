package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// patternRepo implements PatternRepo with the ent SQL builder.
type patternRepo struct {
	db      *sql.DB
	dialect string
}

var patternColumns = []string{
	"user_id", "kind", "token", "description", "example",
	"occurrences", "status", "last_seen", "version",
}

func scanPattern(rows *sql.Rows) (PatternRecord, error) {
	var (
		rec      PatternRecord
		lastSeen string
	)
	if err := rows.Scan(&rec.UserID, &rec.Kind, &rec.Token, &rec.Description, &rec.Example,
		&rec.Occurrences, &rec.Status, &lastSeen, &rec.Version); err != nil {
		return rec, err
	}
	t, err := parseDate(lastSeen)
	if err != nil {
		return rec, fmt.Errorf("parse last_seen %q: %w", lastSeen, err)
	}
	rec.LastSeen = t
	return rec, nil
}

func (r *patternRepo) GetPattern(ctx context.Context, userID, kind, token string) Result[*PatternRecord] {
	q, args := entsql.Dialect(r.dialect).
		Select(patternColumns...).
		From(entsql.Table(tablePatterns)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("kind", kind),
			entsql.EQ("token", token),
		)).
		Query()

	recs, err := scanAll(ctx, r.db, q, args, scanPattern)
	if err != nil {
		return Unavailable[*PatternRecord](fmt.Errorf("get pattern: %w", err))
	}
	if len(recs) == 0 {
		return Ok[*PatternRecord](nil)
	}
	return Ok(&recs[0])
}

func (r *patternRepo) ListPatterns(ctx context.Context, userID, status string) Result[[]PatternRecord] {
	pred := entsql.EQ("user_id", userID)
	if status != "" {
		pred = entsql.And(pred, entsql.EQ("status", status))
	}
	q, args := entsql.Dialect(r.dialect).
		Select(patternColumns...).
		From(entsql.Table(tablePatterns)).
		Where(pred).
		OrderBy(entsql.Desc("occurrences"), "kind", "token").
		Query()

	recs, err := scanAll(ctx, r.db, q, args, scanPattern)
	if err != nil {
		return Unavailable[[]PatternRecord](fmt.Errorf("list patterns: %w", err))
	}
	return Ok(recs)
}

func (r *patternRepo) SavePattern(ctx context.Context, rec *PatternRecord) error {
	var (
		q    string
		args []any
	)
	if rec.Version == 0 {
		q, args = entsql.Dialect(r.dialect).
			Insert(tablePatterns).
			Columns(patternColumns...).
			Values(rec.UserID, rec.Kind, rec.Token, rec.Description, rec.Example,
				rec.Occurrences, rec.Status, formatDate(rec.LastSeen), 1).
			OnConflict(entsql.ConflictColumns("user_id", "kind", "token"), entsql.DoNothing()).
			Query()
	} else {
		q, args = entsql.Dialect(r.dialect).
			Update(tablePatterns).
			Set("description", rec.Description).
			Set("example", rec.Example).
			Set("occurrences", rec.Occurrences).
			Set("status", rec.Status).
			Set("last_seen", formatDate(rec.LastSeen)).
			Set("version", rec.Version+1).
			Where(entsql.And(
				entsql.EQ("user_id", rec.UserID),
				entsql.EQ("kind", rec.Kind),
				entsql.EQ("token", rec.Token),
				entsql.EQ("version", rec.Version),
			)).
			Query()
	}

	n, err := exec(ctx, r.db, q, args)
	if err != nil {
		return fmt.Errorf("save pattern: %w", err)
	}
	if n == 0 {
		return ErrConflict
	}
	rec.Version++
	return nil
}
