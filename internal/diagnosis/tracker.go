package diagnosis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/abhisek/grammiz/internal/logger"
	"github.com/abhisek/grammiz/internal/practice"
	"github.com/abhisek/grammiz/internal/store"
)

// maxSaveAttempts bounds the re-read/retry loop on version conflicts.
const maxSaveAttempts = 3

// Tracker accumulates error patterns per user.
type Tracker struct {
	repo store.PatternRepo
	log  *logger.Logger
	now  func() time.Time
}

// NewTracker creates a tracker backed by repo. A nil logger discards logs.
func NewTracker(repo store.PatternRepo, log *logger.Logger) *Tracker {
	return &Tracker{
		repo: repo,
		log:  logger.OrNop(log),
		now:  time.Now,
	}
}

// WithClock overrides the clock used for LastSeen.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// RecordBatch classifies every incorrect result and upserts its pattern.
// Each record is independent: a failure is logged and the loop continues.
func (t *Tracker) RecordBatch(ctx context.Context, userID string, results []practice.Result) {
	today := t.now()
	for _, r := range results {
		if r.Correct {
			continue
		}
		p := Classify(r.UserAnswer, r.CorrectAnswer, r.EffectiveToken())
		if err := t.upsert(ctx, userID, p, today); err != nil {
			t.log.Warn("record error pattern failed",
				"user", userID, "kind", p.Kind, "token", p.Token, "error", err)
		}
	}
}

// upsert increments an existing pattern or inserts a new one, re-reading
// on version conflicts.
func (t *Tracker) upsert(ctx context.Context, userID string, p Pattern, today time.Time) error {
	for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
		existing, err := t.repo.GetPattern(ctx, userID, string(p.Kind), p.Token).Get()
		if err != nil {
			return err
		}

		rec := existing
		if rec == nil {
			rec = &store.PatternRecord{
				UserID:      userID,
				Kind:        string(p.Kind),
				Token:       p.Token,
				Description: p.Description,
				Example:     p.Example,
				Occurrences: 1,
			}
		} else {
			rec.Occurrences++
			rec.Example = p.Example
		}
		rec.Status = string(StatusFor(rec.Occurrences))
		rec.LastSeen = today

		err = t.repo.SavePattern(ctx, rec)
		if errors.Is(err, store.ErrConflict) {
			t.log.Debug("error pattern version conflict, retrying",
				"kind", p.Kind, "token", p.Token, "attempt", attempt)
			continue
		}
		return err
	}
	return fmt.Errorf("save pattern %s/%s after %d attempts: %w", p.Kind, p.Token, maxSaveAttempts, store.ErrConflict)
}

// ActivePatterns returns the deduplicated active pattern kinds and problem
// tokens. Storage failures yield empty sets.
func (t *Tracker) ActivePatterns(ctx context.Context, userID string) ActivePatterns {
	out := ActivePatterns{PatternNames: []PatternKind{}, ProblemTokens: []string{}}

	recs, err := t.repo.ListPatterns(ctx, userID, string(StatusActive)).Get()
	if err != nil {
		t.log.Warn("active patterns unavailable", "user", userID, "error", err)
		return out
	}

	kinds := make(map[PatternKind]bool)
	tokens := make(map[string]bool)
	for _, r := range recs {
		kinds[PatternKind(r.Kind)] = true
		if r.Token != "" && r.Token != UnknownToken {
			tokens[r.Token] = true
		}
	}
	for k := range kinds {
		out.PatternNames = append(out.PatternNames, k)
	}
	for tok := range tokens {
		out.ProblemTokens = append(out.ProblemTokens, tok)
	}
	sort.Slice(out.PatternNames, func(i, j int) bool { return out.PatternNames[i] < out.PatternNames[j] })
	sort.Strings(out.ProblemTokens)
	return out
}

// List returns all of the user's patterns, most frequent first.
func (t *Tracker) List(ctx context.Context, userID string) ([]Pattern, error) {
	recs, err := t.repo.ListPatterns(ctx, userID, "").Get()
	if err != nil {
		return nil, fmt.Errorf("list patterns: %w", err)
	}
	out := make([]Pattern, 0, len(recs))
	for _, r := range recs {
		out = append(out, fromRecord(r))
	}
	return out, nil
}

func fromRecord(r store.PatternRecord) Pattern {
	return Pattern{
		UserID:      r.UserID,
		Kind:        PatternKind(r.Kind),
		Token:       r.Token,
		Description: r.Description,
		Example:     r.Example,
		Occurrences: r.Occurrences,
		Status:      Status(r.Status),
		LastSeen:    r.LastSeen,
		Version:     r.Version,
	}
}
