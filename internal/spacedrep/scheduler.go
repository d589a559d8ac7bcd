package spacedrep

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

// Scheduler manages the per-user review schedule.
type Scheduler struct {
	repo store.ReviewRepo
	log  *logger.Logger
}

// NewScheduler creates a scheduler backed by repo. A nil logger discards logs.
func NewScheduler(repo store.ReviewRepo, log *logger.Logger) *Scheduler {
	return &Scheduler{repo: repo, log: logger.OrNop(log)}
}

// tally counts outcomes for one item within a batch.
type tally struct {
	correct int
	wrong   int
	topic   string
}

// tallyBatch groups a batch by review item. Every non-empty token is counted;
// a topic is counted only if the batch has at least one wrong answer in it.
func tallyBatch(results []practice.Result) map[ItemKey]tally {
	out := make(map[ItemKey]tally)
	topics := make(map[ItemKey]tally)
	topicHasWrong := make(map[ItemKey]bool)

	for _, r := range results {
		if tok := r.EffectiveToken(); tok != "" {
			k := ItemKey{Kind: KindToken, ID: tok}
			t := out[k]
			if t.topic == "" {
				t.topic = r.Topic.Label()
			}
			t.add(r.Correct)
			out[k] = t
		}
		if r.Topic != "" {
			k := ItemKey{Kind: KindTopic, ID: string(r.Topic)}
			t := topics[k]
			t.topic = r.Topic.Label()
			t.add(r.Correct)
			topics[k] = t
			if !r.Correct {
				topicHasWrong[k] = true
			}
		}
	}

	for k, t := range topics {
		if topicHasWrong[k] {
			out[k] = t
		}
	}
	return out
}

func (t *tally) add(correct bool) {
	if correct {
		t.correct++
	} else {
		t.wrong++
	}
}

// ApplyBatch applies one transition per distinct item in the batch. Items
// without a record start at the first rung regardless of outcome. Existing
// items advance when correct answers outnumber wrong ones and reset
// otherwise. Each item is independent: a failure is logged and the loop
// continues.
func (s *Scheduler) ApplyBatch(ctx context.Context, userID string, results []practice.Result, today time.Time) {
	today = Day(today)
	tallies := tallyBatch(results)

	keys := make([]ItemKey, 0, len(tallies))
	for k := range tallies {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Kind != keys[j].Kind {
			return keys[i].Kind < keys[j].Kind
		}
		return keys[i].ID < keys[j].ID
	})

	for _, k := range keys {
		if err := s.apply(ctx, userID, k, tallies[k], today); err != nil {
			s.log.Warn("update review item failed",
				"user", userID, "kind", k.Kind, "item", k.ID, "error", err)
		}
	}
}

func (s *Scheduler) apply(ctx context.Context, userID string, k ItemKey, t tally, today time.Time) error {
	for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
		existing, err := s.repo.GetReview(ctx, userID, string(k.Kind), k.ID).Get()
		if err != nil {
			return err
		}

		rec := existing
		if rec == nil {
			rec = &store.ReviewRecord{
				UserID:       userID,
				Kind:         string(k.Kind),
				Item:         k.ID,
				Topic:        t.topic,
				IntervalDays: Reset(),
			}
		} else if t.correct > t.wrong {
			rec.IntervalDays = Advance(rec.IntervalDays)
		} else {
			rec.IntervalDays = Reset()
		}
		rec.NextReview = today.AddDate(0, 0, rec.IntervalDays)
		rec.Status = string(StatusFor(rec.IntervalDays))

		err = s.repo.SaveReview(ctx, rec)
		if errors.Is(err, store.ErrConflict) {
			s.log.Debug("review item version conflict, retrying",
				"kind", k.Kind, "item", k.ID, "attempt", attempt)
			continue
		}
		return err
	}
	return fmt.Errorf("save review %s/%s after %d attempts: %w", k.Kind, k.ID, maxSaveAttempts, store.ErrConflict)
}

// DueItems returns active items whose review date is on or before today.
// Storage failures yield empty sets.
func (s *Scheduler) DueItems(ctx context.Context, userID string, today time.Time) DueItems {
	out := DueItems{Tokens: []string{}, Topics: []string{}}

	recs, err := s.repo.ListDueReviews(ctx, userID, Day(today)).Get()
	if err != nil {
		s.log.Warn("due items unavailable", "user", userID, "error", err)
		return out
	}

	seen := make(map[ItemKey]bool, len(recs))
	for _, r := range recs {
		k := ItemKey{Kind: ItemKind(r.Kind), ID: r.Item}
		if seen[k] {
			continue
		}
		seen[k] = true
		switch k.Kind {
		case KindToken:
			out.Tokens = append(out.Tokens, k.ID)
		case KindTopic:
			out.Topics = append(out.Topics, k.ID)
		}
	}
	sort.Strings(out.Tokens)
	sort.Strings(out.Topics)
	return out
}

// List returns every review item for the user, soonest first.
func (s *Scheduler) List(ctx context.Context, userID string) ([]ReviewItem, error) {
	recs, err := s.repo.ListReviews(ctx, userID).Get()
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	out := make([]ReviewItem, 0, len(recs))
	for _, r := range recs {
		out = append(out, ReviewItem{
			UserID:       r.UserID,
			Key:          ItemKey{Kind: ItemKind(r.Kind), ID: r.Item},
			Topic:        r.Topic,
			IntervalDays: r.IntervalDays,
			NextReview:   r.NextReview,
			Status:       Status(r.Status),
			Version:      r.Version,
		})
	}
	return out, nil
}
