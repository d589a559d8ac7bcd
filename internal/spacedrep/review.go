package spacedrep

import "time"

// ItemKind separates token reviews from topic reviews.
type ItemKind string

const (
	KindToken ItemKind = "token"
	KindTopic ItemKind = "topic"
)

// ItemKey identifies a review item within a user's schedule.
type ItemKey struct {
	Kind ItemKind
	ID   string
}

// Status is the review state of an item.
type Status string

const (
	StatusActive   Status = "active"
	StatusMastered Status = "mastered"
)

// ReviewItem holds the spaced repetition state for one token or topic.
type ReviewItem struct {
	UserID       string
	Key          ItemKey
	Topic        string // display label
	IntervalDays int
	NextReview   time.Time
	Status       Status
	Version      int
}

// IsDue returns true if the item is active and its review date is today or
// earlier.
func (ri *ReviewItem) IsDue(today time.Time) bool {
	return ri.Status == StatusActive && !Day(today).Before(ri.NextReview)
}

// DaysUntilReview returns the number of days until the next review.
// Returns 0 if already due.
func (ri *ReviewItem) DaysUntilReview(today time.Time) int {
	d := int(ri.NextReview.Sub(Day(today)).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// DueItems is the set of items whose review date has passed, partitioned by
// kind. Both slices are sorted and never nil.
type DueItems struct {
	Tokens []string
	Topics []string
}

// Empty reports whether nothing is due.
func (d DueItems) Empty() bool {
	return len(d.Tokens) == 0 && len(d.Topics) == 0
}

// Day truncates t to its calendar date in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
