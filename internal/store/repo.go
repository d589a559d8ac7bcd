package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrConflict is returned by Save* when the stored version no longer
	// matches the record's Version. Callers re-read and retry.
	ErrConflict = errors.New("store: version conflict")

	// ErrUnavailable is the default cause for an unavailable Result.
	ErrUnavailable = errors.New("store: unavailable")
)

// DateLayout is the on-disk format of calendar dates.
const DateLayout = "2006-01-02"

// QueryOpts configures log queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
}

// PatternRecord is the stored form of an error pattern, keyed by
// (UserID, Kind, Token). Version 0 means "not yet stored".
type PatternRecord struct {
	UserID      string
	Kind        string
	Token       string
	Description string
	Example     string
	Occurrences int
	Status      string
	LastSeen    time.Time
	Version     int
}

// PatternRepo persists error patterns.
type PatternRepo interface {
	// GetPattern returns the record for the key, or nil if none exists.
	GetPattern(ctx context.Context, userID, kind, token string) Result[*PatternRecord]

	// ListPatterns returns the user's patterns, optionally filtered by status
	// ("" means all), ordered by occurrences descending.
	ListPatterns(ctx context.Context, userID, status string) Result[[]PatternRecord]

	// SavePattern inserts (Version == 0) or conditionally updates the record.
	// On success rec.Version holds the new version.
	SavePattern(ctx context.Context, rec *PatternRecord) error
}

// ReviewRecord is the stored form of a review item, keyed by
// (UserID, Kind, Item).
type ReviewRecord struct {
	UserID       string
	Kind         string
	Item         string
	Topic        string
	IntervalDays int
	NextReview   time.Time
	Status       string
	Version      int
}

// ReviewRepo persists the review schedule.
type ReviewRepo interface {
	// GetReview returns the record for the key, or nil if none exists.
	GetReview(ctx context.Context, userID, kind, item string) Result[*ReviewRecord]

	// ListDueReviews returns active items whose next review is on or
	// before today.
	ListDueReviews(ctx context.Context, userID string, today time.Time) Result[[]ReviewRecord]

	// ListReviews returns every item for the user ordered by next review.
	ListReviews(ctx context.Context, userID string) Result[[]ReviewRecord]

	// SaveReview inserts (Version == 0) or conditionally updates the record.
	SaveReview(ctx context.Context, rec *ReviewRecord) error
}

// SessionRecord is one finished practice session. Only aggregates and the
// serialized result list persist.
type SessionRecord struct {
	ID         string
	UserID     string
	Date       time.Time
	Total      int
	Correct    int
	BestStreak int
	Details    string // JSON
	CreatedAt  time.Time
}

// SessionRepo is the append-only session-result log.
type SessionRepo interface {
	AppendSession(ctx context.Context, rec SessionRecord) error

	// QuerySessions returns the user's sessions, newest first.
	QuerySessions(ctx context.Context, userID string, opts QueryOpts) Result[[]SessionRecord]
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// LLMPurposeUsage aggregates token usage for one purpose.
type LLMPurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// LLMEventRepo records and inspects LLM calls.
type LLMEventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns the event with the given ID, or nil.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}

func formatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
