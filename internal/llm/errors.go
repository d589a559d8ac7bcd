package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the LLM returned content that does not
// conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// Error classes reported by ErrorClass.
const (
	ClassRateLimit       = "rate_limit"
	ClassUnavailable     = "unavailable"
	ClassInvalidResponse = "invalid_response"
	ClassTimeout         = "timeout"
	ClassOther           = "other"
)

// ErrorClass buckets err for log fields.
func ErrorClass(err error) string {
	var (
		rl      *ErrRateLimit
		unavail *ErrProviderUnavailable
		inv     *ErrInvalidResponse
		maxTok  *ErrMaxTokensExceeded
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &rl):
		return ClassRateLimit
	case errors.Is(err, context.DeadlineExceeded):
		return ClassTimeout
	case errors.As(err, &unavail):
		return ClassUnavailable
	case errors.As(err, &inv), errors.As(err, &maxTok):
		return ClassInvalidResponse
	default:
		return ClassOther
	}
}

// mapStatus turns an HTTP status reported by a vendor SDK into one of the
// typed errors above. Client errors other than 429 are returned as plain
// errors so they are never retried.
func mapStatus(status int, err error) error {
	switch status {
	case http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return fmt.Errorf("provider rejected request (%d): %w", status, err)
	}
	return &ErrProviderUnavailable{Err: err}
}
