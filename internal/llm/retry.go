package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/abhisek/grammiz/internal/logger"
)

// RetryProvider retries rate limits and outages with exponential backoff.
// A malformed response gets exactly one more attempt.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	log    *logger.Logger
}

// WithRetry wraps p with retry logic. MaxAttempts below 1 means a single
// attempt. A nil log discards retry notices.
func WithRetry(p Provider, cfg RetryConfig, log *logger.Logger) Provider {
	cfg.MaxAttempts = max(cfg.MaxAttempts, 1)
	return &RetryProvider{inner: p, config: cfg, log: logger.OrNop(log)}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	invalidSeen := false
	attempt := 0
	for {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		class := ErrorClass(err)
		retry := retryable(err, class)
		if class == ClassInvalidResponse {
			retry = retry && !invalidSeen
			invalidSeen = true
		}
		attempt++
		if !retry || attempt >= r.config.MaxAttempts {
			return nil, err
		}

		wait := r.backoff(attempt-1, err)
		r.log.Debug("retrying llm request", "attempt", attempt, "wait", wait, "class", class)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func retryable(err error, class string) bool {
	switch class {
	case ClassRateLimit, ClassUnavailable:
		return !errors.Is(err, context.Canceled)
	case ClassInvalidResponse:
		var truncated *ErrMaxTokensExceeded
		return !errors.As(err, &truncated)
	}
	return false
}

// backoff honours a provider's Retry-After, otherwise grows geometrically
// up to MaxWait with 20% jitter either way.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	base := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	base = math.Min(base, float64(r.config.MaxWait))
	jitter := base * 0.2 * (rand.Float64()*2 - 1)
	return time.Duration(math.Max(base+jitter, 0))
}
