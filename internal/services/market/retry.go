package market

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/consilium/internal/eodhd"
)

const (
	maxAttempts    = 3
	initialBackoff = 2 * time.Second
	maxBackoff     = 10 * time.Second
)

// isTransient reports whether an upstream error is worth retrying:
// rate limits, server-side failures, and network errors.
func isTransient(err error) bool {
	var rateErr *eodhd.RateLimitError
	if errors.As(err, &rateErr) {
		return true
	}
	var apiErr *eodhd.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// withRetry runs fn up to maxAttempts times with exponential backoff,
// retrying only transient upstream failures.
func withRetry[T any](ctx context.Context, logger arbor.ILogger, op string, fn func() (T, error)) (T, error) {
	var zero T
	backoff := initialBackoff

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isTransient(err) || attempt == maxAttempts {
			break
		}

		if logger != nil {
			logger.Warn().
				Err(err).
				Str("op", op).
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Msg("Transient upstream error, retrying")
		}

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return zero, ctx.Err()
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}

	return zero, lastErr
}
