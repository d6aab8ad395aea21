package httpx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultAttempts is the total request budget when none is configured.
const DefaultAttempts = 3

const defaultBackoffInterval = 250 * time.Millisecond

// Retrier re-issues failed requests up to a fixed attempt budget.
// Connection failures are always retryable; status failures are retryable
// unless the status is 401, since retrying cannot fix bad credentials.
type Retrier struct {
	transport *Transport
	attempts  int
	interval  time.Duration
	logger    *slog.Logger
}

// NewRetrier builds a retry policy over the given transport. The attempt
// budget must be at least one; a budget that can never issue a request is
// a configuration error and is rejected here, not at call time.
func NewRetrier(transport *Transport, attempts int, interval time.Duration, logger *slog.Logger) (*Retrier, error) {
	if attempts < 1 {
		return nil, fmt.Errorf("retry attempts must be >= 1, got %d", attempts)
	}
	if interval <= 0 {
		interval = defaultBackoffInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Retrier{
		transport: transport,
		attempts:  attempts,
		interval:  interval,
		logger:    logger,
	}, nil
}

// Do issues the request, retrying retryable failures with exponential
// backoff until the attempt budget is spent. The final failure propagates
// with the same kind as the last attempt; non-retryable failures propagate
// immediately.
func (r *Retrier) Do(ctx context.Context, req Request) (*Response, error) {
	var resp *Response
	attempt := 0

	operation := func() error {
		attempt++
		res, err := r.transport.RoundTrip(ctx, req)
		if err != nil {
			if !retryable(err) {
				return backoff.Permanent(err)
			}
			if attempt < r.attempts {
				r.logger.Debug("request failed, retrying",
					"method", req.Method,
					"url", req.URL,
					"attempt", attempt,
					"error", err,
				)
			}
			return err
		}
		resp = res
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.interval

	err := backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(policy, uint64(r.attempts-1)), ctx))
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func retryable(err error) bool {
	var connErr *ConnError
	if errors.As(err, &connErr) {
		return true
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode != http.StatusUnauthorized
	}
	// Context cancellation and the like: retrying cannot help.
	return false
}
