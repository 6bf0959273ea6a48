package rest

import (
	"context"
	"errors"

	"github.com/avast/retry-go/v4"
)

// doWithRetry applies the read retry policy: the request is attempted
// c.readAttempts times in total, backing off exponentially from
// retryBaseDelay and capped at retryMaxDelay. Failures with a 4xx
// status are not retried; the request was understood and rejected, so
// repeating it cannot succeed.
func (c *Client) doWithRetry(ctx context.Context, fn func() error) error {
	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(c.readAttempts),
		retry.Delay(c.retryBaseDelay),
		retry.MaxDelay(c.retryMaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
		retry.OnRetry(func(n uint, err error) {
			if c.metrics != nil {
				c.metrics.RetriesTotal.Inc()
			}
			c.logger.Debug("retrying read request", "attempt", n+1, "error", err)
		}),
	)
}

// retryable reports whether a read failure is worth one more attempt.
// Timeouts and connectivity failures qualify, as do 5xx responses. Any
// 4xx (including the unauthorized path, whose session clear has already
// run) does not.
func retryable(err error) bool {
	var se *ServerError
	if errors.As(err, &se) {
		return se.Status >= 500
	}
	if errors.Is(err, ErrUnauthorized) {
		return false
	}
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrNetwork)
}
