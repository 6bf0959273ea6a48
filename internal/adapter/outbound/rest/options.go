package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/inkpress/inkctl/internal/domain/navigation"
)

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithTimeout sets the per-request deadline.
// If not set, defaults to 10 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient sets a custom http.Client for making requests.
// This is useful for testing, proxying, or custom transport configurations.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCredentialSource sets where the bearer token is read from before
// every request and which storage is cleared on an unauthorized response.
// Without one, requests go out without an Authorization header.
func WithCredentialSource(cs CredentialSource) Option {
	return func(c *Client) {
		c.creds = cs
	}
}

// WithNavigator sets the navigation side effect scheduled after a
// forced logout.
func WithNavigator(nav navigation.Navigator) Option {
	return func(c *Client) {
		c.nav = nav
	}
}

// WithNavigateDelay sets the delay between a forced session clear and
// the navigation side effect. If not set, defaults to 100ms.
func WithNavigateDelay(d time.Duration) Option {
	return func(c *Client) {
		c.navDelay = d
	}
}

// WithMetrics sets the metrics recorder. Without one, nothing is recorded.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithLogger sets the logger for request failures and session clears.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithReadAttempts sets the total number of attempts for read requests,
// including the initial one. If not set, defaults to 2 (one retry).
// Write requests are always issued exactly once.
func WithReadAttempts(n uint) Option {
	return func(c *Client) {
		c.readAttempts = n
	}
}

// WithRetryBaseDelay sets the backoff base delay before the first retry.
// If not set, defaults to 1 second, doubling per attempt.
func WithRetryBaseDelay(d time.Duration) Option {
	return func(c *Client) {
		c.retryBaseDelay = d
	}
}

// WithRetryMaxDelay caps the backoff delay. If not set, defaults to 30 seconds.
func WithRetryMaxDelay(d time.Duration) Option {
	return func(c *Client) {
		c.retryMaxDelay = d
	}
}
