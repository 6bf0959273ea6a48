package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

// flakyHandler fails the first failures requests with status, then
// succeeds.
func flakyHandler(failures int64, status int) (http.HandlerFunc, *atomic.Int64) {
	var calls atomic.Int64
	return func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= failures {
			w.WriteHeader(status)
			w.Write([]byte(`{"message":"upstream hiccup"}`))
			return
		}
		w.Write([]byte(envelopeBody(`{}`)))
	}, &calls
}

func retryingClient(srv *httptest.Server) *Client {
	return NewClient(srv.URL,
		WithHTTPClient(srv.Client()),
		WithReadAttempts(2),
		WithRetryBaseDelay(time.Millisecond),
		WithRetryMaxDelay(5*time.Millisecond),
	)
}

// TestRetry_ReadRecoversFrom5xx verifies that a read failing once with
// a server error is retried and succeeds on the second attempt.
func TestRetry_ReadRecoversFrom5xx(t *testing.T) {
	defer goleak.VerifyNone(t)

	handler, calls := flakyHandler(1, http.StatusInternalServerError)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	c := retryingClient(srv)

	var out map[string]any
	if err := c.Get(context.Background(), "/blogs", nil, &out); err != nil {
		t.Fatalf("Get() failed despite retry budget: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("server saw %d requests, want 2", got)
	}
}

// TestRetry_ReadGivesUpAfterBudget verifies that a persistently failing
// read stops after the configured attempts and reports the last error
// only.
func TestRetry_ReadGivesUpAfterBudget(t *testing.T) {
	defer goleak.VerifyNone(t)

	handler, calls := flakyHandler(100, http.StatusServiceUnavailable)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	c := retryingClient(srv)

	err := c.Get(context.Background(), "/blogs", nil, nil)
	var se *ServerError
	if !errors.As(err, &se) {
		t.Fatalf("error type = %T, want *ServerError", err)
	}
	if se.Status != http.StatusServiceUnavailable {
		t.Errorf("Status = %d, want 503", se.Status)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("server saw %d requests, want 2", got)
	}
}

// TestRetry_No4xxRetry verifies that a request rejected with a client
// error status is not repeated. A request the server understood and
// refused cannot succeed by being sent again.
func TestRetry_No4xxRetry(t *testing.T) {
	defer goleak.VerifyNone(t)

	tests := []struct {
		name   string
		status int
	}{
		{"not found", http.StatusNotFound},
		{"unauthorized", http.StatusUnauthorized},
		{"bad request", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, calls := flakyHandler(100, tt.status)
			srv := httptest.NewServer(handler)
			defer srv.Close()

			c := retryingClient(srv)

			if err := c.Get(context.Background(), "/blogs", nil, nil); err == nil {
				t.Fatal("Get() succeeded, want error")
			}
			if got := calls.Load(); got != 1 {
				t.Errorf("server saw %d requests for %d, want 1", got, tt.status)
			}
		})
	}
}

// TestRetry_WritesNeverRetried verifies that a failing write goes out
// exactly once, even for retryable-looking statuses.
func TestRetry_WritesNeverRetried(t *testing.T) {
	defer goleak.VerifyNone(t)

	handler, calls := flakyHandler(100, http.StatusInternalServerError)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	c := retryingClient(srv)

	if err := c.Post(context.Background(), "/blogs", map[string]string{"title": "x"}, nil); err == nil {
		t.Fatal("Post() succeeded, want error")
	}
	if err := c.Put(context.Background(), "/blogs/1", map[string]string{"title": "x"}, nil); err == nil {
		t.Fatal("Put() succeeded, want error")
	}
	if err := c.Delete(context.Background(), "/blogs/1", nil); err == nil {
		t.Fatal("Delete() succeeded, want error")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server saw %d requests for 3 writes, want 3", got)
	}
}

// TestRetry_NetworkErrorRetried verifies that connectivity failures
// consume the retry budget.
func TestRetry_NetworkErrorRetried(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL,
		WithReadAttempts(3),
		WithRetryBaseDelay(time.Millisecond),
		WithRetryMaxDelay(5*time.Millisecond),
	)
	attempts := 0
	err := c.doWithRetry(context.Background(), func() error {
		attempts++
		return c.do(context.Background(), http.MethodGet, "/blogs", nil, nil, nil, nil)
	})
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("error = %v, want network error", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

// TestRetryable classifies the taxonomy against the retry predicate.
func TestRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"timeout", &TimeoutError{Path: "/a"}, true},
		{"network", &NetworkError{Path: "/a", Cause: errors.New("refused")}, true},
		{"server 500", &ServerError{Status: 500, Path: "/a"}, true},
		{"server 503", &ServerError{Status: 503, Path: "/a"}, true},
		{"server 404", &ServerError{Status: 404, Path: "/a"}, false},
		{"server 400", &ServerError{Status: 400, Path: "/a"}, false},
		{"unauthorized", &UnauthorizedError{Path: "/a"}, false},
		{"plain error", errors.New("whatever"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := retryable(tt.err); got != tt.want {
				t.Errorf("retryable(%v) = %t, want %t", tt.err, got, tt.want)
			}
		})
	}
}
