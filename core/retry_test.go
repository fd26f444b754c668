package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"network", &APIError{Message: "conn refused", Err: ErrNetwork}, true},
		{"timeout", &APIError{Message: "deadline", Err: ErrTimeout}, true},
		{"rate limited", &APIError{Status: 429, Err: ErrRateLimited}, true},
		{"server 500", &APIError{Status: 500, Err: ErrServer}, true},
		{"server 503", &APIError{Status: 503, Err: ErrServer}, true},
		{"context canceled", context.Canceled, false},
		{"context deadline", context.DeadlineExceeded, false},
		{"input error", NewInputError("empty"), false},
		{"auth error", &AuthError{Message: "no key"}, false},
		{"request error", &RequestError{Status: 400}, false},
		{"response error", &ResponseError{Field: "output"}, false},
		{"plain error", errors.New("whatever"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRetryableStatus(t *testing.T) {
	for status, want := range map[int]bool{400: false, 401: false, 404: false, 429: true, 500: true, 502: true, 599: true, 200: false} {
		if got := isRetryableStatus(status); got != want {
			t.Errorf("isRetryableStatus(%d) = %v, want %v", status, got, want)
		}
	}
}

func TestExponentialBackoff(t *testing.T) {
	retryable := &APIError{Status: 503, Err: ErrServer}

	t.Run("stops after max retries", func(t *testing.T) {
		p := NewRetryPolicy(RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond, Jitter: 0})
		if _, ok := p.NextDelay(0, retryable); !ok {
			t.Error("attempt 0 should retry")
		}
		if _, ok := p.NextDelay(1, retryable); !ok {
			t.Error("attempt 1 should retry")
		}
		if _, ok := p.NextDelay(2, retryable); ok {
			t.Error("attempt 2 should not retry")
		}
	})

	t.Run("delay grows exponentially without jitter", func(t *testing.T) {
		p := NewRetryPolicy(RetryConfig{MaxRetries: 5, BaseDelay: 100 * time.Millisecond, MaxDelay: time.Minute, Jitter: -1})
		// Jitter out of range falls back to the default, so build one
		// with an explicit tiny jitter-free config instead.
		p = &exponentialBackoff{cfg: RetryConfig{MaxRetries: 5, BaseDelay: 100 * time.Millisecond, MaxDelay: time.Minute}}

		d0, _ := p.NextDelay(0, retryable)
		d1, _ := p.NextDelay(1, retryable)
		d2, _ := p.NextDelay(2, retryable)
		if d0 != 100*time.Millisecond || d1 != 200*time.Millisecond || d2 != 400*time.Millisecond {
			t.Errorf("delays = %v, %v, %v; want 100ms, 200ms, 400ms", d0, d1, d2)
		}
	})

	t.Run("delay capped at max", func(t *testing.T) {
		p := &exponentialBackoff{cfg: RetryConfig{MaxRetries: 20, BaseDelay: time.Second, MaxDelay: 5 * time.Second}}
		d, ok := p.NextDelay(10, retryable)
		if !ok {
			t.Fatal("should retry")
		}
		if d > 5*time.Second {
			t.Errorf("delay = %v, want <= 5s", d)
		}
	})

	t.Run("jitter stays within bounds", func(t *testing.T) {
		p := NewRetryPolicy(RetryConfig{MaxRetries: 3, BaseDelay: 100 * time.Millisecond, MaxDelay: time.Minute, Jitter: 0.2})
		for i := 0; i < 50; i++ {
			d, ok := p.NextDelay(0, retryable)
			if !ok {
				t.Fatal("should retry")
			}
			if d < 80*time.Millisecond || d > 120*time.Millisecond {
				t.Fatalf("delay = %v, want within [80ms, 120ms]", d)
			}
		}
	})

	t.Run("non-retryable error stops immediately", func(t *testing.T) {
		p := DefaultRetryPolicy()
		if _, ok := p.NextDelay(0, &RequestError{Status: 400}); ok {
			t.Error("RequestError should not be retried")
		}
	})
}

func TestNoRetry(t *testing.T) {
	p := NoRetry()
	if _, ok := p.NextDelay(0, &APIError{Status: 503, Err: ErrServer}); ok {
		t.Error("NoRetry should never retry")
	}
}

func TestNewRetryPolicyDefaults(t *testing.T) {
	p := NewRetryPolicy(RetryConfig{})
	eb, ok := p.(*exponentialBackoff)
	if !ok {
		t.Fatal("expected *exponentialBackoff")
	}
	if eb.cfg.MaxRetries != 3 || eb.cfg.BaseDelay != time.Second || eb.cfg.MaxDelay != 30*time.Second || eb.cfg.Jitter != 0.2 {
		t.Errorf("defaults not applied: %+v", eb.cfg)
	}
}
