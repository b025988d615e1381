package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"
)

// recordingSleep captures requested delays instead of waiting.
func recordingSleep(delays *[]time.Duration) SleepFunc {
	return func(ctx context.Context, d time.Duration) {
		*delays = append(*delays, d)
	}
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	var delays []time.Duration
	attempts := 0
	op := func(ctx context.Context) (string, error) {
		attempts++
		if attempts <= 2 {
			return "", errors.New("throttled")
		}
		return "msg-1", nil
	}

	id, err := SendWithRetry(context.Background(), op, 2, 500*time.Millisecond, recordingSleep(&delays))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "msg-1" {
		t.Fatalf("got id %q", id)
	}
	if attempts != 3 {
		t.Fatalf("got %d attempts, want 3", attempts)
	}
	// Backoff doubles per attempt: 500ms then 1s.
	want := []time.Duration{500 * time.Millisecond, time.Second}
	if len(delays) != len(want) {
		t.Fatalf("got %d sleeps, want %d", len(delays), len(want))
	}
	for i := range want {
		if delays[i] != want[i] {
			t.Fatalf("sleep %d was %v, want %v", i, delays[i], want[i])
		}
	}
}

func TestRetryPropagatesFinalFailure(t *testing.T) {
	var delays []time.Duration
	attempts := 0
	lastErr := errors.New("hard bounce")
	op := func(ctx context.Context) (string, error) {
		attempts++
		return "", lastErr
	}

	_, err := SendWithRetry(context.Background(), op, 2, time.Millisecond, recordingSleep(&delays))
	if !errors.Is(err, lastErr) {
		t.Fatalf("got %v, want last failure", err)
	}
	if attempts != 3 {
		t.Fatalf("got %d attempts, want retries+1 = 3", attempts)
	}
	if len(delays) != 2 {
		t.Fatalf("got %d backoff sleeps, want 2", len(delays))
	}
}

func TestRetryZeroRetriesSingleAttempt(t *testing.T) {
	attempts := 0
	op := func(ctx context.Context) (string, error) {
		attempts++
		return "", errors.New("nope")
	}
	_, err := SendWithRetry(context.Background(), op, 0, time.Millisecond, nil)
	if err == nil || attempts != 1 {
		t.Fatalf("attempts=%d err=%v, want exactly one failing attempt", attempts, err)
	}
}

func TestRetryStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	op := func(ctx context.Context) (string, error) {
		attempts++
		cancel()
		return "", errors.New("transient")
	}

	_, err := SendWithRetry(ctx, op, 5, time.Millisecond, recordingSleep(&[]time.Duration{}))
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("got %d attempts after cancel, want 1", attempts)
	}
}
