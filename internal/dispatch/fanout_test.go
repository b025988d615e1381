package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// TestFanOutOrderAndExactlyOnce checks that every item is handled exactly
// once and that results line up with the input positions even when
// completion order is scrambled.
func TestFanOutOrderAndExactlyOnce(t *testing.T) {
	const n = 200
	emails := make([]string, n)
	for i := range emails {
		emails[i] = fmt.Sprintf("user%d@example.com", i)
	}

	var calls sync.Map
	handler := func(ctx context.Context, email string) (string, error) {
		if _, loaded := calls.LoadOrStore(email, true); loaded {
			t.Errorf("handler called twice for %s", email)
		}
		// Scramble completion order a little.
		time.Sleep(time.Duration(len(email)%3) * time.Millisecond)
		return "id-" + email, nil
	}

	results := RunWithConcurrency(context.Background(), emails, handler, 10)
	if len(results) != n {
		t.Fatalf("got %d results, want %d", len(results), n)
	}
	for i, r := range results {
		if r.Email != emails[i] {
			t.Fatalf("result %d holds %q, want %q", i, r.Email, emails[i])
		}
		if !r.Success || r.MessageID != "id-"+emails[i] {
			t.Fatalf("result %d not successful: %+v", i, r)
		}
	}
	count := 0
	calls.Range(func(_, _ any) bool { count++; return true })
	if count != n {
		t.Fatalf("handler invoked for %d items, want %d", count, n)
	}
}

// TestFanOutBoundsConcurrency verifies at most K handler invocations are
// in flight at any instant.
func TestFanOutBoundsConcurrency(t *testing.T) {
	const n, k = 100, 7

	var inFlight, peak atomic.Int64
	handler := func(ctx context.Context, email string) (string, error) {
		cur := inFlight.Add(1)
		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		inFlight.Add(-1)
		return "ok", nil
	}

	emails := make([]string, n)
	for i := range emails {
		emails[i] = fmt.Sprintf("u%d@example.com", i)
	}
	RunWithConcurrency(context.Background(), emails, handler, k)

	if got := peak.Load(); got > k {
		t.Fatalf("observed %d concurrent handlers, bound is %d", got, k)
	}
}

// TestFanOutIsolatesFailures checks one failing item does not abort the
// batch and that the error message lands at the right index.
func TestFanOutIsolatesFailures(t *testing.T) {
	emails := []string{"a@x.com", "b@x.com", "c@x.com"}
	handler := func(ctx context.Context, email string) (string, error) {
		if email == "b@x.com" {
			return "", errors.New("mailbox full")
		}
		return "mid", nil
	}

	results := RunWithConcurrency(context.Background(), emails, handler, 2)
	if !results[0].Success || !results[2].Success {
		t.Fatalf("neighbouring items aborted: %+v", results)
	}
	if results[1].Success || results[1].Error != "mailbox full" {
		t.Fatalf("failure not captured at index 1: %+v", results[1])
	}
}

// TestFanOutEmptyErrorGetsFallbackText covers providers that return an
// error with no message.
func TestFanOutEmptyErrorGetsFallbackText(t *testing.T) {
	handler := func(ctx context.Context, email string) (string, error) {
		return "", errors.New("")
	}
	results := RunWithConcurrency(context.Background(), []string{"a@x.com"}, handler, 1)
	if results[0].Error != "unknown error" {
		t.Fatalf("got error text %q, want fallback", results[0].Error)
	}
}

func TestFanOutZeroItems(t *testing.T) {
	results := RunWithConcurrency(context.Background(), nil, func(ctx context.Context, email string) (string, error) {
		t.Fatal("handler must not run")
		return "", nil
	}, 5)
	if len(results) != 0 {
		t.Fatalf("got %d results for empty input", len(results))
	}
}
