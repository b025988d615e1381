package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func recipients(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("r%d@example.com", i)
	}
	return out
}

// TestBatchDelayCount checks ceil(N/B)-1 inter-batch delays for a range
// of shapes, including the N <= B zero-delay case.
func TestBatchDelayCount(t *testing.T) {
	cases := []struct {
		n, b       int
		wantDelays int
	}{
		{n: 250, b: 100, wantDelays: 2},
		{n: 100, b: 100, wantDelays: 0},
		{n: 1, b: 100, wantDelays: 0},
		{n: 101, b: 100, wantDelays: 1},
		{n: 10, b: 3, wantDelays: 3},
	}

	for _, tc := range cases {
		var mu sync.Mutex
		var delays []time.Duration
		cfg := Config{
			BatchSize:      tc.b,
			BatchDelay:     time.Second,
			MaxConcurrency: 4,
			Retries:        0,
			Sleep: func(ctx context.Context, d time.Duration) {
				mu.Lock()
				delays = append(delays, d)
				mu.Unlock()
			},
		}
		send := func(ctx context.Context, email string) (string, error) { return "mid", nil }

		outcomes, tally := Run(context.Background(), recipients(tc.n), send, cfg)
		if len(outcomes) != tc.n || tally.Sent != tc.n {
			t.Fatalf("n=%d b=%d: got %d outcomes, %d sent", tc.n, tc.b, len(outcomes), tally.Sent)
		}
		if len(delays) != tc.wantDelays {
			t.Fatalf("n=%d b=%d: got %d inter-batch delays, want %d", tc.n, tc.b, len(delays), tc.wantDelays)
		}
		for _, d := range delays {
			if d != time.Second {
				t.Fatalf("unexpected delay %v", d)
			}
		}
	}
}

// TestBatchOutcomesKeepInputOrder checks ordering across batch seams.
func TestBatchOutcomesKeepInputOrder(t *testing.T) {
	in := recipients(25)
	cfg := Config{BatchSize: 10, MaxConcurrency: 5, Sleep: func(context.Context, time.Duration) {}}
	send := func(ctx context.Context, email string) (string, error) { return email, nil }

	outcomes, _ := Run(context.Background(), in, send, cfg)
	for i, o := range outcomes {
		if o.Email != in[i] {
			t.Fatalf("outcome %d is %s, want %s", i, o.Email, in[i])
		}
	}
}

// TestBatchAccumulatesFailures checks that failed sends are counted and
// never abort the run.
func TestBatchAccumulatesFailures(t *testing.T) {
	in := recipients(30)
	bad := map[string]bool{in[3]: true, in[17]: true, in[29]: true}
	cfg := Config{BatchSize: 10, MaxConcurrency: 3, Retries: 1, RetryBaseDelay: time.Millisecond,
		Sleep: func(context.Context, time.Duration) {}}
	send := func(ctx context.Context, email string) (string, error) {
		if bad[email] {
			return "", errors.New("permanent failure")
		}
		return "mid", nil
	}

	outcomes, tally := Run(context.Background(), in, send, cfg)
	if tally.Sent != 27 || tally.Failed != 3 {
		t.Fatalf("tally = %+v, want 27/3", tally)
	}
	for i, o := range outcomes {
		if bad[in[i]] == o.Success {
			t.Fatalf("outcome %d mismatched: %+v", i, o)
		}
	}
}

// TestBatchRetriesBeforeFailing checks sends flaky for exactly R
// attempts still succeed inside the batch pipeline.
func TestBatchRetriesBeforeFailing(t *testing.T) {
	var mu sync.Mutex
	attempts := map[string]int{}
	cfg := Config{BatchSize: 5, MaxConcurrency: 2, Retries: 2, RetryBaseDelay: time.Millisecond,
		Sleep: func(context.Context, time.Duration) {}}
	send := func(ctx context.Context, email string) (string, error) {
		mu.Lock()
		attempts[email]++
		n := attempts[email]
		mu.Unlock()
		if n <= 2 {
			return "", errors.New("throttled")
		}
		return "mid", nil
	}

	_, tally := Run(context.Background(), recipients(5), send, cfg)
	if tally.Failed != 0 || tally.Sent != 5 {
		t.Fatalf("tally = %+v, want all sent after retries", tally)
	}
}

// TestBatchStopsAtBoundaryOnCancel checks a cancelled context halts the
// run between batches with partial outcomes.
func TestBatchStopsAtBoundaryOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := Config{BatchSize: 10, BatchDelay: time.Second, MaxConcurrency: 2,
		Sleep: func(ctx context.Context, d time.Duration) {
			// Cancel during the first inter-batch pause.
			cancel()
		}}
	send := func(ctx context.Context, email string) (string, error) { return "mid", nil }

	outcomes, tally := Run(ctx, recipients(30), send, cfg)
	if len(outcomes) != 10 || tally.Sent != 10 {
		t.Fatalf("got %d outcomes (%d sent), want first batch only", len(outcomes), tally.Sent)
	}
}
