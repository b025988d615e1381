package dispatch

import (
	"context"
	"time"
)

// Pipeline defaults, matching the documented send-endpoint defaults.
const (
	DefaultBatchSize      = 100
	DefaultBatchDelay     = time.Second
	DefaultMaxConcurrency = 10
	DefaultRetries        = 2
	DefaultRetryBaseDelay = 500 * time.Millisecond
)

// Sender delivers one email and returns the provider message id.
type Sender func(ctx context.Context, email string) (messageID string, err error)

// Config bounds one dispatch run. BatchSize and BatchDelay bound
// sustained throughput; MaxConcurrency bounds simultaneous in-flight
// sends. The two compose to respect both burst and sustained provider
// limits.
type Config struct {
	BatchSize      int
	BatchDelay     time.Duration
	MaxConcurrency int
	Retries        int
	RetryBaseDelay time.Duration
	Sleep          SleepFunc
}

func (c Config) withDefaults() Config {
	if c.BatchSize < 1 {
		c.BatchSize = DefaultBatchSize
	}
	if c.MaxConcurrency < 1 {
		c.MaxConcurrency = DefaultMaxConcurrency
	}
	if c.Retries < 0 {
		c.Retries = 0
	}
	if c.RetryBaseDelay <= 0 {
		c.RetryBaseDelay = DefaultRetryBaseDelay
	}
	if c.Sleep == nil {
		c.Sleep = Sleep
	}
	return c
}

// Tally accumulates sent/failed counts across batches. It is threaded
// through each batch step and combined, never shared between goroutines.
type Tally struct {
	Sent   int
	Failed int
}

// Add returns the combination of two tallies.
func (t Tally) Add(o Tally) Tally {
	return Tally{Sent: t.Sent + o.Sent, Failed: t.Failed + o.Failed}
}

func tallyOf(outcomes []Outcome) Tally {
	var t Tally
	for _, o := range outcomes {
		if o.Success {
			t.Sent++
		} else {
			t.Failed++
		}
	}
	return t
}

// Run partitions recipients into contiguous batches of at most
// cfg.BatchSize, fans each batch out with bounded concurrency and
// retry-protected sends, and sleeps cfg.BatchDelay between consecutive
// batches (never after the last). Outcomes come back in input order.
//
// Cancellation is checked at every batch boundary; a cancelled run
// returns the outcomes gathered so far, which will be fewer than
// len(recipients).
func Run(ctx context.Context, recipients []string, send Sender, cfg Config) ([]Outcome, Tally) {
	cfg = cfg.withDefaults()

	outcomes := make([]Outcome, 0, len(recipients))
	var tally Tally
	for start := 0; start < len(recipients); start += cfg.BatchSize {
		if ctx.Err() != nil {
			break
		}
		end := start + cfg.BatchSize
		if end > len(recipients) {
			end = len(recipients)
		}
		batch := recipients[start:end]

		handler := func(ctx context.Context, email string) (string, error) {
			return SendWithRetry(ctx, func(ctx context.Context) (string, error) {
				return send(ctx, email)
			}, cfg.Retries, cfg.RetryBaseDelay, cfg.Sleep)
		}
		batchOutcomes := RunWithConcurrency(ctx, batch, handler, cfg.MaxConcurrency)

		tally = tally.Add(tallyOf(batchOutcomes))
		outcomes = append(outcomes, batchOutcomes...)

		if end < len(recipients) && cfg.BatchDelay > 0 {
			cfg.Sleep(ctx, cfg.BatchDelay)
		}
	}
	return outcomes, tally
}
