// Package dispatch implements the newsletter fan-out pipeline: a
// concurrency-bounded worker pool, per-recipient retry with exponential
// backoff and a batch scheduler that paces throughput against provider
// rate limits. The package is transport-agnostic; callers supply a send
// function per recipient.
package dispatch

import (
	"context"
	"sync"
	"sync/atomic"
)

// Outcome is the result of processing one recipient. Outcomes are stored
// at the recipient's original index, so output order always matches input
// order regardless of completion order.
type Outcome struct {
	Email     string
	Success   bool
	MessageID string
	Error     string
}

// Handler performs the work for a single recipient and returns a provider
// message id on success.
type Handler func(ctx context.Context, email string) (messageID string, err error)

// RunWithConcurrency runs handler over every email with at most
// maxConcurrency invocations in flight. A handler failure for one
// recipient never aborts the rest; it is captured as a failed Outcome at
// that recipient's position. Each worker claims the next unclaimed index
// off a shared atomic cursor, which guarantees every item is processed
// exactly once.
func RunWithConcurrency(ctx context.Context, emails []string, handler Handler, maxConcurrency int) []Outcome {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	results := make([]Outcome, len(emails))
	if len(emails) == 0 {
		return results
	}

	workers := maxConcurrency
	if len(emails) < workers {
		workers = len(emails)
	}

	var cursor atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				i := int(cursor.Add(1)) - 1
				if i >= len(emails) {
					return
				}
				email := emails[i]
				id, err := handler(ctx, email)
				if err != nil {
					msg := err.Error()
					if msg == "" {
						msg = "unknown error"
					}
					results[i] = Outcome{Email: email, Error: msg}
					continue
				}
				results[i] = Outcome{Email: email, Success: true, MessageID: id}
			}
		}()
	}
	wg.Wait()
	return results
}
