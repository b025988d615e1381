package dispatch

import (
	"context"
	"errors"
	"time"
)

// SleepFunc suspends the caller for d or until ctx is cancelled. It is
// injected so tests run without real delays.
type SleepFunc func(ctx context.Context, d time.Duration)

// Sleep is the production SleepFunc.
func Sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// SendWithRetry runs op and retries failures with exponential backoff:
// the wait before retry n (counting from zero) is baseDelay * 2^n. Total
// attempts are retries+1. When they all fail, the last error is
// propagated. Cancellation is honoured before every backoff sleep.
func SendWithRetry(ctx context.Context, op func(ctx context.Context) (string, error), retries int, baseDelay time.Duration, sleep SleepFunc) (string, error) {
	if retries < 0 {
		retries = 0
	}
	if sleep == nil {
		sleep = Sleep
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		id, err := op(ctx)
		if err == nil {
			return id, nil
		}
		lastErr = err
		if attempt == retries || ctx.Err() != nil {
			break
		}
		sleep(ctx, baseDelay*time.Duration(1<<attempt))
	}
	if lastErr == nil {
		lastErr = errors.New("send failed after retries")
	}
	return "", lastErr
}
