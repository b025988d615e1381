package port

import "context"

// DispatchLock serialises dispatch runs per newsletter across processes.
// Acquire returns ErrDispatchRunning when another run holds the lock.
type DispatchLock interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}
