package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases an install lock.
type UnlockFunc func(ctx context.Context) error

// InstallLocker serializes the check-then-act portion of an install so
// concurrent callers do not race to install the same prerequisite.
// Implementations may be in-process (mutex map) or distributed (Redis),
// the latter coordinating a fleet of agents sharing one package cache.
type InstallLocker interface {
	// Lock blocks until the lock for key is acquired, the context is
	// canceled, or the TTL expires (implementation specific). The returned
	// UnlockFunc MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
