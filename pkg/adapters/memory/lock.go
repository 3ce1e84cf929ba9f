// Package memory implements ports.InstallLocker with in-process locks.
// It is the default when no Redis is configured: one binary, one host.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/spade/pkg/ports"
)

// Locker serializes installs per key inside a single process.
// Safe for concurrent use.
type Locker struct {
	mu   sync.Mutex
	held map[string]chan struct{}
}

// NewLocker creates a new in-process locker.
func NewLocker() *Locker {
	return &Locker{
		held: make(map[string]chan struct{}),
	}
}

// Lock blocks until the lock for key is free or ctx is canceled.
// The TTL is ignored: an in-process holder cannot outlive the process.
func (l *Locker) Lock(ctx context.Context, key string, _ time.Duration) (ports.UnlockFunc, error) {
	for {
		l.mu.Lock()
		wait, taken := l.held[key]
		if !taken {
			released := make(chan struct{})
			l.held[key] = released
			l.mu.Unlock()

			var once sync.Once
			return func(context.Context) error {
				once.Do(func() {
					l.mu.Lock()
					delete(l.held, key)
					l.mu.Unlock()
					close(released)
				})
				return nil
			}, nil
		}
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-wait:
			// Holder released; race for it again.
		}
	}
}
