// Package redis implements ports.InstallLocker on Redis, letting a fleet of
// agents sharing one Redis coordinate installs so only one of them runs the
// platform installer for a given tool.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/spade/pkg/ports"
)

// ErrLockAcquire is returned when the lock cannot be acquired.
var ErrLockAcquire = errors.New("failed to acquire install lock")

// Locker implements ports.InstallLocker using Redis SET NX PX.
type Locker struct {
	client  *backend.Client
	prefix  string
	backoff time.Duration
}

// Option configures the Locker.
type Option func(*Locker)

// WithBackoff sets the polling interval while waiting for a held lock.
func WithBackoff(d time.Duration) Option {
	return func(l *Locker) {
		l.backoff = d
	}
}

// NewLocker creates a new Redis locker. Keys become "<prefix>install:<tool>".
func NewLocker(client *backend.Client, prefix string, opts ...Option) *Locker {
	l := &Locker{
		client:  client,
		prefix:  prefix,
		backoff: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Lock acquires the install lock for key, polling until it succeeds or ctx
// is canceled. The TTL bounds how long a crashed holder can block others.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	lockKey := l.prefix + "install:" + key

	// The token ties the unlock to this acquisition so an expired lock taken
	// over by someone else is never deleted by us.
	token := fmt.Sprintf("%d", time.Now().UnixNano())

	ticker := time.NewTicker(l.backoff)
	defer ticker.Stop()

	for {
		acquired, err := l.client.SetNX(ctx, lockKey, token, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLockAcquire, err)
		}
		if acquired {
			return func(ctx context.Context) error {
				// Compare-and-delete so only the token holder releases.
				script := `
					if redis.call("get", KEYS[1]) == ARGV[1] then
						return redis.call("del", KEYS[1])
					else
						return 0
					end
				`
				return l.client.Eval(ctx, script, []string{lockKey}, token).Err()
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			// Holder still busy; try again.
		}
	}
}
