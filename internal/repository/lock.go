package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const lockRetryInterval = 20 * time.Millisecond

var ErrLockTimeout = errors.New("timed out acquiring game lock")

// releaseScript deletes the lock only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

type UnlockFunc func(ctx context.Context) error

// Locker is a per-key exclusive lock built on SET NX PX.
type Locker struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewLocker(client *redis.Client, prefix string, ttl time.Duration) *Locker {
	return &Locker{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Lock blocks until key is acquired, ctx is done or the lock ttl elapses.
func (that *Locker) Lock(ctx context.Context, key string) (UnlockFunc, error) {
	lockKey := that.prefix + key
	token := uuid.NewString()

	deadline := time.NewTimer(that.ttl)
	defer deadline.Stop()

	ticker := time.NewTicker(lockRetryInterval)
	defer ticker.Stop()

	for {
		acquired, err := that.client.SetNX(ctx, lockKey, token, that.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", lockKey, err)
		}

		if acquired {
			return func(ctx context.Context) error {
				if err := releaseScript.Run(ctx, that.client, []string{lockKey}, token).Err(); err != nil {
					return fmt.Errorf("failed to release lock %s: %w", lockKey, err)
				}
				return nil
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
		case <-ticker.C:
		}
	}
}
