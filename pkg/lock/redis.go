package lock

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// RedisLocker obtains distributed locks through redislock, retrying linearly until maxWait
type RedisLocker struct {
	client  *redislock.Client
	backoff time.Duration
	retries int
}

// NewRedisLocker creates a locker backed by the given Redis client
func NewRedisLocker(rdb *redis.Client, maxWait time.Duration) *RedisLocker {
	backoff := 50 * time.Millisecond
	retries := int(maxWait / backoff)
	if retries < 1 {
		retries = 1
	}
	return &RedisLocker{
		client:  redislock.New(rdb),
		backoff: backoff,
		retries: retries,
	}
}

func (l *RedisLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (Unlock, error) {
	lk, err := l.client.Obtain(ctx, key, ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(l.backoff), l.retries),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrNotObtained
	}
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context) error {
		err := lk.Release(ctx)
		if errors.Is(err, redislock.ErrLockNotHeld) {
			return nil
		}
		return err
	}, nil
}
