package lock

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotObtained is returned when a lock is held by someone else past the wait budget
var ErrNotObtained = errors.New("lock not obtained")

// Unlock releases a previously obtained lock
type Unlock func(ctx context.Context) error

// Locker serializes work on a key across callers (and instances, for the Redis implementation)
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (Unlock, error)
}

// LocalLocker is an in-process keyed mutex used when Redis is disabled and in tests.
// The ttl is ignored; waiting is bounded by the context and maxWait.
// A key's entry lives only while someone holds or waits on it.
type LocalLocker struct {
	mu      sync.Mutex
	keys    map[string]*slot
	maxWait time.Duration
}

type slot struct {
	ch   chan struct{}
	refs int
}

// NewLocalLocker creates a keyed in-process locker
func NewLocalLocker(maxWait time.Duration) *LocalLocker {
	if maxWait <= 0 {
		maxWait = 5 * time.Second
	}
	return &LocalLocker{
		keys:    make(map[string]*slot),
		maxWait: maxWait,
	}
}

func (l *LocalLocker) acquire(key string) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.keys[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.keys[key] = s
	}
	s.refs++
	return s
}

func (l *LocalLocker) release(key string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(l.keys, key)
	}
}

func (l *LocalLocker) Obtain(ctx context.Context, key string, _ time.Duration) (Unlock, error) {
	s := l.acquire(key)
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case s.ch <- struct{}{}:
	case <-timer.C:
		l.release(key, s)
		return nil, ErrNotObtained
	case <-ctx.Done():
		l.release(key, s)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			<-s.ch
			l.release(key, s)
		})
		return nil
	}, nil
}

func (l *LocalLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.keys)
}
