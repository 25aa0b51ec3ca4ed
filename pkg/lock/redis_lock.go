package lock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrNotAcquired = errors.New("lock not acquired")

// releaseScript deletes the key only if it still holds our token, so an
// expired lock re-acquired by someone else is never released by us.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// Mutex is one held lock. Release it when done.
type Mutex interface {
	Release(ctx context.Context) error
}

// Locker hands out short-lived mutexes backed by Redis SETNX.
type Locker struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewLocker(rdb *redis.Client, ttl time.Duration) *Locker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Locker{rdb: rdb, ttl: ttl}
}

type redisMutex struct {
	rdb   *redis.Client
	key   string
	token string
}

// Acquire tries to take the named lock, retrying until the context is done.
func (l *Locker) Acquire(ctx context.Context, key string) (Mutex, error) {
	token := uuid.NewString()

	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return &redisMutex{rdb: l.rdb, key: key, token: token}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ErrNotAcquired
		case <-time.After(50 * time.Millisecond):
		}
	}
}

// TryAcquire takes the lock or fails immediately with ErrNotAcquired.
func (l *Locker) TryAcquire(ctx context.Context, key string) (Mutex, error) {
	token := uuid.NewString()
	ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotAcquired
	}
	return &redisMutex{rdb: l.rdb, key: key, token: token}, nil
}

// Release frees the lock if we still own it.
func (m *redisMutex) Release(ctx context.Context) error {
	return m.rdb.Eval(ctx, releaseScript, []string{m.key}, m.token).Err()
}
