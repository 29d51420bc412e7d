// Package redis provides the per-event admission lock that serializes the
// registration workflow's count-check-insert sequence, closing the
// overbooking race between concurrent registrations for the same event.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrLockNotAcquired is returned when the lock stays held through every
// retry attempt.
var ErrLockNotAcquired = errors.New("event admission lock not acquired")

type Lock struct {
	Client     *redis.Client
	TTL        time.Duration
	Retries    int
	RetryDelay time.Duration
}

func NewLock(client *redis.Client, ttl time.Duration, retries int, retryDelay time.Duration) *Lock {
	return &Lock{Client: client, TTL: ttl, Retries: retries, RetryDelay: retryDelay}
}

func admissionKey(eventID int64) string {
	return fmt.Sprintf("event_admission:%d", eventID)
}

// AcquireEventLock takes the admission lock for an event, retrying with a
// fixed delay while another registration holds it. The returned token
// identifies this holder; release requires the same token. The TTL bounds
// how long a crashed holder can block admissions.
func (l *Lock) AcquireEventLock(ctx context.Context, eventID int64) (string, error) {
	token := uuid.NewString()
	key := admissionKey(eventID)

	for attempt := 0; attempt <= l.Retries; attempt++ {
		ok, err := l.Client.SetNX(ctx, key, token, l.TTL).Result()
		if err != nil {
			return "", err
		}
		if ok {
			return token, nil
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(l.RetryDelay):
		}
	}
	return "", ErrLockNotAcquired
}

// ReleaseEventLock drops the lock if this holder still owns it. A lock that
// expired and was re-acquired by someone else is left alone.
func (l *Lock) ReleaseEventLock(ctx context.Context, eventID int64, token string) error {
	key := admissionKey(eventID)

	val, err := l.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil // already expired
	}
	if err != nil {
		return err
	}
	if val == token {
		return l.Client.Del(ctx, key).Err()
	}
	return nil
}
