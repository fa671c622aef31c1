package locking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orcafacil/internal/usecase/interfaces"

	"github.com/bsm/redislock"
	"github.com/sirupsen/logrus"
)

// ErrLockBusy is returned when the lock could not be obtained before retries ran out.
var ErrLockBusy = errors.New("store key is locked by another writer")

// RedisLocker serializes read-modify-write cycles on a store key with a Redis lock.
type RedisLocker struct {
	client       *redislock.Client
	ttl          time.Duration
	retryBackoff time.Duration
	maxRetries   int
	prefix       string
	logger       *logrus.Logger
}

var _ interfaces.ILocker = (*RedisLocker)(nil)

// NewRedisLocker locks keys as "lock:<prefix><key>", matching the namespace of the store it guards.
func NewRedisLocker(rdb redislock.RedisClient, prefix string, ttl time.Duration, logger *logrus.Logger) *RedisLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &RedisLocker{
		client:       redislock.New(rdb),
		ttl:          ttl,
		retryBackoff: 50 * time.Millisecond,
		maxRetries:   int(ttl / (50 * time.Millisecond)),
		prefix:       prefix,
		logger:       logger,
	}
}

func (l *RedisLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	lockKey := fmt.Sprintf("lock:%s%s", l.prefix, key)
	lock, err := l.client.Obtain(ctx, lockKey, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(l.retryBackoff), l.maxRetries),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		l.log().WithField("key", lockKey).Warn("[store][lock] could not obtain lock")
		return ErrLockBusy
	}
	if err != nil {
		return fmt.Errorf("obtain %s: %w", lockKey, err)
	}
	defer func() {
		if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.log().WithField("key", lockKey).WithError(err).Warn("[store][lock] release failed")
		}
	}()

	return fn(ctx)
}

func (l *RedisLocker) log() *logrus.Logger {
	if l.logger == nil {
		return logrus.StandardLogger()
	}
	return l.logger
}
