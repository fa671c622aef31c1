package kv

import (
	"context"
	"errors"

	"orcafacil/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each key as a plain Redis string. Keys are namespaced by prefix.
type RedisStore struct {
	rdb    redis.UniversalClient
	prefix string
}

var _ interfaces.IKeyValueStore = (*RedisStore)(nil)

func NewRedisStore(rdb redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.rdb.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.prefix+key).Err()
}
