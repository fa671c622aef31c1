package database

import (
	"context"
	"fmt"

	"orcafacil/internal/config"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis opens a Redis client and checks it with a PING.
func ConnectRedis(ctx context.Context, cfg config.StoreConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.RedisAddress, err)
	}
	return rdb, nil
}
