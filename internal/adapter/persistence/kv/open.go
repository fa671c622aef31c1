package kv

import (
	"context"
	"fmt"

	"orcafacil/internal/config"
	"orcafacil/internal/infrastructure/database"
	"orcafacil/internal/infrastructure/locking"
	"orcafacil/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

// Backend is an opened key-value medium plus its optional mutation lock.
type Backend struct {
	Store  interfaces.IKeyValueStore
	Locker interfaces.ILocker
	close  func() error
}

// Close releases the underlying client, if any.
func (b *Backend) Close() error {
	if b == nil || b.close == nil {
		return nil
	}
	return b.close()
}

// Open connects the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StoreConfig, logger *logrus.Logger) (*Backend, error) {
	entry := logger.WithField("driver", cfg.Driver)

	switch cfg.Driver {
	case config.StoreDriverMemory, "":
		entry.Info("[store][kv] using in-memory store")
		return &Backend{Store: NewMemoryStore()}, nil

	case config.StoreDriverRedis:
		rdb, err := database.ConnectRedis(ctx, cfg)
		if err != nil {
			return nil, err
		}
		b := &Backend{Store: NewRedisStore(rdb, cfg.Prefix), close: rdb.Close}
		if cfg.Locking {
			b.Locker = locking.NewRedisLocker(rdb, cfg.Prefix, cfg.LockTTL, logger)
			entry.Info("[store][kv] mutation locking enabled")
		}
		entry.WithField("addr", cfg.RedisAddress).Info("[store][kv] connected")
		return b, nil

	case config.StoreDriverDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		entry.WithField("table", cfg.Table).Info("[store][kv] connected")
		return &Backend{Store: NewDynamoDBStore(ddb, cfg.Table, cfg.Prefix)}, nil

	case config.StoreDriverMongoDB:
		client, coll, err := database.ConnectMongoDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		entry.WithField("collection", cfg.MongoCollection).Info("[store][kv] connected")
		return &Backend{
			Store: NewMongoStore(coll, cfg.Prefix),
			close: func() error { return client.Disconnect(context.Background()) },
		}, nil

	case config.StoreDriverPostgres:
		pool, err := database.ConnectPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		store, err := NewPostgresStore(ctx, pool, cfg.Table, cfg.Prefix)
		if err != nil {
			pool.Close()
			return nil, err
		}
		entry.WithField("table", cfg.Table).Info("[store][kv] connected")
		return &Backend{Store: store, close: func() error { pool.Close(); return nil }}, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
