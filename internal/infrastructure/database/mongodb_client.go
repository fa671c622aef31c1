package database

import (
	"context"
	"fmt"
	"time"

	"orcafacil/internal/config"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const MongoTimeout = 20 * time.Second

// ConnectMongoDB connects to MONGODB_URI and returns the configured key-value collection.
func ConnectMongoDB(ctx context.Context, cfg config.StoreConfig) (*mongo.Client, *mongo.Collection, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, MongoTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return client, client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection), nil
}
