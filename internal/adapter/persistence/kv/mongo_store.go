package kv

import (
	"context"
	"errors"

	"orcafacil/internal/usecase/interfaces"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type kvDocument struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

// MongoCollection is the subset of *mongo.Collection the store uses.
type MongoCollection interface {
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
	ReplaceOne(ctx context.Context, filter any, replacement any, opts ...options.Lister[options.ReplaceOptions]) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter any, opts ...options.Lister[options.DeleteOneOptions]) (*mongo.DeleteResult, error)
}

// MongoStore keeps one document per key, using the key as _id.
type MongoStore struct {
	coll   MongoCollection
	prefix string
}

var _ interfaces.IKeyValueStore = (*MongoStore)(nil)

func NewMongoStore(coll MongoCollection, prefix string) *MongoStore {
	return &MongoStore{coll: coll, prefix: prefix}
}

func (s *MongoStore) Get(ctx context.Context, key string) (string, bool, error) {
	var doc kvDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": s.prefix + key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return doc.Value, true, nil
}

func (s *MongoStore) Set(ctx context.Context, key, value string) error {
	doc := kvDocument{Key: s.prefix + key, Value: value}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.Key}, doc, options.Replace().SetUpsert(true))
	return err
}

func (s *MongoStore) Remove(ctx context.Context, key string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": s.prefix + key})
	return err
}
