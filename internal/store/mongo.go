package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/isacvale/fcc-timestamp/internal/shortener"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ShortURLCollection is the collection holding short URL documents.
const ShortURLCollection = "shorturls"

type shortURLDocument struct {
	Original  string    `bson:"original"`
	ShortCode string    `bson:"short_code"`
	CreatedAt time.Time `bson:"created_at"`
}

// MongoStore is a MongoDB implementation of shortener.Repository.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore creates a new MongoDB-backed URL store.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{collection: db.Collection(ShortURLCollection)}
}

// EnsureIndexes creates the unique short_code index and the created_at
// index used by the retention sweep.
func (m *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := m.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "short_code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "created_at", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("create shorturl indexes: %w", err)
	}

	return nil
}

func (m *MongoStore) Save(ctx context.Context, shortURL *shortener.ShortURL) error {
	_, err := m.collection.InsertOne(ctx, shortURLDocument{
		Original:  shortURL.Original,
		ShortCode: string(shortURL.Code),
		CreatedAt: shortURL.CreatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return shortener.ErrConflict
		}

		return err
	}

	return nil
}

func (m *MongoStore) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	var doc shortURLDocument

	err := m.collection.FindOne(ctx, bson.M{"short_code": string(code)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	return &shortener.ShortURL{
		Code:      shortener.Code(doc.ShortCode),
		Original:  doc.Original,
		CreatedAt: doc.CreatedAt,
	}, nil
}

func (m *MongoStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := m.collection.DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}

	return res.DeletedCount, nil
}

// Compile-time check.
var _ shortener.Repository = (*MongoStore)(nil)
