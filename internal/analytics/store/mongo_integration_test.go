//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/isacvale/fcc-timestamp/internal/analytics"
	"github.com/isacvale/fcc-timestamp/internal/analytics/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestMongoIntegration(t *testing.T) {
	ctx := context.Background()

	container, err := mongodb.RunContainer(ctx, testcontainers.WithImage("mongo:6"))
	if err != nil {
		t.Skipf("MongoDB container not available: %v", err)
	}

	t.Cleanup(func() { _ = container.Terminate(ctx) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)

	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	db := client.Database("analytics_test")
	events := store.NewMongo(db)
	now := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, events.SaveURLCreated(ctx, &analytics.URLCreatedEvent{
		Code:      "abc12345",
		Original:  "https://example.com",
		CreatedAt: now,
		ClientIP:  "10.0.0.1",
	}))
	require.NoError(t, events.SaveURLAccessed(ctx, &analytics.URLAccessedEvent{
		Code:       "abc12345",
		Target:     "https://example.com",
		AccessedAt: now,
		Referrer:   "https://referrer.com",
	}))

	collection := db.Collection(store.EventsCollection)

	count, err := collection.CountDocuments(ctx, bson.M{"code": "abc12345"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	var accessed bson.M
	require.NoError(t, collection.FindOne(ctx, bson.M{"type": analytics.TopicURLAccessed}).Decode(&accessed))
	assert.Equal(t, "https://referrer.com", accessed["referrer"])
	assert.NotContains(t, accessed, "client_ip")
}
