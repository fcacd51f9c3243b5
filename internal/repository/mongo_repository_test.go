package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nasif952/La-valecia/internal/domain"
)

func setupTestDB(t *testing.T) (CartRepository, *mongo.Database, func()) {
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	repo := NewMongoRepository(db)

	mongoRepo := repo.(*mongoRepository)
	err = mongoRepo.CreateIndexes(ctx)
	require.NoError(t, err)

	cleanup := func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return repo, db, cleanup
}

func TestGetCart_NotFound(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	cart, err := repo.GetCart(context.Background(), "nonexistent")

	assert.ErrorIs(t, err, ErrCartNotFound)
	assert.Nil(t, cart)
}

func TestUpsertCart_RoundTrip(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	cart := domain.NewCart("user123")
	require.NoError(t, cart.AddLine("prod-hoodie-drop", "var-hoodie-l-gray", 8900, 3, 2))

	err := repo.UpsertCart(ctx, cart)
	require.NoError(t, err)

	fetched, err := repo.GetCart(ctx, "user123")
	require.NoError(t, err)
	assert.Equal(t, "user123", fetched.UserID)
	require.Len(t, fetched.Lines, 1)
	assert.Equal(t, cart.Lines[0].ID, fetched.Lines[0].ID)
	assert.Equal(t, int64(8900), fetched.Lines[0].UnitPriceCents)
	assert.Equal(t, 2, fetched.Lines[0].Quantity)
	assert.Equal(t, 3, fetched.Lines[0].StockCeiling)
}

func TestUpsertCart_ReplacesSnapshot(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	cart := domain.NewCart("user123")
	require.NoError(t, cart.AddLine("prod-hoodie-drop", "var-hoodie-l-gray", 8900, 3, 1))
	require.NoError(t, repo.UpsertCart(ctx, cart))

	// Mutate and write the full snapshot back
	require.NoError(t, cart.SetQuantity(cart.Lines[0].ID, 3))
	require.NoError(t, cart.AddLine("prod-tee-classic", "var-tee-m-white", 3900, 25, 1))
	require.NoError(t, repo.UpsertCart(ctx, cart))

	fetched, err := repo.GetCart(ctx, "user123")
	require.NoError(t, err)
	assert.Len(t, fetched.Lines, 2)
	assert.Equal(t, 3, fetched.Lines[0].Quantity)
}

func TestDeleteCart(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	cart := domain.NewCart("user123")
	require.NoError(t, cart.AddLine("prod-cap-logo", "var-cap-os-black", 2500, 40, 1))
	require.NoError(t, repo.UpsertCart(ctx, cart))

	require.NoError(t, repo.DeleteCart(ctx, "user123"))

	_, err := repo.GetCart(ctx, "user123")
	assert.ErrorIs(t, err, ErrCartNotFound)

	// deleting again reports not found
	assert.ErrorIs(t, repo.DeleteCart(ctx, "user123"), ErrCartNotFound)
}

func TestGetCart_CorruptDocument(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	// Write a document whose lines field no longer matches the schema.
	_, err := db.Collection("carts").InsertOne(ctx, bson.M{
		"user_id": "user123",
		"lines":   "not an array",
	})
	require.NoError(t, err)

	_, err = repo.GetCart(ctx, "user123")
	assert.ErrorIs(t, err, ErrCartCorrupt)
}

func TestContextCancellation(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Nanosecond)
	defer cancel()

	time.Sleep(10 * time.Millisecond)

	_, err := repo.GetCart(ctx, "user123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "context")
}
