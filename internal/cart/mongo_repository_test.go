package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"storefront/internal/domain"
	"storefront/internal/storage"
)

func setupTestDB(t *testing.T) (Repository, func()) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := storage.ConnectMongoDB(ctx, uri, "testdb")
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

	return repo, cleanup
}

func TestMongoGetCart_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	cart, err := repo.GetCart(ctx, "nonexistent")

	assert.ErrorIs(t, err, ErrCartNotFound)
	assert.Nil(t, cart)
}

func TestMongoAddItem_NewCart(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	item := domain.CartItem{ItemID: "p1", Title: "Lamp", UnitPrice: 12.5, Quantity: 3}

	require.NoError(t, repo.AddItem(ctx, "s1", item))

	cart, err := repo.GetCart(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p1", cart.Items[0].ItemID)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.False(t, cart.Items[0].AddedAt.IsZero())
}

func TestMongoAddItem_SameIDReplaces(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, repo.AddItem(ctx, "s1", domain.CartItem{ItemID: "p1", UnitPrice: 12.5, Quantity: 3}))
	require.NoError(t, repo.AddItem(ctx, "s1", domain.CartItem{ItemID: "p1", UnitPrice: 12.5, Quantity: 1}))

	cart, err := repo.GetCart(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestMongoUpdateItemQuantity(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, repo.AddItem(ctx, "s1", domain.CartItem{ItemID: "p1", UnitPrice: 5, Quantity: 1}))

	require.NoError(t, repo.UpdateItemQuantity(ctx, "s1", "p1", 7))

	cart, err := repo.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 7, cart.Items[0].Quantity)

	assert.ErrorIs(t, repo.UpdateItemQuantity(ctx, "s1", "ghost", 2), ErrItemNotFound)
}

func TestMongoRemoveItem_AbsentIsNoop(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, repo.RemoveItem(ctx, "no-cart", "p1"))

	require.NoError(t, repo.AddItem(ctx, "s1", domain.CartItem{ItemID: "p1", UnitPrice: 5, Quantity: 1}))
	require.NoError(t, repo.RemoveItem(ctx, "s1", "p1"))

	cart, err := repo.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestMongoDeleteCart(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, repo.AddItem(ctx, "s1", domain.CartItem{ItemID: "p1", UnitPrice: 5, Quantity: 1}))
	require.NoError(t, repo.DeleteCart(ctx, "s1"))

	_, err := repo.GetCart(ctx, "s1")
	assert.ErrorIs(t, err, ErrCartNotFound)

	require.NoError(t, repo.DeleteCart(ctx, "s1"))
}
