package wishlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/domain"
)

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		collection: db.Collection("wishlists"),
	}
}

func (m *mongoRepository) GetWishlist(ctx context.Context, sessionID string) (*domain.Wishlist, error) {
	var list domain.Wishlist

	filter := bson.M{"session_id": sessionID}
	err := m.collection.FindOne(ctx, filter).Decode(&list)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrWishlistNotFound
		}
		return nil, fmt.Errorf("failed to get wishlist: %w", err)
	}

	return &list, nil
}

// AddItem keeps one entry per item id; re-adding an existing id replaces it.
func (m *mongoRepository) AddItem(ctx context.Context, sessionID string, item domain.WishlistItem) error {
	now := time.Now()
	filter := bson.M{"session_id": sessionID}

	var existing domain.Wishlist
	err := m.collection.FindOne(ctx, filter).Decode(&existing)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			list := &domain.Wishlist{
				SessionID: sessionID,
				Items:     []domain.WishlistItem{item},
				CreatedAt: now,
				UpdatedAt: now,
			}

			if _, err := m.collection.InsertOne(ctx, list); err != nil {
				return fmt.Errorf("failed to create wishlist with item: %w", err)
			}
			return nil
		}
		return fmt.Errorf("failed to check existing wishlist: %w", err)
	}

	for _, it := range existing.Items {
		if it.ItemID == item.ItemID {
			update := bson.M{
				"$set": bson.M{
					"items.$[elem]": item,
					"updated_at":    now,
				},
			}
			arrayFilters := options.Update().SetArrayFilters(options.ArrayFilters{
				Filters: []interface{}{
					bson.M{"elem.item_id": item.ItemID},
				},
			})

			if _, err := m.collection.UpdateOne(ctx, filter, update, arrayFilters); err != nil {
				return fmt.Errorf("failed to replace wishlist item: %w", err)
			}
			return nil
		}
	}

	update := bson.M{
		"$push": bson.M{"items": item},
		"$set":  bson.M{"updated_at": now},
	}

	if _, err := m.collection.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}

	return nil
}

// RemoveItem is a no-op when the wishlist or the item is absent.
func (m *mongoRepository) RemoveItem(ctx context.Context, sessionID, itemID string) error {
	filter := bson.M{"session_id": sessionID}
	update := bson.M{
		"$pull": bson.M{
			"items": bson.M{"item_id": itemID},
		},
		"$set": bson.M{"updated_at": time.Now()},
	}

	if _, err := m.collection.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}

	return nil
}

func (m *mongoRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "session_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}
