package wishlist

import (
	"context"
	"errors"

	"storefront/internal/domain"
)

var ErrWishlistNotFound = errors.New("wishlist not found")

// Repository defines the interface for wishlist data operations.
type Repository interface {
	GetWishlist(ctx context.Context, sessionID string) (*domain.Wishlist, error)
	AddItem(ctx context.Context, sessionID string, item domain.WishlistItem) error
	RemoveItem(ctx context.Context, sessionID, itemID string) error
	CreateIndexes(ctx context.Context) error
}
