package wishlist

import (
	"context"
	"errors"
	"log"
	"time"

	"storefront/internal/domain"
)

var (
	ErrInvalidItem  = errors.New("wishlist item is invalid")
	ErrItemNotFound = errors.New("item not found in wishlist")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, sessionID string) (*domain.Wishlist, error) {
	list, err := s.repo.GetWishlist(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrWishlistNotFound) {
			return &domain.Wishlist{
				SessionID: sessionID,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}, nil
		}
		return nil, err
	}
	return list, nil
}

func (s *Service) AddItem(ctx context.Context, sessionID string, item domain.WishlistItem) error {
	if item.ItemID == "" {
		return ErrInvalidItem
	}

	if err := s.repo.AddItem(ctx, sessionID, item); err != nil {
		log.Printf("repo add wishlist item error: %v", err)
		return err
	}
	return nil
}

func (s *Service) RemoveItem(ctx context.Context, sessionID, itemID string) error {
	if err := s.repo.RemoveItem(ctx, sessionID, itemID); err != nil {
		log.Printf("repo remove wishlist item error: %v", err)
		return err
	}
	return nil
}

// Take removes the item and returns it, for moving a saved item into the cart.
func (s *Service) Take(ctx context.Context, sessionID, itemID string) (domain.WishlistItem, error) {
	list, err := s.repo.GetWishlist(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrWishlistNotFound) {
			return domain.WishlistItem{}, ErrItemNotFound
		}
		return domain.WishlistItem{}, err
	}

	for _, item := range list.Items {
		if item.ItemID == itemID {
			if err := s.repo.RemoveItem(ctx, sessionID, itemID); err != nil {
				return domain.WishlistItem{}, err
			}
			return item, nil
		}
	}

	return domain.WishlistItem{}, ErrItemNotFound
}
