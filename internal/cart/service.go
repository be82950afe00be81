package cart

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"storefront/internal/domain"
)

var ErrInvalidItem = errors.New("cart item is invalid")

type Service struct {
	repo  Repository
	cache Cache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewService(repo Repository, cache Cache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

// Get returns the session's cart. A session without a stored cart gets an
// empty one; the cart document is created lazily on first AddItem.
func (s *Service) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(sessionID, func() (interface{}, error) {

		cart, err := s.cache.Get(ctx, sessionID)
		if err == nil {
			return cart, nil // cart is in cache
		}

		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		cart, errGet := s.repo.GetCart(ctx, sessionID)
		if errGet != nil && errors.Is(errGet, ErrCartNotFound) {
			return &domain.Cart{
				SessionID: sessionID,
				Items:     nil,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}, nil
		}
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			errSet := s.cache.Set(context.Background(), sessionID, cart)
			if errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// AddItem inserts the item, replacing any existing entry with the same id.
func (s *Service) AddItem(ctx context.Context, sessionID string, item domain.CartItem) error {
	if item.ItemID == "" || item.UnitPrice <= 0 || item.Quantity < 1 {
		return ErrInvalidItem
	}

	if err := s.repo.AddItem(ctx, sessionID, item); err != nil {
		log.Printf("repo add item error: %v", err)
		return err
	}

	s.invalidateCache(sessionID)
	return nil
}

// UpdateQuantity overwrites the quantity for the matching id. A quantity
// below 1 is a silent no-op.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) error {
	if quantity < 1 {
		return nil
	}

	err := s.repo.UpdateItemQuantity(ctx, sessionID, itemID, quantity)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return err
		}
		log.Printf("repo update item quantity error: %v", err)
		return err
	}

	s.invalidateCache(sessionID)
	return nil
}

// RemoveItem deletes the entry; removing an absent item is a no-op.
func (s *Service) RemoveItem(ctx context.Context, sessionID, itemID string) error {
	if err := s.repo.RemoveItem(ctx, sessionID, itemID); err != nil {
		log.Printf("repo remove item error: %v", err)
		return err
	}

	s.invalidateCache(sessionID)
	return nil
}

// Clear empties the cart. Clearing an absent cart is a no-op.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.repo.DeleteCart(ctx, sessionID); err != nil && !errors.Is(err, ErrCartNotFound) {
		log.Printf("repo delete cart error: %v", err)
		return err
	}

	s.invalidateCache(sessionID)
	return nil
}

func (s *Service) invalidateCache(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, sessionID); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}
