package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"storefront/internal/domain"
	"storefront/internal/session"
)

var (
	ErrNotAuthenticated = errors.New("you need to login first")
	ErrMissingBilling   = errors.New("please fill all billing fields")
	ErrEmptyOrder       = errors.New("nothing to order")
)

// Consumer-defined collaborator interfaces; the concrete services live in
// their own packages.

type CartStore interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type OrderLedger interface {
	Append(ctx context.Context, sessionID string, order domain.Order) error
}

type SessionStore interface {
	GetUser(ctx context.Context, sessionID string) (*domain.UserProjection, error)
}

type DetailsStore interface {
	SaveDetails(ctx context.Context, details *domain.BillingDetails) error
}

type ProductResolver interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

type EventPublisher interface {
	OrderPlaced(ctx context.Context, sessionID string, order *domain.Order) error
}

// BuyNow is the optional single-product reference carried through navigation
// parameters: the direct-purchase item merged with the cart at checkout.
type BuyNow struct {
	ProductID int64 `json:"id"`
	Quantity  int   `json:"qty"`
}

// Service merges an optional buy-now item with the full cart contents into
// one priced order.
type Service struct {
	cart    CartStore
	ledger  OrderLedger
	session SessionStore
	details DetailsStore
	catalog ProductResolver
	events  EventPublisher
}

func NewService(cart CartStore, ledger OrderLedger, sess SessionStore, details DetailsStore, catalog ProductResolver, events EventPublisher) *Service {
	return &Service{
		cart:    cart,
		ledger:  ledger,
		session: sess,
		details: details,
		catalog: catalog,
		events:  events,
	}
}

// Total prices the order draft: buy-now price times quantity (resolved at
// current catalog price, no price lock) plus the cart subtotal.
func (s *Service) Total(ctx context.Context, sessionID string, buyNow *BuyNow) (float64, error) {
	var total float64

	if buyNow != nil {
		product, err := s.catalog.GetProduct(ctx, buyNow.ProductID)
		if err != nil {
			return 0, fmt.Errorf("failed to resolve buy-now product: %w", err)
		}
		total += product.Price * float64(buyNow.Quantity)
	}

	cart, err := s.cart.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}

	return total + cart.Subtotal(), nil
}

// PlaceOrder validates, snapshots, and finalizes the order. Any failure
// before the ledger append leaves the cart untouched; at most one order is
// created per successful submission.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, billing domain.BillingDetails, buyNow *BuyNow) (*domain.Order, error) {
	// the auth check is a presence check on the stored user record, not a
	// token validation
	if _, err := s.session.GetUser(ctx, sessionID); err != nil {
		if errors.Is(err, session.ErrNoUser) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}

	if missing := billing.MissingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrMissingBilling, missing)
	}

	var items []domain.OrderItem

	if buyNow != nil {
		qty := buyNow.Quantity
		if qty < 1 {
			qty = 1
		}

		product, err := s.catalog.GetProduct(ctx, buyNow.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve buy-now product: %w", err)
		}

		items = append(items, domain.OrderItem{
			Title:     product.Title,
			UnitPrice: product.Price,
			Quantity:  qty,
			Image:     product.Image,
		})
	}

	cart, err := s.cart.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	items = append(items, domain.SnapshotCart(cart)...)

	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	if err := s.details.SaveDetails(ctx, &billing); err != nil {
		return nil, fmt.Errorf("failed to store billing details: %w", err)
	}

	order := domain.NewOrder(time.Now(), items)
	if err := s.ledger.Append(ctx, sessionID, order); err != nil {
		return nil, fmt.Errorf("failed to append order: %w", err)
	}

	if err := s.cart.Clear(ctx, sessionID); err != nil {
		// the order is already placed; don't fail the submission
		log.Printf("failed to clear cart after order %d: %v", order.ID, err)
	}

	if s.events != nil {
		if err := s.events.OrderPlaced(ctx, sessionID, &order); err != nil {
			log.Printf("failed to publish order event: %v", err)
		}
	}

	return &order, nil
}
