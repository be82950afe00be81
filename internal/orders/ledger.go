package orders

import (
	"context"
	"errors"

	"storefront/internal/domain"
)

var ErrOrderNotFound = errors.New("order not found")

// Ledger is the append-only per-session order log. The stored sequence is
// loaded and rewritten wholesale; there is no partial-update primitive.
type Ledger interface {
	List(ctx context.Context, sessionID string) ([]domain.Order, error)
	Append(ctx context.Context, sessionID string, order domain.Order) error
	Cancel(ctx context.Context, sessionID string, orderID int64) error
}
