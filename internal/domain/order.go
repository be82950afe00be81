package domain

import "time"

// OrderTimeFormat matches the display format the storefront shows on the
// orders page, e.g. "02 Sep 2025, 10:30 AM".
const OrderTimeFormat = "02 Jan 2006, 03:04 PM"

// OrderItem is a snapshot copy taken at checkout, never a live reference to a
// cart entry. Mutating the cart after placement cannot alter a placed order.
type OrderItem struct {
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

// Order is immutable once created. It is removed from the ledger only by
// explicit cancellation and is never mutated in place.
type Order struct {
	ID        int64       `json:"id"`
	Items     []OrderItem `json:"items"`
	CreatedAt string      `json:"created_at"`
}

// NewOrder stamps the order with a millisecond timestamp ID, monotonic per
// creation instant.
func NewOrder(now time.Time, items []OrderItem) Order {
	return Order{
		ID:        now.UnixMilli(),
		Items:     items,
		CreatedAt: now.Format(OrderTimeFormat),
	}
}

func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// SnapshotCart copies every cart entry into order items.
func SnapshotCart(c *Cart) []OrderItem {
	items := make([]OrderItem, 0, len(c.Items))
	for _, ci := range c.Items {
		items = append(items, OrderItem{
			Title:     ci.Title,
			UnitPrice: ci.UnitPrice,
			Quantity:  ci.Quantity,
			Image:     ci.Image,
		})
	}
	return items
}
