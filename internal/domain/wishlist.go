package domain

import "time"

type Wishlist struct {
	ID        string         `bson:"_id,omitempty" json:"-"`
	SessionID string         `bson:"session_id" json:"session_id"`
	Items     []WishlistItem `bson:"items" json:"items"`
	CreatedAt time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time      `bson:"updated_at" json:"updated_at"`
}

// WishlistItem has no quantity; its identity space is independent of the cart.
type WishlistItem struct {
	ItemID string  `bson:"item_id" json:"id"`
	Name   string  `bson:"name" json:"name"`
	Price  float64 `bson:"price" json:"price"`
	Image  string  `bson:"image" json:"image"`
}

// ToCartItem builds a cart entry from a saved item with quantity fixed at 1.
func (w WishlistItem) ToCartItem() CartItem {
	return CartItem{
		ItemID:    w.ItemID,
		Title:     w.Name,
		UnitPrice: w.Price,
		Image:     w.Image,
		Quantity:  1,
	}
}
