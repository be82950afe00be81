package domain

import "time"

// Product is the normalized catalog record. IDs follow the upstream catalog's
// numeric identifier space.
type Product struct {
	ID        int64     `bson:"_id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Price     float64   `bson:"price" json:"price"`
	Image     string    `bson:"image" json:"image"`
	Rating    float64   `bson:"rating" json:"rating"`
	UpdatedAt time.Time `bson:"updated_at" json:"-"`
}
