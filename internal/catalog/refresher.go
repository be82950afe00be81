package catalog

import (
	"context"
	"log"
	"time"

	"storefront/internal/products"
)

// Refresher periodically pulls the upstream catalog into the local products
// collection so listing and search work without manual seeding.
type Refresher struct {
	client *Client
	repo   products.Repository
	tick   time.Duration
}

func NewRefresher(client *Client, repo products.Repository, tick time.Duration) *Refresher {
	if tick <= 0 {
		tick = 15 * time.Minute
	}
	return &Refresher{client: client, repo: repo, tick: tick}
}

func (r *Refresher) Run(ctx context.Context) {
	// sync once at startup, then on every tick
	r.sync(ctx)

	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sync(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (r *Refresher) sync(ctx context.Context) {
	list, err := r.client.ListProducts(ctx)
	if err != nil {
		log.Printf("catalog sync failed: %v", err)
		return
	}

	var stored int
	for _, p := range list {
		if err := r.repo.Upsert(ctx, p); err != nil {
			log.Printf("failed to upsert product %d: %v", p.ID, err)
			continue
		}
		stored++
	}

	log.Printf("catalog sync stored %d of %d products", stored, len(list))
}
