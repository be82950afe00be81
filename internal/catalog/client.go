package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker/v2"

	"storefront/internal/domain"
)

var (
	ErrProductNotFound = errors.New("catalog product not found")
	ErrInvalidProduct  = errors.New("catalog returned invalid product")
)

// catalogProduct is the upstream wire shape. It is decoded here at the
// boundary and normalized into a domain.Product; nothing downstream sees the
// raw JSON.
type catalogProduct struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Price     float64  `json:"price"`
	Rating    float64  `json:"rating"`
	Thumbnail string   `json:"thumbnail"`
	Images    []string `json:"images"`
}

type catalogProductList struct {
	Products []catalogProduct `json:"products"`
}

// Client calls the third-party product catalog. All calls go through a
// circuit breaker so a flapping upstream stops being hammered.
type Client struct {
	baseURL string
	httpc   *http.Client
	breaker *gobreaker.CircuitBreaker[[]domain.Product]
}

func NewClient(baseURL string) *Client {
	settings := gobreaker.Settings{
		Name:    "catalog",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// not-found and malformed payloads are upstream answers, not outages
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrInvalidProduct)
		},
	}

	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		breaker: gobreaker.NewCircuitBreaker[[]domain.Product](settings),
	}
}

// GetProduct resolves one product by id at its current upstream price.
func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	products, err := c.breaker.Execute(func() ([]domain.Product, error) {
		var raw catalogProduct
		if err := c.getJSON(ctx, fmt.Sprintf("%s/products/%d", c.baseURL, id), &raw); err != nil {
			return nil, err
		}

		product, err := normalize(raw)
		if err != nil {
			return nil, err
		}
		return []domain.Product{product}, nil
	})
	if err != nil {
		return nil, err
	}

	return &products[0], nil
}

// ListProducts fetches the full upstream catalog.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return c.breaker.Execute(func() ([]domain.Product, error) {
		var raw catalogProductList
		if err := c.getJSON(ctx, c.baseURL+"/products", &raw); err != nil {
			return nil, err
		}

		products := make([]domain.Product, 0, len(raw.Products))
		for _, rp := range raw.Products {
			product, err := normalize(rp)
			if err != nil {
				// skip malformed entries rather than failing the sync
				continue
			}
			products = append(products, product)
		}
		return products, nil
	})
}

// ListByCategory fetches the upstream products for one category slug.
// An unknown slug is an empty list upstream, not an error.
func (c *Client) ListByCategory(ctx context.Context, slug string) ([]domain.Product, error) {
	return c.breaker.Execute(func() ([]domain.Product, error) {
		var raw catalogProductList
		u := fmt.Sprintf("%s/products/category/%s", c.baseURL, url.PathEscape(slug))
		if err := c.getJSON(ctx, u, &raw); err != nil {
			return nil, err
		}

		products := make([]domain.Product, 0, len(raw.Products))
		for _, rp := range raw.Products {
			product, err := normalize(rp)
			if err != nil {
				continue
			}
			products = append(products, product)
		}
		return products, nil
	})
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode catalog response: %w", err)
	}

	return nil
}

func normalize(raw catalogProduct) (domain.Product, error) {
	if raw.ID <= 0 || raw.Title == "" || raw.Price <= 0 {
		return domain.Product{}, ErrInvalidProduct
	}

	image := raw.Thumbnail
	if len(raw.Images) > 0 {
		image = raw.Images[0]
	}

	return domain.Product{
		ID:     raw.ID,
		Title:  raw.Title,
		Price:  raw.Price,
		Image:  image,
		Rating: raw.Rating,
	}, nil
}
