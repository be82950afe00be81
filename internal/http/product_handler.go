package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/domain"
	"storefront/internal/products"
)

type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Search(ctx context.Context, term string) ([]domain.Product, error)
}

type CategoryLister interface {
	ListByCategory(ctx context.Context, slug string) ([]domain.Product, error)
}

type ProductHandler struct {
	repo       ProductRepository
	categories CategoryLister
}

func NewProductHandler(repo ProductRepository, categories CategoryLister) *ProductHandler {
	return &ProductHandler{repo: repo, categories: categories}
}

// GET /api/sales
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		log.Printf("list products failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Something went wrong")
		return
	}

	if list == nil {
		list = []domain.Product{}
	}
	respondJSON(w, http.StatusOK, list)
}

type productRequestDTO struct {
	ID int64 `json:"id"`
}

// POST /api/product
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	product, err := h.repo.GetByID(r.Context(), req.ID)
	if err != nil {
		if errors.Is(err, products.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "Product not found")
			return
		}
		log.Printf("get product failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Something went wrong")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// GET /api/products/category/{slug} proxies the category listing from the
// upstream catalog at current prices.
func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		respondError(w, http.StatusBadRequest, "invalid_category", "category slug is required")
		return
	}

	list, err := h.categories.ListByCategory(r.Context(), slug)
	if err != nil {
		log.Printf("list category %s failed: %v", slug, err)
		respondError(w, http.StatusBadGateway, "upstream_error", "Could not load category")
		return
	}

	if list == nil {
		list = []domain.Product{}
	}
	respondJSON(w, http.StatusOK, list)
}

// GET /api/search?query=
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("query")
	if term == "" {
		respondError(w, http.StatusNotFound, "missing_query", "Missing search term")
		return
	}

	result, err := h.repo.Search(r.Context(), term)
	if err != nil {
		log.Printf("search failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Internal Server Error")
		return
	}

	if len(result) == 0 {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"message": "No items found",
			"success": false,
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Items found",
		"result":  result,
		"success": true,
	})
}
