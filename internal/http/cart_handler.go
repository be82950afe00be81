package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/cart"
	"storefront/internal/domain"
)

type CartService interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	AddItem(ctx context.Context, sessionID string, item domain.CartItem) error
	UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, sessionID, itemID string) error
	Clear(ctx context.Context, sessionID string) error
}

type CartHandler struct {
	carts CartService
}

func NewCartHandler(carts CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type cartResponseDTO struct {
	Items    []domain.CartItem `json:"items"`
	Subtotal float64           `json:"subtotal"`
}

func cartResponse(c *domain.Cart) cartResponseDTO {
	items := c.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return cartResponseDTO{Items: items, Subtotal: c.Subtotal()}
}

type addCartItemRequestDTO struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unit_price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

type updateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

// GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.Get(r.Context(), getSessionID(r.Context()))
	if err != nil {
		log.Printf("get cart failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(c))
}

// POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Quantity == 0 {
		req.Quantity = 1
	}

	sessionID := getSessionID(r.Context())
	err := h.carts.AddItem(r.Context(), sessionID, domain.CartItem{
		ItemID:    req.ID,
		Title:     req.Title,
		UnitPrice: req.UnitPrice,
		Image:     req.Image,
		Quantity:  req.Quantity,
	})
	if err != nil {
		if errors.Is(err, cart.ErrInvalidItem) {
			respondError(w, http.StatusBadRequest, "invalid_item", "id, positive unit_price and quantity >= 1 are required")
			return
		}
		log.Printf("add cart item failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	c, err := h.carts.Get(r.Context(), sessionID)
	if err != nil {
		log.Printf("get cart failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, cartResponse(c))
}

// PUT /api/cart/items/{item_id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item id is required")
		return
	}

	var req updateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sessionID := getSessionID(r.Context())
	if err := h.carts.UpdateQuantity(r.Context(), sessionID, itemID, req.Quantity); err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "item not found in cart")
			return
		}
		log.Printf("update quantity failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	c, err := h.carts.Get(r.Context(), sessionID)
	if err != nil {
		log.Printf("get cart failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(c))
}

// DELETE /api/cart/items/{item_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item id is required")
		return
	}

	sessionID := getSessionID(r.Context())
	if err := h.carts.RemoveItem(r.Context(), sessionID, itemID); err != nil {
		log.Printf("remove cart item failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	c, err := h.carts.Get(r.Context(), sessionID)
	if err != nil {
		log.Printf("get cart failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(c))
}

// DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Clear(r.Context(), getSessionID(r.Context())); err != nil {
		log.Printf("clear cart failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, cartResponseDTO{Items: []domain.CartItem{}})
}
