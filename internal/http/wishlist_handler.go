package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/domain"
	"storefront/internal/wishlist"
)

type WishlistService interface {
	Get(ctx context.Context, sessionID string) (*domain.Wishlist, error)
	AddItem(ctx context.Context, sessionID string, item domain.WishlistItem) error
	RemoveItem(ctx context.Context, sessionID, itemID string) error
	Take(ctx context.Context, sessionID, itemID string) (domain.WishlistItem, error)
}

type WishlistHandler struct {
	wishlists WishlistService
	carts     CartService
}

func NewWishlistHandler(wishlists WishlistService, carts CartService) *WishlistHandler {
	return &WishlistHandler{wishlists: wishlists, carts: carts}
}

type wishlistResponseDTO struct {
	Items []domain.WishlistItem `json:"items"`
}

func wishlistResponse(l *domain.Wishlist) wishlistResponseDTO {
	items := l.Items
	if items == nil {
		items = []domain.WishlistItem{}
	}
	return wishlistResponseDTO{Items: items}
}

// GET /api/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	list, err := h.wishlists.Get(r.Context(), getSessionID(r.Context()))
	if err != nil {
		log.Printf("get wishlist failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, wishlistResponse(list))
}

// POST /api/wishlist/items
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var item domain.WishlistItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sessionID := getSessionID(r.Context())
	if err := h.wishlists.AddItem(r.Context(), sessionID, item); err != nil {
		if errors.Is(err, wishlist.ErrInvalidItem) {
			respondError(w, http.StatusBadRequest, "invalid_item", "item id is required")
			return
		}
		log.Printf("add wishlist item failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	list, err := h.wishlists.Get(r.Context(), sessionID)
	if err != nil {
		log.Printf("get wishlist failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, wishlistResponse(list))
}

// DELETE /api/wishlist/items/{item_id}
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item id is required")
		return
	}

	sessionID := getSessionID(r.Context())
	if err := h.wishlists.RemoveItem(r.Context(), sessionID, itemID); err != nil {
		log.Printf("remove wishlist item failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	list, err := h.wishlists.Get(r.Context(), sessionID)
	if err != nil {
		log.Printf("get wishlist failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, wishlistResponse(list))
}

// POST /api/wishlist/items/{item_id}/cart moves a saved item into the cart
// with quantity 1.
func (h *WishlistHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item id is required")
		return
	}

	sessionID := getSessionID(r.Context())
	item, err := h.wishlists.Take(r.Context(), sessionID, itemID)
	if err != nil {
		if errors.Is(err, wishlist.ErrItemNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "item not found in wishlist")
			return
		}
		log.Printf("take wishlist item failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	if err := h.carts.AddItem(r.Context(), sessionID, item.ToCartItem()); err != nil {
		log.Printf("move to cart failed: %v", err)
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
