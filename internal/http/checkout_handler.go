package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"storefront/internal/checkout"
	"storefront/internal/domain"
)

type CheckoutService interface {
	PlaceOrder(ctx context.Context, sessionID string, billing domain.BillingDetails, buyNow *checkout.BuyNow) (*domain.Order, error)
	Total(ctx context.Context, sessionID string, buyNow *checkout.BuyNow) (float64, error)
}

type CheckoutHandler struct {
	checkouts CheckoutService
}

func NewCheckoutHandler(checkouts CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkouts: checkouts}
}

type checkoutRequestDTO struct {
	Billing domain.BillingDetails `json:"billing"`
	BuyNow  *checkout.BuyNow      `json:"buy_now,omitempty"`
}

// POST /api/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.checkouts.PlaceOrder(r.Context(), getSessionID(r.Context()), req.Billing, req.BuyNow)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrNotAuthenticated):
			respondError(w, http.StatusUnauthorized, "unauthenticated", "You need to login first")
		case errors.Is(err, checkout.ErrMissingBilling):
			respondError(w, http.StatusBadRequest, "missing_fields", "Please fill all billing fields")
		case errors.Is(err, checkout.ErrEmptyOrder):
			respondError(w, http.StatusBadRequest, "empty_order", "Nothing to order")
		default:
			log.Printf("place order failed: %v", err)
			respondError(w, http.StatusBadGateway, "upstream_error", "Order submission failed")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Order placed successfully",
		"success": true,
		"order":   order,
		"total":   order.Total(),
	})
}

// GET /api/checkout/total?id=&qty= prices the draft without placing it.
func (h *CheckoutHandler) Total(w http.ResponseWriter, r *http.Request) {
	var buyNow *checkout.BuyNow

	if idParam := r.URL.Query().Get("id"); idParam != "" {
		productID, err := strconv.ParseInt(idParam, 10, 64)
		if err != nil || productID <= 0 {
			respondError(w, http.StatusBadRequest, "invalid_product_id", "id must be a positive integer")
			return
		}

		qty := 1
		if qtyParam := r.URL.Query().Get("qty"); qtyParam != "" {
			qty, err = strconv.Atoi(qtyParam)
			if err != nil || qty < 1 {
				respondError(w, http.StatusBadRequest, "invalid_quantity", "qty must be a positive integer")
				return
			}
		}

		buyNow = &checkout.BuyNow{ProductID: productID, Quantity: qty}
	}

	total, err := h.checkouts.Total(r.Context(), getSessionID(r.Context()), buyNow)
	if err != nil {
		log.Printf("price checkout failed: %v", err)
		respondError(w, http.StatusBadGateway, "upstream_error", "Could not price the order")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"total": total})
}
