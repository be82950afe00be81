package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"storefront/internal/domain"
	"storefront/internal/orders"
)

type OrderLedger interface {
	List(ctx context.Context, sessionID string) ([]domain.Order, error)
	Cancel(ctx context.Context, sessionID string, orderID int64) error
}

type OrdersHandler struct {
	ledger OrderLedger
	carts  CartService
}

func NewOrdersHandler(ledger OrderLedger, carts CartService) *OrdersHandler {
	return &OrdersHandler{ledger: ledger, carts: carts}
}

// GET /api/orders loads the ledger wholesale. Arriving at the orders page
// also clears the session cart, preserving the storefront's observed
// behavior.
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())

	list, err := h.ledger.List(r.Context(), sessionID)
	if err != nil {
		log.Printf("list orders failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	if err := h.carts.Clear(r.Context(), sessionID); err != nil {
		log.Printf("clear cart on orders load failed: %v", err)
	}

	respondJSON(w, http.StatusOK, list)
}

// DELETE /api/orders/{order_id}
func (h *OrdersHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "order_id"), 10, 64)
	if err != nil || orderID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a positive integer")
		return
	}

	sessionID := getSessionID(r.Context())
	if err := h.ledger.Cancel(r.Context(), sessionID, orderID); err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "order not found")
			return
		}
		log.Printf("cancel order failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	list, err := h.ledger.List(r.Context(), sessionID)
	if err != nil {
		log.Printf("list orders failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, list)
}
