package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"storefront/internal/domain"
)

type ContactRepository interface {
	SaveMessage(ctx context.Context, msg *domain.ContactMessage) error
	SaveDetails(ctx context.Context, details *domain.BillingDetails) error
}

type ContactHandler struct {
	repo ContactRepository
}

func NewContactHandler(repo ContactRepository) *ContactHandler {
	return &ContactHandler{repo: repo}
}

// POST /api/contact
func (h *ContactHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var msg domain.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if msg.Name == "" || msg.Email == "" || msg.Phone == "" || msg.Message == "" {
		respondError(w, http.StatusBadRequest, "missing_fields", "All fields are required.")
		return
	}

	if err := h.repo.SaveMessage(r.Context(), &msg); err != nil {
		log.Printf("save contact message failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Internal server error.")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Contact message sent successfully.",
	})
}

// POST /api/details
func (h *ContactHandler) SaveDetails(w http.ResponseWriter, r *http.Request) {
	var details domain.BillingDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if len(details.MissingFields()) > 0 {
		respondError(w, http.StatusBadRequest, "missing_fields", "All fields are required")
		return
	}

	if err := h.repo.SaveDetails(r.Context(), &details); err != nil {
		log.Printf("save checkout details failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Internal server Error")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Checkout Details stored in DB",
		"success": true,
	})
}
