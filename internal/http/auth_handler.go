package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/users"
)

type AuthService interface {
	Signup(ctx context.Context, in users.SignupInput) (string, error)
	Login(ctx context.Context, email, password string) (string, *domain.UserProjection, error)
	UpdateProfile(ctx context.Context, patch users.ProfilePatch) (*domain.UserProjection, error)
}

type SessionWriter interface {
	SetUser(ctx context.Context, sessionID string, user domain.UserProjection) error
	SetToken(ctx context.Context, sessionID, token string) error
}

type AuthHandler struct {
	auth     AuthService
	sessions SessionWriter
}

func NewAuthHandler(auth AuthService, sessions SessionWriter) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

type loginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req users.SignupInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	token, err := h.auth.Signup(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrMissingFields):
			respondError(w, http.StatusBadRequest, "missing_fields", "All fields are required")
		case errors.Is(err, users.ErrDuplicateEmail):
			respondError(w, http.StatusBadRequest, "duplicate_email", "Email is already in use")
		default:
			log.Printf("signup failed: %v", err)
			respondError(w, http.StatusInternalServerError, "internal_error", "Internal Server Error")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Signup successful",
		"success": true,
		"token":   token,
	})
}

// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrMissingFields):
			respondError(w, http.StatusBadRequest, "missing_fields", "All fields are required")
		case errors.Is(err, users.ErrUserNotFound):
			respondError(w, http.StatusNotFound, "user_not_found", "User not found")
		case errors.Is(err, users.ErrBadCredentials):
			respondError(w, http.StatusBadRequest, "bad_credentials", "Invalid email or password")
		default:
			log.Printf("login failed: %v", err)
			respondError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
		}
		return
	}

	// cache the projection and token for the session, mirroring the client's
	// durable `user`/`token` records
	sessionID := getSessionID(r.Context())
	if err := h.sessions.SetUser(r.Context(), sessionID, *user); err != nil {
		log.Printf("failed to store session user: %v", err)
	}
	if err := h.sessions.SetToken(r.Context(), sessionID, token); err != nil {
		log.Printf("failed to store session token: %v", err)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// PATCH /api/update-profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req users.ProfilePatch
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	user, err := h.auth.UpdateProfile(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUserNotFound):
			respondError(w, http.StatusNotFound, "user_not_found", "User not found")
		case errors.Is(err, users.ErrWrongPassword):
			respondError(w, http.StatusBadRequest, "wrong_password", "Current password is incorrect")
		case errors.Is(err, users.ErrPasswordMismatch):
			respondError(w, http.StatusBadRequest, "password_mismatch", "New passwords do not match")
		default:
			log.Printf("update profile failed: %v", err)
			respondError(w, http.StatusInternalServerError, "internal_error", "Something went wrong while updating profile")
		}
		return
	}

	// refresh the cached projection so the session sees the update
	if err := h.sessions.SetUser(r.Context(), getSessionID(r.Context()), *user); err != nil {
		log.Printf("failed to refresh session user: %v", err)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Profile updated successfully",
		"user":    user,
	})
}
