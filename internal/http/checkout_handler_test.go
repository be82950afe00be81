package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/checkout"
	"storefront/internal/domain"
)

type checkoutServiceMock struct {
	order    *domain.Order
	total    float64
	placeErr error
	totalErr error
	buyNow   *checkout.BuyNow
}

func (m *checkoutServiceMock) PlaceOrder(ctx context.Context, sessionID string, billing domain.BillingDetails, buyNow *checkout.BuyNow) (*domain.Order, error) {
	m.buyNow = buyNow
	if m.placeErr != nil {
		return nil, m.placeErr
	}
	return m.order, nil
}

func (m *checkoutServiceMock) Total(ctx context.Context, sessionID string, buyNow *checkout.BuyNow) (float64, error) {
	m.buyNow = buyNow
	if m.totalErr != nil {
		return 0, m.totalErr
	}
	return m.total, nil
}

func validBilling() domain.BillingDetails {
	return domain.BillingDetails{
		FirstName:     "Ada",
		StreetAddress: "12 Analytical St",
		TownCity:      "London",
		Phone:         "555-0100",
		Email:         "ada@example.com",
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	mock := &checkoutServiceMock{
		order: &domain.Order{
			ID:        1718000000000,
			CreatedAt: "10 Jun 2024, 09:33 AM",
			Items: []domain.OrderItem{
				{Title: "Phone", UnitPrice: 10, Quantity: 2},
			},
		},
	}
	handler := NewCheckoutHandler(mock)

	body, _ := json.Marshal(checkoutRequestDTO{Billing: validBilling()})
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/api/checkout", bytes.NewReader(body)), "sess-1")

	handler.PlaceOrder(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Errorf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
	}

	var response map[string]interface{}
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response["success"] != true {
		t.Errorf("Expected success true, got %v", response["success"])
	}
	if response["total"] != float64(20) {
		t.Errorf("Expected total 20, got %v", response["total"])
	}
}

func TestPlaceOrder_ForwardsBuyNow(t *testing.T) {
	mock := &checkoutServiceMock{order: &domain.Order{ID: 1}}
	handler := NewCheckoutHandler(mock)

	body, _ := json.Marshal(checkoutRequestDTO{
		Billing: validBilling(),
		BuyNow:  &checkout.BuyNow{ProductID: 7, Quantity: 3},
	})
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/api/checkout", bytes.NewReader(body)), "sess-1")

	handler.PlaceOrder(recorder, request)

	if mock.buyNow == nil || mock.buyNow.ProductID != 7 || mock.buyNow.Quantity != 3 {
		t.Errorf("Expected buy_now to be forwarded, got %+v", mock.buyNow)
	}
}

func TestPlaceOrder_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not authenticated", checkout.ErrNotAuthenticated, http.StatusUnauthorized, "unauthenticated"},
		{"missing billing", checkout.ErrMissingBilling, http.StatusBadRequest, "missing_fields"},
		{"empty order", checkout.ErrEmptyOrder, http.StatusBadRequest, "empty_order"},
		{"upstream failure", errors.New("catalog down"), http.StatusBadGateway, "upstream_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewCheckoutHandler(&checkoutServiceMock{placeErr: tt.err})

			body, _ := json.Marshal(checkoutRequestDTO{Billing: validBilling()})
			recorder := httptest.NewRecorder()
			request := withSession(httptest.NewRequest("POST", "/api/checkout", bytes.NewReader(body)), "sess-1")

			handler.PlaceOrder(recorder, request)

			if recorder.Code != tt.wantStatus {
				t.Errorf("Expected status code %d, got %d", tt.wantStatus, recorder.Code)
			}

			var response ErrorResponse
			json.NewDecoder(recorder.Body).Decode(&response)
			if response.Code != tt.wantCode {
				t.Errorf("Expected error code %s, got %s", tt.wantCode, response.Code)
			}
		})
	}
}

func TestCheckoutTotal_CartOnly(t *testing.T) {
	mock := &checkoutServiceMock{total: 42.5}
	handler := NewCheckoutHandler(mock)

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("GET", "/api/checkout/total", nil), "sess-1")

	handler.Total(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	if mock.buyNow != nil {
		t.Errorf("Expected no buy_now for a cart-only total, got %+v", mock.buyNow)
	}

	var response map[string]float64
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response["total"] != 42.5 {
		t.Errorf("Expected total 42.5, got %v", response["total"])
	}
}

func TestCheckoutTotal_BuyNowQueryParams(t *testing.T) {
	mock := &checkoutServiceMock{total: 10}
	handler := NewCheckoutHandler(mock)

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("GET", "/api/checkout/total?id=7&qty=2", nil), "sess-1")

	handler.Total(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	if mock.buyNow == nil || mock.buyNow.ProductID != 7 || mock.buyNow.Quantity != 2 {
		t.Errorf("Expected buy_now id=7 qty=2, got %+v", mock.buyNow)
	}
}

func TestCheckoutTotal_QuantityDefaultsToOne(t *testing.T) {
	mock := &checkoutServiceMock{total: 10}
	handler := NewCheckoutHandler(mock)

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("GET", "/api/checkout/total?id=7", nil), "sess-1")

	handler.Total(recorder, request)

	if mock.buyNow == nil || mock.buyNow.Quantity != 1 {
		t.Errorf("Expected quantity to default to 1, got %+v", mock.buyNow)
	}
}

func TestCheckoutTotal_InvalidParams(t *testing.T) {
	for _, query := range []string{"?id=abc", "?id=-1", "?id=7&qty=0", "?id=7&qty=x"} {
		handler := NewCheckoutHandler(&checkoutServiceMock{})
		recorder := httptest.NewRecorder()
		request := withSession(httptest.NewRequest("GET", "/api/checkout/total"+query, nil), "sess-1")

		handler.Total(recorder, request)

		if recorder.Code != http.StatusBadRequest {
			t.Errorf("query %q: expected status code %d, got %d", query, http.StatusBadRequest, recorder.Code)
		}
	}
}
