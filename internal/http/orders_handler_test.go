package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/orders"
)

type ledgerMock struct {
	orders    []domain.Order
	listErr   error
	cancelErr error
	cancelled []int64
}

func (m *ledgerMock) List(ctx context.Context, sessionID string) ([]domain.Order, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.orders, nil
}

func (m *ledgerMock) Cancel(ctx context.Context, sessionID string, orderID int64) error {
	if m.cancelErr != nil {
		return m.cancelErr
	}
	m.cancelled = append(m.cancelled, orderID)
	for i, o := range m.orders {
		if o.ID == orderID {
			m.orders = append(m.orders[:i], m.orders[i+1:]...)
			break
		}
	}
	return nil
}

func TestListOrders_ClearsCart(t *testing.T) {
	carts := &cartServiceMock{}
	ledger := &ledgerMock{
		orders: []domain.Order{
			{ID: 1718000000000, CreatedAt: "10 Jun 2024, 09:33 AM"},
		},
	}
	handler := NewOrdersHandler(ledger, carts)

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("GET", "/api/orders", nil), "sess-1")

	handler.ListOrders(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	if carts.clearCalls != 1 {
		t.Errorf("Expected cart to be cleared on orders load, got %d calls", carts.clearCalls)
	}

	var response []domain.Order
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response) != 1 || response[0].ID != 1718000000000 {
		t.Errorf("Unexpected order list: %+v", response)
	}
}

func TestListOrders_CartClearFailureIsNotFatal(t *testing.T) {
	carts := &cartServiceMock{err: errors.New("redis down")}
	handler := NewOrdersHandler(&ledgerMock{}, carts)

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("GET", "/api/orders", nil), "sess-1")

	handler.ListOrders(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
}

func TestCancelOrder_Success(t *testing.T) {
	ledger := &ledgerMock{
		orders: []domain.Order{
			{ID: 100},
			{ID: 200},
		},
	}
	handler := NewOrdersHandler(ledger, &cartServiceMock{})

	request := httptest.NewRequest("DELETE", "/api/orders/100", nil)
	request = withSession(request, "sess-1")
	request = withURLParam(request, "order_id", "100")
	recorder := httptest.NewRecorder()

	handler.CancelOrder(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	if len(ledger.cancelled) != 1 || ledger.cancelled[0] != 100 {
		t.Errorf("Expected Cancel(100), got %v", ledger.cancelled)
	}

	var response []domain.Order
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response) != 1 || response[0].ID != 200 {
		t.Errorf("Expected remaining order 200, got %+v", response)
	}
}

func TestCancelOrder_NotFound(t *testing.T) {
	handler := NewOrdersHandler(&ledgerMock{cancelErr: orders.ErrOrderNotFound}, &cartServiceMock{})

	request := httptest.NewRequest("DELETE", "/api/orders/999", nil)
	request = withSession(request, "sess-1")
	request = withURLParam(request, "order_id", "999")
	recorder := httptest.NewRecorder()

	handler.CancelOrder(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestCancelOrder_InvalidID(t *testing.T) {
	handler := NewOrdersHandler(&ledgerMock{}, &cartServiceMock{})

	for _, param := range []string{"abc", "-5", "0", ""} {
		request := httptest.NewRequest("DELETE", "/api/orders/"+param, nil)
		request = withSession(request, "sess-1")
		request = withURLParam(request, "order_id", param)
		recorder := httptest.NewRecorder()

		handler.CancelOrder(recorder, request)

		if recorder.Code != http.StatusBadRequest {
			t.Errorf("order_id %q: expected status code %d, got %d", param, http.StatusBadRequest, recorder.Code)
		}
	}
}
