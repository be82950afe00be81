package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/wishlist"
)

type wishlistServiceMock struct {
	list    *domain.Wishlist
	err     error
	takeErr error
	taken   []string
}

func (m *wishlistServiceMock) Get(ctx context.Context, sessionID string) (*domain.Wishlist, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.list == nil {
		return &domain.Wishlist{SessionID: sessionID}, nil
	}
	return m.list, nil
}

func (m *wishlistServiceMock) AddItem(ctx context.Context, sessionID string, item domain.WishlistItem) error {
	return m.err
}

func (m *wishlistServiceMock) RemoveItem(ctx context.Context, sessionID, itemID string) error {
	return m.err
}

func (m *wishlistServiceMock) Take(ctx context.Context, sessionID, itemID string) (domain.WishlistItem, error) {
	if m.takeErr != nil {
		return domain.WishlistItem{}, m.takeErr
	}
	m.taken = append(m.taken, itemID)
	for _, item := range m.list.Items {
		if item.ItemID == itemID {
			return item, nil
		}
	}
	return domain.WishlistItem{}, wishlist.ErrItemNotFound
}

func TestGetWishlist_Success(t *testing.T) {
	handler := NewWishlistHandler(&wishlistServiceMock{
		list: &domain.Wishlist{
			SessionID: "sess-1",
			Items: []domain.WishlistItem{
				{ItemID: "3", Name: "Headphones", Price: 99},
			},
		},
	}, &cartServiceMock{})

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("GET", "/api/wishlist", nil), "sess-1")

	handler.GetWishlist(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response wishlistResponseDTO
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Items) != 1 || response.Items[0].ItemID != "3" {
		t.Errorf("Unexpected wishlist: %+v", response.Items)
	}
}

func TestAddWishlistItem_Invalid(t *testing.T) {
	handler := NewWishlistHandler(&wishlistServiceMock{err: wishlist.ErrInvalidItem}, &cartServiceMock{})

	body, _ := json.Marshal(domain.WishlistItem{Name: "No ID"})
	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("POST", "/api/wishlist/items", bytes.NewReader(body)), "sess-1")

	handler.AddItem(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestMoveToCart_Success(t *testing.T) {
	carts := &cartServiceMock{}
	wishlists := &wishlistServiceMock{
		list: &domain.Wishlist{
			SessionID: "sess-1",
			Items: []domain.WishlistItem{
				{ItemID: "3", Name: "Headphones", Price: 99, Image: "hp.jpg"},
			},
		},
	}
	handler := NewWishlistHandler(wishlists, carts)

	request := httptest.NewRequest("POST", "/api/wishlist/items/3/cart", nil)
	request = withSession(request, "sess-1")
	request = withURLParam(request, "item_id", "3")
	recorder := httptest.NewRecorder()

	handler.MoveToCart(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Errorf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
	}
	if len(wishlists.taken) != 1 || wishlists.taken[0] != "3" {
		t.Errorf("Expected Take(3), got %v", wishlists.taken)
	}
	if len(carts.added) != 1 {
		t.Fatalf("Expected 1 cart add, got %d", len(carts.added))
	}

	added := carts.added[0]
	if added.ItemID != "3" || added.Title != "Headphones" || added.Quantity != 1 {
		t.Errorf("Unexpected cart item: %+v", added)
	}
}

func TestMoveToCart_NotInWishlist(t *testing.T) {
	handler := NewWishlistHandler(&wishlistServiceMock{takeErr: wishlist.ErrItemNotFound}, &cartServiceMock{})

	request := httptest.NewRequest("POST", "/api/wishlist/items/99/cart", nil)
	request = withSession(request, "sess-1")
	request = withURLParam(request, "item_id", "99")
	recorder := httptest.NewRecorder()

	handler.MoveToCart(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, recorder.Code)
	}
}
