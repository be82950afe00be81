package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/products"
)

type mockProductRepo struct {
	stored map[int64]domain.Product
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{stored: make(map[int64]domain.Product)}
}

func (m *mockProductRepo) List(context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(m.stored))
	for _, p := range m.stored {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := m.stored[id]
	if !ok {
		return nil, products.ErrProductNotFound
	}
	return &p, nil
}

func (m *mockProductRepo) Search(context.Context, string) ([]domain.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) Upsert(_ context.Context, product domain.Product) error {
	m.stored[product.ID] = product
	return nil
}

func TestRefresher_SyncsCatalogIntoRepository(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products":[
			{"id":1,"title":"A","price":10,"thumbnail":"http://img/a.png"},
			{"id":2,"title":"B","price":4,"thumbnail":"http://img/b.png"}
		]}`))
	}))
	defer srv.Close()

	repo := newMockProductRepo()
	refresher := NewRefresher(NewClient(srv.URL), repo, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		refresher.Run(ctx)
		close(done)
	}()

	// the startup sync runs before the first tick
	assert.Eventually(t, func() bool {
		_, err := repo.GetByID(context.Background(), 2)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("refresher did not stop on context cancellation")
	}

	p, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "A", p.Title)
}
