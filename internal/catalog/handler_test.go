package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/shared"
)

type memoryReader struct {
	products []Product
	err      error
}

func (m *memoryReader) GetProduct(_ context.Context, id int64) (Product, error) {
	if m.err != nil {
		return Product{}, m.err
	}
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, fmt.Errorf("product %d: %w", id, shared.ErrNotFound)
}

func (m *memoryReader) ListProducts(context.Context) ([]Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func newTestRouter(reader Reader) http.Handler {
	r := chi.NewRouter()
	NewHandler(nil, NewService(reader)).MountRoutes(r)
	return r
}

func seededReader() *memoryReader {
	products := DemoCatalog()
	for i := range products {
		products[i].ID = int64(i + 1)
	}
	return &memoryReader{products: products}
}

func TestListProducts(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(seededReader()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"Laptop Pro 15\""`)
	assert.Contains(t, rr.Body.String(), `"price":1299.99`)
}

func TestShowProduct(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(seededReader()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products/4", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"data":{"id":4,"name":"Gaming Mouse","description":"RGB gaming mouse with 16000 DPI","price":79.99,"stock_quantity":200}}`, rr.Body.String())
}

func TestShowProductNotFound(t *testing.T) {
	router := newTestRouter(seededReader())
	for _, path := range []string{"/products/99", "/products/abc"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
	}
}

func TestListProductsDependencyFailure(t *testing.T) {
	rr := httptest.NewRecorder()
	reader := &memoryReader{err: shared.Dependency("list products", errors.New("connection refused"))}
	newTestRouter(reader).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "connection refused")
}

func TestDemoCatalog(t *testing.T) {
	products := DemoCatalog()
	require.Len(t, products, 8)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("1299.99")))
	for _, p := range products {
		assert.False(t, p.Price.IsNegative(), p.Name)
		assert.GreaterOrEqual(t, p.StockQuantity, 0, p.Name)
	}
}
