package orders

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/catalog"
)

type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
	Error   string              `json:"error"`
}

func newTestRouter(store *memoryStore, products catalog.Reader) http.Handler {
	svc := NewService(store, products, ServiceConfig{})
	r := chi.NewRouter()
	NewHandler(nil, svc).WithNow(func() time.Time { return fixedNow }).MountRoutes(r)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rr, req)
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return rr, env
}

func TestCreateOrderEndpoint(t *testing.T) {
	store := &memoryStore{}
	router := newTestRouter(store, demoCatalog())

	rr, env := do(t, router, http.MethodPost, "/orders", `{"product_id":1,"quantity":2,"price":1299.99}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Order created successfully", env.Message)
	assert.JSONEq(t, `{
		"id": 1,
		"product_id": 1,
		"product_name": "Laptop Pro 15\"",
		"quantity": 2,
		"price": 1299.99,
		"total": 2599.98,
		"order_date": "2025-03-14T15:30:00.000000Z",
		"created_at": "2025-03-14T15:30:00.000000Z"
	}`, string(env.Data))

	rr, env = do(t, router, http.MethodGet, "/orders/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, string(env.Data), `"total":2599.98`)
}

func TestCreateOrderEndpointAcceptsStringPrice(t *testing.T) {
	rr, _ := do(t, newTestRouter(&memoryStore{}, demoCatalog()), http.MethodPost, "/orders",
		`{"product_id":2,"quantity":1,"price":"199.99","date":"2025-03-01"}`)
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestCreateOrderEndpointValidation(t *testing.T) {
	store := &memoryStore{}
	router := newTestRouter(store, demoCatalog())

	rr, env := do(t, router, http.MethodPost, "/orders", `{"product_id":"one","quantity":0,"price":"abc"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Validation failed", env.Message)
	assert.Equal(t, []string{"The product id field must be an integer."}, env.Errors["product_id"])
	assert.Equal(t, []string{"The price field must be a number."}, env.Errors["price"])
	assert.Zero(t, store.count())

	rr, env = do(t, router, http.MethodPost, "/orders", `{"product_id":42,"quantity":1,"price":10}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, []string{"The selected product id is invalid."}, env.Errors["product_id"])
	assert.Zero(t, store.count())

	rr, env = do(t, router, http.MethodPost, "/orders", `[1,2,3]`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.NotEmpty(t, env.Errors["body"])
}

func TestCreateOrderEndpointHidesStoreErrors(t *testing.T) {
	store := &memoryStore{err: assert.AnError}
	rr, env := do(t, newTestRouter(store, demoCatalog()), http.MethodPost, "/orders", `{"product_id":1,"quantity":1,"price":10}`)
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Failed to create order", env.Message)
	assert.Equal(t, "internal server error", env.Error)
	assert.NotContains(t, rr.Body.String(), assert.AnError.Error())
}

func TestListOrdersEndpoint(t *testing.T) {
	router := newTestRouter(&memoryStore{}, demoCatalog())
	for i := 0; i < 3; i++ {
		rr, _ := do(t, router, http.MethodPost, "/orders", `{"product_id":1,"quantity":1,"price":10}`)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr, env := do(t, router, http.MethodGet, "/orders?limit=2", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var views []OrderView
	require.NoError(t, json.Unmarshal(env.Data, &views))
	require.Len(t, views, 2)
	assert.Equal(t, int64(3), views[0].ID)

	rr, env = do(t, router, http.MethodGet, "/orders?limit=zero", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.NotEmpty(t, env.Errors["limit"])
}

func TestShowOrderNotFound(t *testing.T) {
	rr, env := do(t, newTestRouter(&memoryStore{}, demoCatalog()), http.MethodGet, "/orders/7", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.False(t, env.Success)
}

func TestTestBroadcastEndpoint(t *testing.T) {
	store := &memoryStore{}
	rr, env := do(t, newTestRouter(store, demoCatalog()), http.MethodPost, "/broadcast/test", "")
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "Test broadcast sent successfully!", env.Message)

	var view OrderView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, int64(1), view.ProductID)
	assert.GreaterOrEqual(t, view.Quantity, 1)
	assert.LessOrEqual(t, view.Quantity, 5)
	assert.GreaterOrEqual(t, view.Price, 50.0)
	assert.LessOrEqual(t, view.Price, 200.0)
	assert.Equal(t, 1, store.count())

	rr, _ = do(t, newTestRouter(&memoryStore{}, &memoryCatalog{}), http.MethodPost, "/broadcast/test", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
