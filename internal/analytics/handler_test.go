package analytics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/shared"
)

func newTestRouter(store *orderList) http.Handler {
	r := chi.NewRouter()
	NewHandler(nil, NewAggregator(store, testCatalog(2), nil)).
		WithNow(func() time.Time { return now }).
		MountRoutes(r)
	return r
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestAnalyticsEndpoint(t *testing.T) {
	store := &orderList{}
	store.add(1, 2, "1299.99", now.Add(-10*time.Second))

	rr := get(newTestRouter(store), "/analytics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"success": true,
		"data": {
			"total_revenue": 2599.98,
			"top_products": [
				{"product_id": 1, "product_name": "Product 1", "total_revenue": 2599.98, "total_quantity_sold": 2}
			],
			"last_minute": {
				"revenue_change": 2599.98,
				"orders_count": 1,
				"revenue_change_from_previous_minute": 2599.98,
				"revenue_change_percentage": 100,
				"time_range": {"from": "2025-03-14T15:29:00.000000Z", "to": "2025-03-14T15:30:00.000000Z"}
			},
			"timestamp": "2025-03-14T15:30:00.000000Z"
		}
	}`, rr.Body.String())
}

func TestAnalyticsEndpointFailure(t *testing.T) {
	store := &orderList{err: shared.Dependency("list orders", errors.New("dial tcp 10.0.0.5:5432"))}
	rr := get(newTestRouter(store), "/analytics")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), `"message":"Failed to fetch analytics"`)
	assert.NotContains(t, rr.Body.String(), "10.0.0.5")
}

func TestDailyEndpoints(t *testing.T) {
	store := &orderList{}
	store.add(1, 1, "10.00", now.Add(-time.Hour))
	router := newTestRouter(store)

	assert.Equal(t, http.StatusOK, get(router, "/analytics/daily?days=7").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, get(router, "/analytics/daily?days=8").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, get(router, "/analytics/daily?days=week").Code)

	rr := get(router, "/analytics/stats")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"today_revenue":10`)
}
