package orders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/catalog"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/shared"
)

type memoryStore struct {
	mu     sync.Mutex
	orders []Order
	err    error
}

func (m *memoryStore) CreateOrder(_ context.Context, order Order) (Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return Order{}, m.err
	}
	order.ID = int64(len(m.orders) + 1)
	order.CreatedAt = order.OrderDate
	order.UpdatedAt = order.OrderDate
	m.orders = append(m.orders, order)
	return order, nil
}

func (m *memoryStore) GetOrder(_ context.Context, id int64) (Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, fmt.Errorf("order %d: %w", id, shared.ErrNotFound)
}

func (m *memoryStore) ListOrders(_ context.Context, filter ListFilter) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Order
	for _, o := range m.orders {
		if !filter.From.IsZero() && o.OrderDate.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !o.OrderDate.Before(filter.To) {
			continue
		}
		out = append(out, o)
	}
	if filter.Newest {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *memoryStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

type memoryCatalog struct {
	products []catalog.Product
}

func (m *memoryCatalog) GetProduct(_ context.Context, id int64) (catalog.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return catalog.Product{}, fmt.Errorf("product %d: %w", id, shared.ErrNotFound)
}

func (m *memoryCatalog) ListProducts(context.Context) ([]catalog.Product, error) {
	return m.products, nil
}

func demoCatalog() *memoryCatalog {
	return &memoryCatalog{products: []catalog.Product{
		{ID: 1, Name: `Laptop Pro 15"`, Price: decimal.RequireFromString("1299.99"), StockQuantity: 50},
		{ID: 2, Name: "Wireless Headphones", Price: decimal.RequireFromString("199.99"), StockQuantity: 100},
	}}
}

type recordingNotifier struct {
	orders       []OrderView
	snapshots    []time.Time
	orderErr     error
	analyticsErr error
}

func (n *recordingNotifier) OrderCreated(_ context.Context, order OrderView, _ time.Time) error {
	n.orders = append(n.orders, order)
	return n.orderErr
}

func (n *recordingNotifier) AnalyticsUpdated(_ context.Context, at time.Time) error {
	n.snapshots = append(n.snapshots, at)
	return n.analyticsErr
}

type countingRecorder struct {
	created   int
	published map[string]int
	failed    map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{published: map[string]int{}, failed: map[string]int{}}
}

func (r *countingRecorder) OrderCreated() { r.created++ }

func (r *countingRecorder) NotificationPublished(event string, err error) {
	if err != nil {
		r.failed[event]++
		return
	}
	r.published[event]++
}
