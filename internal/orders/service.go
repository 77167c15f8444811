package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/catalog"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/shared"
)

// ErrEmptyCatalog is returned by CreateDemo when no product exists.
var ErrEmptyCatalog = fmt.Errorf("no products found: %w", shared.ErrNotFound)

// Notifier fans a created order out to live subscribers.
type Notifier interface {
	OrderCreated(ctx context.Context, order OrderView, at time.Time) error
	AnalyticsUpdated(ctx context.Context, at time.Time) error
}

// Recorder receives ingestion counters.
type Recorder interface {
	OrderCreated()
	NotificationPublished(event string, err error)
}

// ServiceConfig carries the optional collaborators of Service.
type ServiceConfig struct {
	Logger   *slog.Logger
	Notifier Notifier
	Recorder Recorder
	// Location interprets order dates supplied without a zone.
	Location *time.Location
}

// Service validates, persists and broadcasts orders.
type Service struct {
	store    Store
	products catalog.Reader
	notifier Notifier
	recorder Recorder
	logger   *slog.Logger
	location *time.Location
	validate *validator.Validate
	intn     func(int) int
}

// NewService constructs the ingestion service.
func NewService(store Store, products catalog.Reader, cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		store:    store,
		products: products,
		notifier: cfg.Notifier,
		recorder: cfg.Recorder,
		logger:   logger.With(slog.String("component", "orders")),
		location: loc,
		validate: newValidator(),
		intn:     rand.IntN,
	}
}

// Create validates req, persists the order at the caller supplied price and
// publishes order-created plus a fresh analytics snapshot. Publish failures
// are logged and never fail the call.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest, now time.Time) (Order, error) {
	verr := shared.NewValidationError()
	if err := validateRequest(s.validate, req, verr); err != nil {
		return Order{}, err
	}

	orderDate := now
	if req.Date != nil && strings.TrimSpace(*req.Date) != "" {
		parsed, err := parseOrderDate(*req.Date, s.location)
		if err != nil {
			verr.Add("date", "The date field must be a valid date.")
		} else {
			orderDate = parsed
		}
	}

	var product catalog.Product
	if req.ProductID != nil && !verr.Has("product_id") {
		p, err := s.products.GetProduct(ctx, *req.ProductID)
		switch {
		case errors.Is(err, shared.ErrNotFound):
			verr.Add("product_id", "The selected product id is invalid.")
		case err != nil:
			return Order{}, fmt.Errorf("create order: %w", err)
		default:
			product = p
		}
	}
	if err := verr.Err(); err != nil {
		return Order{}, err
	}

	created, err := s.store.CreateOrder(ctx, Order{
		ProductID: *req.ProductID,
		Quantity:  *req.Quantity,
		Price:     *req.Price,
		OrderDate: orderDate,
	})
	if err != nil {
		return Order{}, fmt.Errorf("create order: %w", err)
	}
	created.Product = &product
	if s.recorder != nil {
		s.recorder.OrderCreated()
	}

	s.broadcast(ctx, created, now)
	return created, nil
}

// CreateDemo places an order for the first catalog product with a random
// quantity (1-5) and unit price (50.00-200.00).
func (s *Service) CreateDemo(ctx context.Context, now time.Time) (Order, error) {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return Order{}, fmt.Errorf("create demo order: %w", err)
	}
	if len(products) == 0 {
		return Order{}, ErrEmptyCatalog
	}
	productID := products[0].ID
	quantity := 1 + s.intn(5)
	price := decimal.New(int64(5000+s.intn(15001)), -2)
	return s.Create(ctx, CreateOrderRequest{
		ProductID: &productID,
		Quantity:  &quantity,
		Price:     &price,
	}, now)
}

// Get returns one order with its product attached.
func (s *Service) Get(ctx context.Context, id int64) (Order, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return Order{}, fmt.Errorf("get order: %w", err)
	}
	product, err := s.products.GetProduct(ctx, order.ProductID)
	if err != nil {
		return Order{}, fmt.Errorf("get order product: %w", err)
	}
	order.Product = &product
	return order, nil
}

// Latest returns up to limit orders, newest first, with products attached.
func (s *Service) Latest(ctx context.Context, limit int) ([]Order, error) {
	list, err := s.store.ListOrders(ctx, ListFilter{Limit: limit, Newest: true})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	byID := make(map[int64]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for i := range list {
		if p, ok := byID[list[i].ProductID]; ok {
			list[i].Product = &p
		}
	}
	return list, nil
}

func (s *Service) broadcast(ctx context.Context, order Order, now time.Time) {
	if s.notifier == nil {
		return
	}
	s.observe(shared.EventOrderCreated, order.ID, s.notifier.OrderCreated(ctx, order.View(), now))
	s.observe(shared.EventAnalyticsUpdated, order.ID, s.notifier.AnalyticsUpdated(ctx, now))
}

func (s *Service) observe(event string, orderID int64, err error) {
	if s.recorder != nil {
		s.recorder.NotificationPublished(event, err)
	}
	if err != nil {
		s.logger.Warn("notification dropped",
			slog.Int64("order_id", orderID),
			slog.Any("error", shared.Notification(event, err)))
	}
}
