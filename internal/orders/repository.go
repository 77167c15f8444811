package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/platform/db"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/shared"
)

// Reader lists orders for aggregation.
type Reader interface {
	ListOrders(ctx context.Context, filter ListFilter) ([]Order, error)
}

// Store is the full persistence capability used by ingestion.
type Store interface {
	Reader
	CreateOrder(ctx context.Context, order Order) (Order, error)
	GetOrder(ctx context.Context, id int64) (Order, error)
}

// Repository provides PostgreSQL backed persistence for orders.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const orderColumns = `id, product_id, quantity, price, order_date, created_at, updated_at`

// CreateOrder inserts order and returns it with its generated id and
// timestamps.
func (r *Repository) CreateOrder(ctx context.Context, order Order) (Order, error) {
	const query = `INSERT INTO orders (product_id, quantity, price, order_date)
VALUES ($1, $2, $3::numeric, $4)
RETURNING ` + orderColumns

	var created Order
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		created, err = scanOrder(tx.QueryRow(ctx, query, order.ProductID, order.Quantity, order.Price.String(), order.OrderDate))
		return err
	})
	if err != nil {
		return Order{}, shared.Dependency("insert order", err)
	}
	return created, nil
}

// GetOrder loads one order, returning shared.ErrNotFound when absent.
func (r *Repository) GetOrder(ctx context.Context, id int64) (Order, error) {
	order, err := scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, fmt.Errorf("order %d: %w", id, shared.ErrNotFound)
		}
		return Order{}, shared.Dependency("get order", err)
	}
	return order, nil
}

// ListOrders returns orders matching filter in id order.
func (r *Repository) ListOrders(ctx context.Context, filter ListFilter) ([]Order, error) {
	var (
		where []string
		args  []any
	)
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		where = append(where, fmt.Sprintf("order_date >= $%d", len(args)))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		where = append(where, fmt.Sprintf("order_date < $%d", len(args)))
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + orderColumns + ` FROM orders`)
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	if filter.Newest {
		sb.WriteString(" ORDER BY id DESC")
	} else {
		sb.WriteString(" ORDER BY id")
	}
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, shared.Dependency("list orders", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, shared.Dependency("scan order", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.Dependency("list orders", err)
	}
	return orders, nil
}

func scanOrder(row pgx.Row) (Order, error) {
	var (
		o         Order
		price     pgtype.Numeric
		orderDate time.Time
	)
	if err := row.Scan(&o.ID, &o.ProductID, &o.Quantity, &price, &orderDate, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return Order{}, err
	}
	value, err := db.Decimal(price)
	if err != nil {
		return Order{}, err
	}
	o.Price = value
	o.OrderDate = orderDate
	return o, nil
}
