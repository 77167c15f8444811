// Package orders records purchases against the catalog and runs the
// ingestion path that notifies live subscribers.
package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/catalog"
)

// Order is an immutable purchase record. Price is the unit price captured
// at order time.
type Order struct {
	ID        int64
	ProductID int64
	Quantity  int
	Price     decimal.Decimal
	OrderDate time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	Product *catalog.Product
}

// Total is quantity times unit price. It is never stored.
func (o Order) Total() decimal.Decimal {
	return o.Price.Mul(decimal.NewFromInt(int64(o.Quantity)))
}

// ProductName returns the attached product's name or an empty string.
func (o Order) ProductName() string {
	if o.Product == nil {
		return ""
	}
	return o.Product.Name
}

// OrderView is the serialized order shared by the API and published events.
type OrderView struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
	OrderDate   string  `json:"order_date"`
	CreatedAt   string  `json:"created_at"`
}

// View renders o with timestamps in UTC ISO-8601.
func (o Order) View() OrderView {
	return OrderView{
		ID:          o.ID,
		ProductID:   o.ProductID,
		ProductName: o.ProductName(),
		Quantity:    o.Quantity,
		Price:       o.Price.Round(2).InexactFloat64(),
		Total:       o.Total().Round(2).InexactFloat64(),
		OrderDate:   formatTime(o.OrderDate),
		CreatedAt:   formatTime(o.CreatedAt),
	}
}

// ListFilter narrows ListOrders. From is inclusive, To exclusive; zero
// values leave the bound open. Limit zero returns every match.
type ListFilter struct {
	From   time.Time
	To     time.Time
	Limit  int
	Newest bool
}
