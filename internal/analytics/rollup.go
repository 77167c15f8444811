package analytics

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/orders"
)

// ProductTotals accumulates one product's sales.
type ProductTotals struct {
	ProductID   int64
	ProductName string
	Revenue     decimal.Decimal
	Quantity    int
	Orders      int
	PriceSum    decimal.Decimal
}

// AverageUnitPrice is the mean unit price across the product's orders.
func (p ProductTotals) AverageUnitPrice() decimal.Decimal {
	if p.Orders == 0 {
		return decimal.Zero
	}
	return p.PriceSum.Div(decimal.NewFromInt(int64(p.Orders)))
}

var hundred = decimal.NewFromInt(100)

// Money rounds d to cents for output.
func Money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// Revenue sums quantity times price over list without rounding.
func Revenue(list []orders.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range list {
		total = total.Add(o.Total())
	}
	return total
}

// GroupByProduct totals list per product in first-appearance order. Orders
// whose product is missing from names are skipped, matching an inner join.
func GroupByProduct(list []orders.Order, names map[int64]string) []ProductTotals {
	index := make(map[int64]int)
	var groups []ProductTotals
	for _, o := range list {
		name, ok := names[o.ProductID]
		if !ok {
			continue
		}
		i, seen := index[o.ProductID]
		if !seen {
			i = len(groups)
			index[o.ProductID] = i
			groups = append(groups, ProductTotals{ProductID: o.ProductID, ProductName: name, Revenue: decimal.Zero, PriceSum: decimal.Zero})
		}
		groups[i].Revenue = groups[i].Revenue.Add(o.Total())
		groups[i].Quantity += o.Quantity
		groups[i].Orders++
		groups[i].PriceSum = groups[i].PriceSum.Add(o.Price)
	}
	return groups
}

// RankByRevenue groups list per product and keeps the limit best by revenue.
// Ties keep first-appearance order.
func RankByRevenue(list []orders.Order, names map[int64]string, limit int) []ProductTotals {
	groups := GroupByProduct(list, names)
	slices.SortStableFunc(groups, func(a, b ProductTotals) int {
		return b.Revenue.Cmp(a.Revenue)
	})
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	return groups
}

// ChangePercentage is change relative to previous, rounded to places. With
// no baseline it is 100 when current is positive and 0 otherwise.
func ChangePercentage(current, previous decimal.Decimal, places int32) float64 {
	if previous.IsPositive() {
		return current.Sub(previous).Div(previous).Mul(hundred).Round(places).InexactFloat64()
	}
	if current.IsPositive() {
		return 100
	}
	return 0
}

func between(list []orders.Order, from, to time.Time) []orders.Order {
	var out []orders.Order
	for _, o := range list {
		if !from.IsZero() && o.OrderDate.Before(from) {
			continue
		}
		if !to.IsZero() && !o.OrderDate.Before(to) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
