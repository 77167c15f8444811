package analytics

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/catalog"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/orders"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/shared"
)

const (
	topProductsLimit = 10
	window           = time.Minute
	defaultDays      = 30
)

// AllowedDays lists the ranges accepted by DailySeries.
var AllowedDays = []int{7, 30, 60, 90, 365}

// Aggregator computes snapshots from the order and catalog readers.
type Aggregator struct {
	orders   orders.Reader
	products catalog.Reader
	location *time.Location
}

// NewAggregator constructs an Aggregator. loc decides calendar-day
// boundaries; nil means UTC.
func NewAggregator(orderReader orders.Reader, productReader catalog.Reader, loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &Aggregator{orders: orderReader, products: productReader, location: loc}
}

// Snapshot aggregates every order as of now.
func (a *Aggregator) Snapshot(ctx context.Context, now time.Time) (Snapshot, error) {
	all, err := a.orders.ListOrders(ctx, orders.ListFilter{})
	if err != nil {
		return Snapshot{}, fmt.Errorf("analytics snapshot: %w", err)
	}
	names, err := a.ProductNames(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("analytics snapshot: %w", err)
	}
	return BuildSnapshot(all, names, now), nil
}

// BuildSnapshot is the pure aggregation behind Snapshot. now is captured
// once so both windows line up.
func BuildSnapshot(all []orders.Order, names map[int64]string, now time.Time) Snapshot {
	windowStart := now.Add(-window)
	prevStart := windowStart.Add(-window)

	recent := between(all, windowStart, time.Time{})
	recentRevenue := Revenue(recent)
	previousRevenue := Revenue(between(all, prevStart, windowStart))

	ranked := RankByRevenue(all, names, topProductsLimit)
	top := make([]TopProduct, 0, len(ranked))
	for _, p := range ranked {
		top = append(top, TopProduct{
			ProductID:         p.ProductID,
			ProductName:       p.ProductName,
			TotalRevenue:      Money(p.Revenue),
			TotalQuantitySold: p.Quantity,
		})
	}

	return Snapshot{
		TotalRevenue: Money(Revenue(all)),
		TopProducts:  top,
		LastMinute: LastMinute{
			RevenueChange:                   Money(recentRevenue),
			OrdersCount:                     len(recent),
			RevenueChangeFromPreviousMinute: Money(recentRevenue.Sub(previousRevenue)),
			RevenueChangePercentage:         ChangePercentage(recentRevenue, previousRevenue, 2),
			TimeRange: TimeRange{
				From: shared.ISOTime(windowStart),
				To:   shared.ISOTime(now),
			},
		},
		Timestamp: shared.ISOTime(now),
	}
}

// DailySeries totals revenue per calendar day over the trailing days.
func (a *Aggregator) DailySeries(ctx context.Context, now time.Time, days int) (DailySeries, error) {
	if days == 0 {
		days = defaultDays
	}
	if !slices.Contains(AllowedDays, days) {
		verr := shared.NewValidationError()
		verr.Add("days", "The selected days is invalid.")
		return DailySeries{}, verr
	}

	from := now.AddDate(0, 0, -days)
	list, err := a.orders.ListOrders(ctx, orders.ListFilter{From: from})
	if err != nil {
		return DailySeries{}, fmt.Errorf("analytics daily series: %w", err)
	}

	byDay := make(map[string][]orders.Order)
	var points []DailyPoint
	for _, o := range list {
		day := o.OrderDate.In(a.location)
		key := day.Format(time.DateOnly)
		if _, ok := byDay[key]; !ok {
			points = append(points, DailyPoint{Date: key, Label: day.Format("01/02")})
		}
		byDay[key] = append(byDay[key], o)
	}
	for i := range points {
		dayOrders := byDay[points[i].Date]
		points[i].Revenue = Money(Revenue(dayOrders))
		points[i].Orders = len(dayOrders)
	}
	slices.SortFunc(points, func(x, y DailyPoint) int {
		return strings.Compare(x.Date, y.Date)
	})

	return DailySeries{
		Days:   days,
		From:   shared.ISOTime(from),
		To:     shared.ISOTime(now),
		Points: points,
	}, nil
}

// DailyStats compares today's and yesterday's sales in the aggregator's
// location and names the best seller by units over the last seven days.
func (a *Aggregator) DailyStats(ctx context.Context, now time.Time) (DailyStats, error) {
	local := now.In(a.location)
	today := startOfDay(local)
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)
	weekStart := startOfDay(local.AddDate(0, 0, -7))

	list, err := a.orders.ListOrders(ctx, orders.ListFilter{From: weekStart})
	if err != nil {
		return DailyStats{}, fmt.Errorf("analytics daily stats: %w", err)
	}
	names, err := a.ProductNames(ctx)
	if err != nil {
		return DailyStats{}, fmt.Errorf("analytics daily stats: %w", err)
	}

	todayOrders := between(list, today, tomorrow)
	yesterdayOrders := between(list, yesterday, today)
	todayRevenue := Revenue(todayOrders)
	yesterdayRevenue := Revenue(yesterdayOrders)

	percentage := 100.0
	if yesterdayRevenue.IsPositive() {
		percentage = todayRevenue.Sub(yesterdayRevenue).Div(yesterdayRevenue).Mul(hundred).Round(1).InexactFloat64()
	}

	stats := DailyStats{
		TodayRevenue:            Money(todayRevenue),
		YesterdayRevenue:        Money(yesterdayRevenue),
		RevenueChangePercentage: percentage,
		TodayOrders:             len(todayOrders),
		YesterdayOrders:         len(yesterdayOrders),
		OrdersDifference:        len(todayOrders) - len(yesterdayOrders),
		Timestamp:               shared.ISOTime(now),
	}

	groups := GroupByProduct(list, names)
	slices.SortStableFunc(groups, func(x, y ProductTotals) int {
		return y.Quantity - x.Quantity
	})
	if len(groups) > 0 {
		stats.TopProduct = &TopSeller{
			ProductID:   groups[0].ProductID,
			ProductName: groups[0].ProductName,
			UnitsSold:   groups[0].Quantity,
		}
	}
	return stats, nil
}

// ProductNames maps product ids to names for the explicit join.
func (a *Aggregator) ProductNames(ctx context.Context) (map[int64]string, error) {
	products, err := a.products.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	return names, nil
}
