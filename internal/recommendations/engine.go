package recommendations

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/analytics"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/catalog"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/orders"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/shared"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/weather"
)

const (
	analysisWindow = 7 * 24 * time.Hour
	topLimit       = 5
)

// Engine builds recommendation bundles on demand.
type Engine struct {
	orders   orders.Reader
	products catalog.Reader
	weather  weather.Provider
	location *time.Location
}

// NewEngine constructs an Engine. loc decides the hour buckets; nil means UTC.
func NewEngine(orderReader orders.Reader, productReader catalog.Reader, provider weather.Provider, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{orders: orderReader, products: productReader, weather: provider, location: loc}
}

// salesWindow keeps the exact figures behind SalesAnalysis.
type salesWindow struct {
	start, end    time.Time
	revenue       decimal.Decimal
	orderCount    int
	avgOrderValue decimal.Decimal
	top           []analytics.ProductTotals
	low           []catalog.Product
	hourly        []hourBucket
}

type hourBucket struct {
	hour    string
	orders  int
	revenue decimal.Decimal
}

// Generate loads the trailing week, the catalog and the weather
// concurrently and derives every recommendation section from them.
func (e *Engine) Generate(ctx context.Context, now time.Time) (Bundle, error) {
	var (
		window     []orders.Order
		products   []catalog.Product
		conditions weather.Conditions
	)
	start := now.Add(-analysisWindow)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		window, err = e.orders.ListOrders(gctx, orders.ListFilter{From: start})
		return err
	})
	g.Go(func() error {
		var err error
		products, err = e.products.ListProducts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		conditions, err = e.weather.Current(gctx)
		if err != nil {
			return shared.Dependency("weather", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Bundle{}, fmt.Errorf("generate recommendations: %w", err)
	}
	conditions.Season = weather.Season(now)

	sales := analyzeSales(window, products, start, now, e.location)
	return Bundle{
		SalesAnalysis:           sales.view(),
		WeatherInfo:             conditions,
		AIRecommendations:       adviseFromSales(sales),
		WeatherBasedSuggestions: suggestForWeather(conditions),
		PricingRecommendations:  priceProducts(products, sales, conditions),
		StrategicActions:        strategicActions(sales, conditions),
		Timestamp:               shared.ISOTime(now),
	}, nil
}

func analyzeSales(window []orders.Order, products []catalog.Product, start, end time.Time, loc *time.Location) salesWindow {
	names := make(map[int64]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	sales := salesWindow{
		start:         start,
		end:           end,
		revenue:       analytics.Revenue(window),
		orderCount:    len(window),
		avgOrderValue: decimal.Zero,
		top:           analytics.RankByRevenue(window, names, topLimit),
	}
	if sales.orderCount > 0 {
		sales.avgOrderValue = sales.revenue.Div(decimal.NewFromInt(int64(sales.orderCount)))
	}

	ordered := make(map[int64]bool, len(window))
	for _, o := range window {
		ordered[o.ProductID] = true
	}
	for _, p := range products {
		if !ordered[p.ID] {
			sales.low = append(sales.low, p)
		}
	}

	byHour := make(map[string]*hourBucket)
	for _, o := range window {
		hour := o.OrderDate.In(loc).Format("15")
		bucket, ok := byHour[hour]
		if !ok {
			bucket = &hourBucket{hour: hour, revenue: decimal.Zero}
			byHour[hour] = bucket
		}
		bucket.orders++
		bucket.revenue = bucket.revenue.Add(o.Total())
	}
	for _, bucket := range byHour {
		sales.hourly = append(sales.hourly, *bucket)
	}
	slices.SortFunc(sales.hourly, func(a, b hourBucket) int {
		switch {
		case a.hour < b.hour:
			return -1
		case a.hour > b.hour:
			return 1
		}
		return 0
	})
	return sales
}

func (s salesWindow) view() SalesAnalysis {
	analysis := SalesAnalysis{
		Period: Period{Start: shared.ISOTime(s.start), End: shared.ISOTime(s.end)},
		Summary: Summary{
			TotalRevenue:  analytics.Money(s.revenue),
			TotalOrders:   s.orderCount,
			AvgOrderValue: analytics.Money(s.avgOrderValue),
		},
		TopProducts:           make([]ProductPerformance, 0, len(s.top)),
		LowPerformingProducts: make([]LowPerformer, 0, len(s.low)),
		HourlyTrends:          make([]HourlyTrend, 0, len(s.hourly)),
	}
	for _, p := range s.top {
		analysis.TopProducts = append(analysis.TopProducts, ProductPerformance{
			ProductID:     p.ProductID,
			ProductName:   p.ProductName,
			TotalQuantity: p.Quantity,
			TotalRevenue:  analytics.Money(p.Revenue),
			OrderCount:    p.Orders,
			AvgPrice:      analytics.Money(p.AverageUnitPrice()),
		})
	}
	for _, p := range s.low {
		analysis.LowPerformingProducts = append(analysis.LowPerformingProducts, LowPerformer{
			ProductID:   p.ID,
			ProductName: p.Name,
			Category:    Category(p.Name),
			BasePrice:   analytics.Money(p.Price),
		})
	}
	for _, h := range s.hourly {
		analysis.HourlyTrends = append(analysis.HourlyTrends, HourlyTrend{
			Hour:       h.hour,
			OrderCount: h.orders,
			Revenue:    analytics.Money(h.revenue),
		})
	}
	return analysis
}
