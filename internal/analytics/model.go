// Package analytics aggregates orders joined with the catalog into revenue
// snapshots. Every call recomputes from the full order set; nothing is cached.
package analytics

// Snapshot is the real-time analytics view published after each order.
type Snapshot struct {
	TotalRevenue float64      `json:"total_revenue"`
	TopProducts  []TopProduct `json:"top_products"`
	LastMinute   LastMinute   `json:"last_minute"`
	Timestamp    string       `json:"timestamp"`
}

// TopProduct is one entry of the revenue ranking.
type TopProduct struct {
	ProductID         int64   `json:"product_id"`
	ProductName       string  `json:"product_name"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalQuantitySold int     `json:"total_quantity_sold"`
}

// LastMinute compares the trailing minute with the minute before it.
// RevenueChange holds the trailing minute's revenue.
type LastMinute struct {
	RevenueChange                   float64   `json:"revenue_change"`
	OrdersCount                     int       `json:"orders_count"`
	RevenueChangeFromPreviousMinute float64   `json:"revenue_change_from_previous_minute"`
	RevenueChangePercentage         float64   `json:"revenue_change_percentage"`
	TimeRange                       TimeRange `json:"time_range"`
}

// TimeRange bounds a window in ISO-8601.
type TimeRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// DailyPoint is the revenue of one calendar day.
type DailyPoint struct {
	Date    string  `json:"date"`
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// DailySeries is the per-day revenue over a trailing range.
type DailySeries struct {
	Days   int          `json:"days"`
	From   string       `json:"from"`
	To     string       `json:"to"`
	Points []DailyPoint `json:"points"`
}

// DailyStats compares today with yesterday.
type DailyStats struct {
	TodayRevenue            float64    `json:"today_revenue"`
	YesterdayRevenue        float64    `json:"yesterday_revenue"`
	RevenueChangePercentage float64    `json:"revenue_change_percentage"`
	TodayOrders             int        `json:"today_orders"`
	YesterdayOrders         int        `json:"yesterday_orders"`
	OrdersDifference        int        `json:"orders_difference"`
	TopProduct              *TopSeller `json:"top_product"`
	Timestamp               string     `json:"timestamp"`
}

// TopSeller is the best selling product by units.
type TopSeller struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitsSold   int    `json:"units_sold"`
}
