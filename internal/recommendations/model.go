// Package recommendations turns the last week of sales and the current
// weather into advisory suggestions and dynamic prices.
package recommendations

import "github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/weather"

// Bundle is the full recommendation response.
type Bundle struct {
	SalesAnalysis           SalesAnalysis       `json:"sales_analysis"`
	WeatherInfo             weather.Conditions  `json:"weather_info"`
	AIRecommendations       []Advice            `json:"ai_recommendations"`
	WeatherBasedSuggestions []WeatherSuggestion `json:"weather_based_suggestions"`
	PricingRecommendations  []PriceSuggestion   `json:"pricing_recommendations"`
	StrategicActions        []StrategicAction   `json:"strategic_actions"`
	Timestamp               string              `json:"timestamp"`
}

// SalesAnalysis summarises the trailing seven days.
type SalesAnalysis struct {
	Period                Period               `json:"period"`
	Summary               Summary              `json:"summary"`
	TopProducts           []ProductPerformance `json:"top_products"`
	LowPerformingProducts []LowPerformer       `json:"low_performing_products"`
	HourlyTrends          []HourlyTrend        `json:"hourly_trends"`
}

// Period bounds the analysed window.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Summary holds the window totals.
type Summary struct {
	TotalRevenue  float64 `json:"total_revenue"`
	TotalOrders   int     `json:"total_orders"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

// ProductPerformance is one of the window's best sellers.
type ProductPerformance struct {
	ProductID     int64   `json:"product_id"`
	ProductName   string  `json:"product_name"`
	TotalQuantity int     `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
	OrderCount    int     `json:"order_count"`
	AvgPrice      float64 `json:"avg_price"`
}

// LowPerformer is a catalog product without orders in the window.
type LowPerformer struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	BasePrice   float64 `json:"base_price"`
}

// HourlyTrend buckets the window by hour of day.
type HourlyTrend struct {
	Hour       string  `json:"hour"`
	OrderCount int     `json:"order_count"`
	Revenue    float64 `json:"revenue"`
}

// Advice is a rule-triggered suggestion.
type Advice struct {
	Type           string `json:"type"`
	Priority       string `json:"priority"`
	Action         string `json:"action"`
	ExpectedImpact string `json:"expected_impact"`
	Reasoning      string `json:"reasoning"`
}

// WeatherSuggestion recommends products for the current conditions.
type WeatherSuggestion struct {
	Trigger            string   `json:"trigger"`
	Temperature        *float64 `json:"temperature,omitempty"`
	Condition          string   `json:"condition,omitempty"`
	Products           []string `json:"products"`
	Action             string   `json:"action"`
	DiscountSuggestion string   `json:"discount_suggestion"`
	Reasoning          string   `json:"reasoning"`
}

// PriceSuggestion is the dynamic price of one catalog product.
type PriceSuggestion struct {
	ProductID          int64        `json:"product_id"`
	ProductName        string       `json:"product_name"`
	Category           string       `json:"category"`
	CurrentPrice       float64      `json:"current_price"`
	SuggestedPrice     float64      `json:"suggested_price"`
	PriceChangePercent float64      `json:"price_change_percent"`
	Factors            PriceFactors `json:"factors"`
}

// PriceFactors explains a PriceSuggestion.
type PriceFactors struct {
	Season            string `json:"season"`
	Weather           string `json:"weather"`
	TemperatureImpact string `json:"temperature_impact"`
	DemandImpact      string `json:"demand_impact"`
}

// StrategicAction is an advisory plan item.
type StrategicAction struct {
	Category string `json:"category"`
	Priority string `json:"priority"`
	Action   string `json:"action"`
	Target   string `json:"target"`
	Timeline string `json:"timeline"`
}
