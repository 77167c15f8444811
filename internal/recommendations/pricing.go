package recommendations

import (
	"github.com/shopspring/decimal"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/analytics"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/catalog"
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/weather"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)

	seasonalMultipliers = map[string]decimal.Decimal{
		"spring": decimal.RequireFromString("1.0"),
		"summer": decimal.RequireFromString("1.1"),
		"autumn": decimal.RequireFromString("0.95"),
		"winter": decimal.RequireFromString("0.9"),
	}

	hotPremium   = decimal.RequireFromString("1.15")
	coldDiscount = decimal.RequireFromString("0.85")

	leaderDemand = decimal.RequireFromString("1.1")
	strongDemand = decimal.RequireFromString("1.05")
	noDemand     = decimal.RequireFromString("0.9")
	leaderShare  = decimal.RequireFromString("0.3")
	strongShare  = decimal.RequireFromString("0.1")
)

// SeasonalMultiplier returns the price factor for season; unknown seasons
// are neutral.
func SeasonalMultiplier(season string) decimal.Decimal {
	if m, ok := seasonalMultipliers[season]; ok {
		return m
	}
	return one
}

// WeatherMultiplier returns the price factor for a temperature in Celsius.
func WeatherMultiplier(temperature float64) decimal.Decimal {
	switch {
	case temperature > 30:
		return hotPremium
	case temperature < 5:
		return coldDiscount
	default:
		return one
	}
}

// demandMultiplier rates a product by its share of the window revenue.
// Products outside the top sellers get the floor.
func demandMultiplier(productID int64, sales salesWindow) decimal.Decimal {
	idx := -1
	for i, p := range sales.top {
		if p.ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return noDemand
	}
	if !sales.revenue.IsPositive() {
		return one
	}
	share := sales.top[idx].Revenue.Div(sales.revenue)
	switch {
	case share.GreaterThan(leaderShare):
		return leaderDemand
	case share.GreaterThan(strongShare):
		return strongDemand
	default:
		return one
	}
}

func priceProducts(products []catalog.Product, sales salesWindow, conditions weather.Conditions) []PriceSuggestion {
	seasonal := SeasonalMultiplier(conditions.Season)
	climate := WeatherMultiplier(conditions.Temperature)

	out := make([]PriceSuggestion, 0, len(products))
	for _, p := range products {
		demand := demandMultiplier(p.ID, sales)
		final := p.Price.Mul(seasonal).Mul(climate).Mul(demand)

		change := 0.0
		if p.Price.IsPositive() {
			change = final.Sub(p.Price).Div(p.Price).Mul(hundred).Round(1).InexactFloat64()
		}
		out = append(out, PriceSuggestion{
			ProductID:          p.ID,
			ProductName:        p.Name,
			Category:           Category(p.Name),
			CurrentPrice:       analytics.Money(p.Price),
			SuggestedPrice:     analytics.Money(final),
			PriceChangePercent: change,
			Factors: PriceFactors{
				Season:            conditions.Season,
				Weather:           conditions.Description,
				TemperatureImpact: impact(climate),
				DemandImpact:      impact(demand),
			},
		})
	}
	return out
}

func impact(multiplier decimal.Decimal) string {
	return multiplier.Sub(one).Mul(hundred).Round(1).String() + "%"
}
