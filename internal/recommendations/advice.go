package recommendations

import (
	"fmt"
	"strings"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/weather"
)

var aovThreshold = hundred

func adviseFromSales(sales salesWindow) []Advice {
	advice := make([]Advice, 0, len(sales.low)+2)
	if len(sales.top) > 0 {
		advice = append(advice, Advice{
			Type:           "promote_bestseller",
			Priority:       "high",
			Action:         fmt.Sprintf("Increase marketing budget for '%s' as it's generating the highest revenue", sales.top[0].ProductName),
			ExpectedImpact: "Revenue increase of 15-25%",
			Reasoning:      "Top-performing product with proven market demand",
		})
	}
	for _, p := range sales.low {
		advice = append(advice, Advice{
			Type:           "boost_underperformer",
			Priority:       "medium",
			Action:         fmt.Sprintf("Create targeted promotion for '%s' with 20%% discount", p.Name),
			ExpectedImpact: "Increase sales by 40-60%",
			Reasoning:      "Product has potential but needs promotional push",
		})
	}
	if peak, ok := peakHour(sales.hourly); ok {
		advice = append(advice, Advice{
			Type:           "timing_optimization",
			Priority:       "medium",
			Action:         fmt.Sprintf("Schedule flash sales during peak hour (%s:00)", peak.hour),
			ExpectedImpact: "Maximize conversion during high-traffic periods",
			Reasoning:      "Historical data shows highest revenue at this time",
		})
	}
	return advice
}

// peakHour picks the highest-revenue bucket; ties go to the earliest hour.
func peakHour(hourly []hourBucket) (hourBucket, bool) {
	if len(hourly) == 0 {
		return hourBucket{}, false
	}
	best := hourly[0]
	for _, h := range hourly[1:] {
		if h.revenue.GreaterThan(best.revenue) {
			best = h
		}
	}
	return best, true
}

func suggestForWeather(conditions weather.Conditions) []WeatherSuggestion {
	temperature := conditions.Temperature
	var suggestions []WeatherSuggestion
	switch {
	case temperature > 25:
		suggestions = append(suggestions, WeatherSuggestion{
			Trigger:            "hot_weather",
			Temperature:        &temperature,
			Products:           []string{"Bluetooth Speaker", "Tablet Air"},
			Action:             "Promote portable electronics for outdoor activities",
			DiscountSuggestion: "15% off summer electronics bundle",
			Reasoning:          "Hot weather increases outdoor activity and electronics usage",
		})
	case temperature < 10:
		suggestions = append(suggestions, WeatherSuggestion{
			Trigger:            "cold_weather",
			Temperature:        &temperature,
			Products:           []string{`Laptop Pro 15"`, "Mechanical Keyboard"},
			Action:             "Promote indoor electronics and productivity tools",
			DiscountSuggestion: "20% off work-from-home bundle",
			Reasoning:          "Cold weather encourages indoor activities and productivity",
		})
	default:
		suggestions = append(suggestions, WeatherSuggestion{
			Trigger:            "moderate_weather",
			Temperature:        &temperature,
			Products:           []string{"Wireless Headphones", "Smartphone X"},
			Action:             "Promote general-use electronics",
			DiscountSuggestion: "10% off communication devices",
			Reasoning:          "Mild weather maintains normal consumption patterns",
		})
	}

	description := strings.ToLower(conditions.Description)
	if strings.Contains(description, "rain") {
		suggestions = append(suggestions, WeatherSuggestion{
			Trigger:            "rainy_weather",
			Condition:          description,
			Products:           []string{"Gaming Mouse", "Mechanical Keyboard"},
			Action:             "Promote indoor entertainment and gaming products",
			DiscountSuggestion: "25% off gaming accessories",
			Reasoning:          "Rainy weather increases indoor entertainment consumption",
		})
	}
	return suggestions
}

func strategicActions(sales salesWindow, conditions weather.Conditions) []StrategicAction {
	var actions []StrategicAction
	if sales.avgOrderValue.LessThan(aovThreshold) {
		actions = append(actions, StrategicAction{
			Category: "revenue_optimization",
			Priority: "high",
			Action:   "Implement bundle offers to increase average order value",
			Target:   "Increase AOV from $" + sales.avgOrderValue.Round(2).String() + " to $120",
			Timeline: "2 weeks",
		})
	}
	actions = append(actions, StrategicAction{
		Category: "inventory_management",
		Priority: "medium",
		Action:   "Adjust inventory levels based on weather forecasts",
		Target:   "Optimize stock for " + conditions.Season + " season",
		Timeline: "1 week",
	})
	if len(sales.low) > 0 {
		actions = append(actions, StrategicAction{
			Category: "marketing_focus",
			Priority: "medium",
			Action:   "Launch targeted campaigns for underperforming products",
			Target:   fmt.Sprintf("Increase sales for %d products", len(sales.low)),
			Timeline: "3 weeks",
		})
	}
	actions = append(actions, StrategicAction{
		Category: "weather_responsive",
		Priority: "low",
		Action:   "Implement automated weather-based promotions",
		Target:   "Increase weather-sensitive product sales by 30%",
		Timeline: "1 month",
	})
	return actions
}
