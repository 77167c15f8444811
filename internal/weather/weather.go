// Package weather supplies the current conditions used by pricing and
// product suggestions.
package weather

import (
	"context"
	"errors"
	"time"
)

// Source tags.
const (
	SourceOpenWeather = "openweather"
	SourceMock        = "mock"
)

// ErrNotConfigured is returned by the live client when no API key is set.
var ErrNotConfigured = errors.New("weather: api key not configured")

// Conditions is a weather reading in metric units.
type Conditions struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Description string  `json:"description"`
	Main        string  `json:"main"`
	WindSpeed   float64 `json:"wind_speed"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Season      string  `json:"season"`
	Source      string  `json:"source"`
}

// Provider returns current conditions or fails.
type Provider interface {
	Current(ctx context.Context) (Conditions, error)
}

// Season maps the calendar month of t to a northern-hemisphere season.
func Season(t time.Time) string {
	switch t.Month() {
	case time.December, time.January, time.February:
		return "winter"
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	default:
		return "autumn"
	}
}
