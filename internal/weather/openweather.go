package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the OpenWeather current-weather API root.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherConfig configures the live client.
type OpenWeatherConfig struct {
	BaseURL    string
	APIKey     string
	City       string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// OpenWeather queries the OpenWeather current-weather endpoint.
type OpenWeather struct {
	baseURL    string
	apiKey     string
	city       string
	httpClient *http.Client
}

// NewOpenWeather constructs a live client. A zero timeout means ten seconds.
func NewOpenWeather(cfg OpenWeatherConfig) *OpenWeather {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &OpenWeather{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		city:       cfg.City,
		httpClient: client,
	}
}

type openWeatherResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
}

// Current fetches conditions for the configured city.
func (c *OpenWeather) Current(ctx context.Context) (Conditions, error) {
	if c.apiKey == "" {
		return Conditions{}, ErrNotConfigured
	}
	query := url.Values{}
	query.Set("q", c.city)
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/weather?"+query.Encode(), nil)
	if err != nil {
		return Conditions{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Conditions{}, fmt.Errorf("weather: request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Conditions{}, fmt.Errorf("weather: openweather returned status %d", resp.StatusCode)
	}

	var payload openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Conditions{}, fmt.Errorf("weather: decode: %w", err)
	}
	if len(payload.Weather) == 0 {
		return Conditions{}, fmt.Errorf("weather: response missing conditions")
	}
	return Conditions{
		Temperature: payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		Humidity:    payload.Main.Humidity,
		Description: payload.Weather[0].Description,
		Main:        payload.Weather[0].Main,
		WindSpeed:   payload.Wind.Speed,
		City:        payload.Name,
		Country:     payload.Sys.Country,
		Source:      SourceOpenWeather,
	}, nil
}
