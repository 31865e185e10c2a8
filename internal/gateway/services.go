package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// WeatherQuery selects a forecast.
type WeatherQuery struct {
	Location string
	Days     int
	Units    string
	Lang     string
}

// WeatherForecast returns the forecast payload as the weather provider sent it.
func (c *Client) WeatherForecast(ctx context.Context, q WeatherQuery) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("location", q.Location)
	params.Set("days", strconv.Itoa(q.Days))
	params.Set("units", q.Units)
	params.Set("lang", q.Lang)

	raw, err := c.call(ctx, request{method: http.MethodGet, path: "/api/weather/forecast", query: params})
	if err != nil {
		return nil, fmt.Errorf("gateway.Client.WeatherForecast: %w", err)
	}
	var data json.RawMessage
	if err := decodeData(raw, &data); err != nil {
		return nil, fmt.Errorf("gateway.Client.WeatherForecast: %w", err)
	}
	return data, nil
}

// ExchangeRates is the conversion table for one base currency.
type ExchangeRates struct {
	BaseCode        string             `json:"base_code"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

// ExchangeRates returns the rates from base to every other currency.
func (c *Client) ExchangeRates(ctx context.Context, base string) (ExchangeRates, error) {
	raw, err := c.call(ctx, request{method: http.MethodGet, path: "/api/currency/rates/" + url.PathEscape(base)})
	if err != nil {
		return ExchangeRates{}, fmt.Errorf("gateway.Client.ExchangeRates: %w", err)
	}
	var rates ExchangeRates
	if err := decodeData(raw, &rates); err != nil {
		return ExchangeRates{}, fmt.Errorf("gateway.Client.ExchangeRates: %w", err)
	}
	return rates, nil
}

// SuggestionRequest asks the AI endpoint for destination ideas.
type SuggestionRequest struct {
	Destination string   `json:"destination"`
	Duration    int      `json:"duration"`
	Budget      string   `json:"budget"`
	Interests   []string `json:"interests"`
}

// Suggestions holds either structured suggestions or the model's raw text.
type Suggestions struct {
	Suggestions json.RawMessage `json:"suggestions,omitempty"`
	Raw         string          `json:"raw,omitempty"`
}

// TripSuggestions asks the AI endpoint for an itinerary sketch.
func (c *Client) TripSuggestions(ctx context.Context, in SuggestionRequest) (Suggestions, error) {
	raw, err := c.call(ctx, request{method: http.MethodPost, path: "/api/ai/suggestions", body: in})
	if err != nil {
		return Suggestions{}, fmt.Errorf("gateway.Client.TripSuggestions: %w", err)
	}
	var s Suggestions
	if err := json.Unmarshal(raw, &s); err != nil {
		return Suggestions{}, fmt.Errorf("gateway.Client.TripSuggestions: %w", err)
	}
	return s, nil
}

// PlanRequest asks the AI endpoint for a day-by-day plan.
type PlanRequest struct {
	Destination string   `json:"destination"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Travelers   int      `json:"travelers"`
	Interests   []string `json:"interests,omitempty"`
}

// GeneratePlan returns the generated plan payload.
func (c *Client) GeneratePlan(ctx context.Context, in PlanRequest) (json.RawMessage, error) {
	raw, err := c.call(ctx, request{method: http.MethodPost, path: "/api/ai/plan", body: in})
	if err != nil {
		return nil, fmt.Errorf("gateway.Client.GeneratePlan: %w", err)
	}
	var data json.RawMessage
	if err := decodeData(raw, &data); err != nil {
		return nil, fmt.Errorf("gateway.Client.GeneratePlan: %w", err)
	}
	return data, nil
}

// SearchRestaurants returns restaurants near a location identifier.
func (c *Client) SearchRestaurants(ctx context.Context, locationID string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("locationId", locationID)
	raw, err := c.call(ctx, request{method: http.MethodGet, path: "/api/restaurants/search", query: params})
	if err != nil {
		return nil, fmt.Errorf("gateway.Client.SearchRestaurants: %w", err)
	}
	var data json.RawMessage
	if err := decodeData(raw, &data); err != nil {
		return nil, fmt.Errorf("gateway.Client.SearchRestaurants: %w", err)
	}
	return data, nil
}
