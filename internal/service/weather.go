package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/gateway"
)

// Forecast request defaults, matching the weather page.
const (
	forecastDays  = 5
	forecastUnits = "metric"
	forecastLang  = "en"
	forecastMax   = 5
)

// WeatherBackend is the part of the gateway the weather page calls.
type WeatherBackend interface {
	WeatherForecast(ctx context.Context, q gateway.WeatherQuery) (json.RawMessage, error)
}

// WeatherService looks up forecasts.
type WeatherService struct {
	backend WeatherBackend
}

// NewWeatherService constructs a WeatherService backed by the provided gateway.
func NewWeatherService(b WeatherBackend) *WeatherService {
	return &WeatherService{backend: b}
}

// ForecastEntry is one summarized forecast slot.
type ForecastEntry struct {
	Time        string  `json:"time"`
	Temp        float64 `json:"temp"`
	FeelsLike   float64 `json:"feelsLike"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
}

// Forecast is the weather page result. Raw carries the provider payload
// untouched.
type Forecast struct {
	Location string          `json:"location"`
	Entries  []ForecastEntry `json:"entries"`
	Raw      json.RawMessage `json:"raw,omitempty"`
}

// providerForecast is the subset of the provider payload that is summarized.
type providerForecast struct {
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  float64 `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
}

// Forecast returns up to five summarized entries for location.
func (s *WeatherService) Forecast(ctx context.Context, location string) (Forecast, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return Forecast{}, domain.NewValidationError("location", "Please enter a location")
	}

	raw, err := s.backend.WeatherForecast(ctx, gateway.WeatherQuery{
		Location: location,
		Days:     forecastDays,
		Units:    forecastUnits,
		Lang:     forecastLang,
	})
	if err != nil {
		return Forecast{}, fmt.Errorf("service.WeatherService.Forecast: %w", err)
	}
	return summarizeForecast(location, raw), nil
}

// summarizeForecast keeps the first forecastMax entries. An unrecognized
// payload yields no entries; Raw still carries it.
func summarizeForecast(location string, raw json.RawMessage) Forecast {
	out := Forecast{Location: location, Entries: []ForecastEntry{}, Raw: raw}

	var p providerForecast
	if err := json.Unmarshal(raw, &p); err != nil {
		return out
	}
	if p.City.Name != "" {
		out.Location = p.City.Name
	}
	for _, item := range p.List {
		if len(out.Entries) == forecastMax {
			break
		}
		e := ForecastEntry{
			Time:      item.DtTxt,
			Temp:      item.Main.Temp,
			FeelsLike: item.Main.FeelsLike,
			Humidity:  item.Main.Humidity,
			WindSpeed: item.Wind.Speed,
		}
		if len(item.Weather) > 0 {
			e.Condition = item.Weather[0].Main
			e.Description = item.Weather[0].Description
		}
		out.Entries = append(out.Entries, e)
	}
	return out
}
