package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/gateway"
	"github.com/pkordes/trip-planner/internal/locations"
)

// Exploration defaults, matching the explore page.
const (
	exploreDays   = 5
	exploreBudget = "medium"
)

var exploreInterests = []string{"exploration", "food", "culture"}

// ExploreBackend is the part of the gateway the explore page calls.
type ExploreBackend interface {
	TripSuggestions(ctx context.Context, in gateway.SuggestionRequest) (gateway.Suggestions, error)
	SearchRestaurants(ctx context.Context, locationID string) (json.RawMessage, error)
}

// ExploreService combines AI suggestions with restaurant results.
type ExploreService struct {
	backend   ExploreBackend
	locations *locations.Table
	log       *slog.Logger
}

// NewExploreService constructs an ExploreService. A nil table selects
// locations.Default().
func NewExploreService(b ExploreBackend, table *locations.Table, log *slog.Logger) *ExploreService {
	if table == nil {
		table = locations.Default()
	}
	if log == nil {
		log = slog.Default()
	}
	return &ExploreService{backend: b, locations: table, log: log}
}

// Exploration is the explore page result. Suggestions holds the structured
// suggestions when the model returned them, else its raw text as a JSON
// string. Restaurants is empty when the lookup failed or the destination
// has no known location identifier.
type Exploration struct {
	Destination string          `json:"destination"`
	Suggestions json.RawMessage `json:"suggestions"`
	Restaurants json.RawMessage `json:"restaurants,omitempty"`
}

// Explore fetches suggestions for query. A failed restaurant lookup is
// logged and does not fail the call.
func (s *ExploreService) Explore(ctx context.Context, query string) (Exploration, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Exploration{}, domain.NewValidationError("query", "Please enter a destination")
	}

	sug, err := s.backend.TripSuggestions(ctx, gateway.SuggestionRequest{
		Destination: query,
		Duration:    exploreDays,
		Budget:      exploreBudget,
		Interests:   exploreInterests,
	})
	if err != nil {
		return Exploration{}, fmt.Errorf("service.ExploreService.Explore: %w", err)
	}

	out := Exploration{Destination: query, Suggestions: sug.Suggestions}
	if len(out.Suggestions) == 0 {
		text, _ := json.Marshal(sug.Raw)
		out.Suggestions = text
	}

	loc, err := s.locations.Resolve(query)
	if err != nil {
		s.log.Info("no restaurant lookup for destination", "destination", query)
		return out, nil
	}
	restaurants, err := s.backend.SearchRestaurants(ctx, loc.ID)
	if err != nil {
		s.log.Warn("restaurant search failed", "destination", query, "location_id", loc.ID, "error", err)
		return out, nil
	}
	out.Restaurants = restaurants
	return out, nil
}
