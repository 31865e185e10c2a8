// Package service contains the page-level logic of the planner: the
// budget planner, weather lookup, exploration, dashboard and trip export.
// Services validate inputs and orchestrate gateway calls. They depend on
// small backend interfaces, never on the HTTP client directly.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
)

// TripBackend is the part of the gateway that reads and removes trips.
type TripBackend interface {
	ListTrips(ctx context.Context) ([]domain.Trip, error)
	GetTrip(ctx context.Context, id string) (domain.Trip, error)
	DeleteTrip(ctx context.Context, id string) error
}

// TripService implements the trips list page.
type TripService struct {
	backend TripBackend
}

// NewTripService constructs a TripService backed by the provided gateway.
func NewTripService(b TripBackend) *TripService {
	return &TripService{backend: b}
}

// List returns all trips of the logged-in user.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.backend.ListTrips(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	return trips, nil
}

// Get returns a single trip by ID.
func (s *TripService) Get(ctx context.Context, id string) (domain.Trip, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Trip{}, domain.NewValidationError("tripId", "")
	}
	trip, err := s.backend.GetTrip(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	return trip, nil
}

// Delete removes a trip. The caller must pass confirmed=true.
func (s *TripService) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return domain.NewValidationError("confirmation", "Please confirm that the trip should be deleted")
	}
	if err := s.backend.DeleteTrip(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}
