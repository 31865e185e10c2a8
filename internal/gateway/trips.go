package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkordes/trip-planner/internal/domain"
)

// ListTrips returns every trip of the logged-in user.
func (c *Client) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	raw, err := c.call(ctx, request{method: http.MethodGet, path: "/api/trips"})
	if err != nil {
		return nil, fmt.Errorf("gateway.Client.ListTrips: %w", err)
	}
	var trips []domain.Trip
	if err := decodeData(raw, &trips); err != nil {
		return nil, fmt.Errorf("gateway.Client.ListTrips: %w", err)
	}
	return trips, nil
}

// GetTrip returns one trip by id.
func (c *Client) GetTrip(ctx context.Context, id string) (domain.Trip, error) {
	raw, err := c.call(ctx, request{method: http.MethodGet, path: "/api/trips/" + url.PathEscape(id)})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("gateway.Client.GetTrip: %w", err)
	}
	var trip domain.Trip
	if err := decodeData(raw, &trip); err != nil {
		return domain.Trip{}, fmt.Errorf("gateway.Client.GetTrip: %w", err)
	}
	return trip, nil
}

// CreateTrip persists a new trip and returns the stored record.
func (c *Client) CreateTrip(ctx context.Context, in domain.TripInput) (domain.Trip, error) {
	raw, err := c.call(ctx, request{method: http.MethodPost, path: "/api/trips", body: in})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("gateway.Client.CreateTrip: %w", err)
	}
	var trip domain.Trip
	if err := decodeData(raw, &trip); err != nil {
		return domain.Trip{}, fmt.Errorf("gateway.Client.CreateTrip: %w", err)
	}
	return trip, nil
}

// UpdateTrip overwrites trip id with in and returns the stored record.
func (c *Client) UpdateTrip(ctx context.Context, id string, in domain.TripInput) (domain.Trip, error) {
	raw, err := c.call(ctx, request{method: http.MethodPut, path: "/api/trips/" + url.PathEscape(id), body: in})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("gateway.Client.UpdateTrip: %w", err)
	}
	var trip domain.Trip
	if err := decodeData(raw, &trip); err != nil {
		return domain.Trip{}, fmt.Errorf("gateway.Client.UpdateTrip: %w", err)
	}
	return trip, nil
}

// DeleteTrip removes trip id.
func (c *Client) DeleteTrip(ctx context.Context, id string) error {
	if _, err := c.call(ctx, request{method: http.MethodDelete, path: "/api/trips/" + url.PathEscape(id)}); err != nil {
		return fmt.Errorf("gateway.Client.DeleteTrip: %w", err)
	}
	return nil
}
