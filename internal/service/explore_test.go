package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/gateway"
	"github.com/pkordes/trip-planner/internal/service"
)

func TestExploreService_Explore(t *testing.T) {
	var (
		req      gateway.SuggestionRequest
		location string
	)
	svc := service.NewExploreService(&mockBackend{
		tripSuggestions: func(_ context.Context, in gateway.SuggestionRequest) (gateway.Suggestions, error) {
			req = in
			return gateway.Suggestions{Suggestions: json.RawMessage(`[{"day":1}]`)}, nil
		},
		searchRestaurants: func(_ context.Context, id string) (json.RawMessage, error) {
			location = id
			return json.RawMessage(`{"data":[]}`), nil
		},
	}, nil, nil)

	got, err := svc.Explore(context.Background(), "Goa")

	require.NoError(t, err)
	assert.Equal(t, 5, req.Duration)
	assert.Equal(t, "medium", req.Budget)
	assert.Equal(t, []string{"exploration", "food", "culture"}, req.Interests)
	assert.JSONEq(t, `[{"day":1}]`, string(got.Suggestions))
	assert.JSONEq(t, `{"data":[]}`, string(got.Restaurants))
	assert.NotEmpty(t, location)
}

func TestExploreService_Explore_RawTextFallback(t *testing.T) {
	svc := service.NewExploreService(&mockBackend{
		tripSuggestions: func(context.Context, gateway.SuggestionRequest) (gateway.Suggestions, error) {
			return gateway.Suggestions{Raw: "Day 1: walk"}, nil
		},
	}, nil, nil)

	// Atlantis has no location id, so no restaurant search is made.
	got, err := svc.Explore(context.Background(), "Atlantis")

	require.NoError(t, err)
	assert.JSONEq(t, `"Day 1: walk"`, string(got.Suggestions))
	assert.Nil(t, got.Restaurants)
}

func TestExploreService_Explore_RestaurantFailureTolerated(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	svc := service.NewExploreService(&mockBackend{
		tripSuggestions: func(context.Context, gateway.SuggestionRequest) (gateway.Suggestions, error) {
			return gateway.Suggestions{Raw: "ok"}, nil
		},
		searchRestaurants: func(context.Context, string) (json.RawMessage, error) {
			return nil, errors.New("rate limited")
		},
	}, nil, log)

	got, err := svc.Explore(context.Background(), "Paris")

	require.NoError(t, err)
	assert.Nil(t, got.Restaurants)
	assert.Contains(t, buf.String(), "restaurant search failed")
}

func TestExploreService_Explore_Errors(t *testing.T) {
	svc := service.NewExploreService(&mockBackend{
		tripSuggestions: func(context.Context, gateway.SuggestionRequest) (gateway.Suggestions, error) {
			return gateway.Suggestions{}, &domain.ServerError{Status: 503, Message: "AI unavailable"}
		},
	}, nil, nil)

	_, err := svc.Explore(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Explore(context.Background(), "Paris")
	assert.Equal(t, "AI unavailable", domain.UserMessage(err))
}
