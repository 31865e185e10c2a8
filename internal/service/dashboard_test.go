package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/clock"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

func TestDashboardService_Load(t *testing.T) {
	now := time.Date(2025, 6, 5, 15, 0, 0, 0, time.UTC)
	trips := []domain.Trip{
		{ID: "past-old", StartDate: day("2025-01-01"), EndDate: day("2025-01-05")},
		{ID: "undated"},
		{ID: "ends-today", StartDate: day("2025-06-01"), EndDate: day("2025-06-05")},
		{ID: "past-recent", StartDate: day("2025-05-01"), EndDate: day("2025-05-04")},
		{ID: "future", StartDate: day("2025-07-01")},
	}
	svc := service.NewDashboardService(&mockBackend{
		listTrips:   func(context.Context) ([]domain.Trip, error) { return trips, nil },
		listBudgets: func(context.Context) ([]domain.Budget, error) { return []domain.Budget{{ID: "b1", Food: 10}}, nil },
	}, clock.Fake(now))

	d, err := svc.Load(context.Background())

	require.NoError(t, err)
	ids := func(ts []domain.Trip) []string {
		out := []string{}
		for _, t := range ts {
			out = append(out, t.ID)
		}
		return out
	}
	assert.Equal(t, []string{"ends-today", "future", "undated"}, ids(d.Upcoming))
	assert.Equal(t, []string{"past-recent", "past-old"}, ids(d.Past))
	require.Len(t, d.Budgets, 1)
	assert.InDelta(t, 10, d.Budgets[0].Total, 0.001)
}

func TestDashboardService_Load_Error(t *testing.T) {
	svc := service.NewDashboardService(&mockBackend{
		listTrips: func(context.Context) ([]domain.Trip, error) {
			return nil, &domain.ConnectionError{BaseURL: "http://localhost:4000"}
		},
	}, clock.Real())

	_, err := svc.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrConnection)
}
