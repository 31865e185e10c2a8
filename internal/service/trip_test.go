package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/gateway"
	"github.com/pkordes/trip-planner/internal/service"
)

// mockBackend is a hand-written test double for the gateway.
// Each method is a function field; set only the ones your test needs.
type mockBackend struct {
	listTrips         func(ctx context.Context) ([]domain.Trip, error)
	getTrip           func(ctx context.Context, id string) (domain.Trip, error)
	deleteTrip        func(ctx context.Context, id string) error
	listBudgets       func(ctx context.Context) ([]domain.Budget, error)
	getBudget         func(ctx context.Context, id string) (domain.Budget, error)
	createBudget      func(ctx context.Context, b domain.Budget) (domain.Budget, error)
	updateBudget      func(ctx context.Context, b domain.Budget) (domain.Budget, error)
	deleteBudget      func(ctx context.Context, id string) error
	exchangeRates     func(ctx context.Context, base string) (gateway.ExchangeRates, error)
	weatherForecast   func(ctx context.Context, q gateway.WeatherQuery) (json.RawMessage, error)
	tripSuggestions   func(ctx context.Context, in gateway.SuggestionRequest) (gateway.Suggestions, error)
	searchRestaurants func(ctx context.Context, locationID string) (json.RawMessage, error)
}

func (m *mockBackend) ListTrips(ctx context.Context) ([]domain.Trip, error) { return m.listTrips(ctx) }
func (m *mockBackend) GetTrip(ctx context.Context, id string) (domain.Trip, error) {
	return m.getTrip(ctx, id)
}
func (m *mockBackend) DeleteTrip(ctx context.Context, id string) error { return m.deleteTrip(ctx, id) }
func (m *mockBackend) ListBudgets(ctx context.Context) ([]domain.Budget, error) {
	return m.listBudgets(ctx)
}
func (m *mockBackend) GetBudget(ctx context.Context, id string) (domain.Budget, error) {
	return m.getBudget(ctx, id)
}
func (m *mockBackend) CreateBudget(ctx context.Context, b domain.Budget) (domain.Budget, error) {
	return m.createBudget(ctx, b)
}
func (m *mockBackend) UpdateBudget(ctx context.Context, b domain.Budget) (domain.Budget, error) {
	return m.updateBudget(ctx, b)
}
func (m *mockBackend) DeleteBudget(ctx context.Context, id string) error {
	return m.deleteBudget(ctx, id)
}
func (m *mockBackend) ExchangeRates(ctx context.Context, base string) (gateway.ExchangeRates, error) {
	return m.exchangeRates(ctx, base)
}
func (m *mockBackend) WeatherForecast(ctx context.Context, q gateway.WeatherQuery) (json.RawMessage, error) {
	return m.weatherForecast(ctx, q)
}
func (m *mockBackend) TripSuggestions(ctx context.Context, in gateway.SuggestionRequest) (gateway.Suggestions, error) {
	return m.tripSuggestions(ctx, in)
}
func (m *mockBackend) SearchRestaurants(ctx context.Context, locationID string) (json.RawMessage, error) {
	return m.searchRestaurants(ctx, locationID)
}

// compile-time checks: mockBackend must satisfy every service backend.
var (
	_ service.TripBackend      = (*mockBackend)(nil)
	_ service.BudgetBackend    = (*mockBackend)(nil)
	_ service.WeatherBackend   = (*mockBackend)(nil)
	_ service.ExploreBackend   = (*mockBackend)(nil)
	_ service.DashboardBackend = (*mockBackend)(nil)
)

// ---- helpers ---------------------------------------------------------------

func day(s string) *time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func parisTrip() domain.Trip {
	return domain.Trip{
		ID:                 "t1",
		Destination:        "Paris",
		TransportationType: domain.BookingFlight,
		TransportationData: &domain.TransportOption{ID: "2", Provider: "Air France", Number: "AF7", From: "NYC", To: "Paris", DepartureDate: "2025-06-01", Price: 420, Currency: "USD"},
		HotelData:          &domain.HotelOption{ID: "1", Name: "Hôtel Lutetia", Price: 300, Currency: "EUR", Rating: 4.5},
		StartDate:          day("2025-06-01"),
		EndDate:            day("2025-06-10"),
		Travelers:          2,
		Status:             "planned",
	}
}

// ---- TripService -----------------------------------------------------------

func TestTripService_List(t *testing.T) {
	svc := service.NewTripService(&mockBackend{
		listTrips: func(context.Context) ([]domain.Trip, error) { return []domain.Trip{parisTrip()}, nil },
	})

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Paris", got[0].Destination)
}

func TestTripService_Get_EmptyID(t *testing.T) {
	svc := service.NewTripService(&mockBackend{})

	_, err := svc.Get(context.Background(), " ")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Get_PropagatesServerError(t *testing.T) {
	svc := service.NewTripService(&mockBackend{
		getTrip: func(context.Context, string) (domain.Trip, error) {
			return domain.Trip{}, &domain.ServerError{Status: 404, Message: "Trip not found"}
		},
	})

	_, err := svc.Get(context.Background(), "nope")

	assert.ErrorIs(t, err, domain.ErrServer)
	assert.Equal(t, "Trip not found", domain.UserMessage(err))
}

func TestTripService_Delete_RequiresConfirmation(t *testing.T) {
	called := false
	svc := service.NewTripService(&mockBackend{
		deleteTrip: func(context.Context, string) error { called = true; return nil },
	})

	err := svc.Delete(context.Background(), "t1", false)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, called)

	require.NoError(t, svc.Delete(context.Background(), "t1", true))
	assert.True(t, called)
}

func TestTripService_Delete_Error(t *testing.T) {
	boom := errors.New("boom")
	svc := service.NewTripService(&mockBackend{
		deleteTrip: func(context.Context, string) error { return boom },
	})

	assert.ErrorIs(t, svc.Delete(context.Background(), "t1", true), boom)
}
