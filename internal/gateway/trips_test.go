package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
)

func TestClient_TripCRUD(t *testing.T) {
	var (
		created domain.TripInput
		updated domain.TripInput
		deleted string
	)
	trip := map[string]any{
		"id":                 "t1",
		"destination":        "Paris",
		"transportationType": "flight",
		"transportationData": map[string]any{"id": 2, "price": 420},
		"hotelData":          map[string]any{"id": "1", "name": "Hotel Lutetia", "price": 300},
		"startDate":          "2025-06-01T00:00:00.000Z",
		"endDate":            "2025-06-10T00:00:00.000Z",
		"travelers":          2,
	}

	c, _ := newBackend(t, func(r chi.Router) {
		r.Get("/api/trips", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": []any{trip}})
		})
		r.Get("/api/trips/{id}", func(w http.ResponseWriter, r *http.Request) {
			if chi.URLParam(r, "id") != "t1" {
				writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Trip not found"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": trip})
		})
		r.Post("/api/trips", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&created)
			writeJSON(w, http.StatusCreated, map[string]any{"success": true, "data": trip})
		})
		r.Put("/api/trips/{id}", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&updated)
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": trip})
		})
		r.Delete("/api/trips/{id}", func(w http.ResponseWriter, r *http.Request) {
			deleted = chi.URLParam(r, "id")
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Trip deleted"})
		})
	})
	ctx := context.Background()

	trips, err := c.ListTrips(ctx)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, domain.OptionID("2"), trips[0].TransportationData.ID)
	assert.Equal(t, "Hotel Lutetia", trips[0].HotelData.Name)
	assert.Equal(t, "2025-06-01", trips[0].StartDate.Format(domain.DateLayout))

	got, err := c.GetTrip(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Paris", got.Destination)

	_, err = c.GetTrip(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrServer)
	assert.Equal(t, "Trip not found", domain.UserMessage(err))

	in := domain.TripInput{Destination: "Paris", TransportationType: domain.BookingFlight, Travelers: 2, StartDate: "2025-06-01T00:00:00.000Z"}
	_, err = c.CreateTrip(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, in, created)

	_, err = c.UpdateTrip(ctx, "t1", in)
	require.NoError(t, err)
	assert.Equal(t, in, updated)

	require.NoError(t, c.DeleteTrip(ctx, "t1"))
	assert.Equal(t, "t1", deleted)
}

func TestClient_BudgetCRUD(t *testing.T) {
	budget := map[string]any{"id": "b1", "name": "Paris", "currency": "EUR", "food": 250.5}
	var method string

	c, _ := newBackend(t, func(r chi.Router) {
		r.Get("/api/budgets", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": []any{budget}})
		})
		r.Get("/api/budgets/{id}", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": budget})
		})
		r.Post("/api/budgets", func(w http.ResponseWriter, r *http.Request) {
			method = r.Method
			writeJSON(w, http.StatusCreated, map[string]any{"success": true, "data": budget})
		})
		r.Put("/api/budgets/{id}", func(w http.ResponseWriter, r *http.Request) {
			method = r.Method + " " + chi.URLParam(r, "id")
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": budget})
		})
		r.Delete("/api/budgets/{id}", func(w http.ResponseWriter, r *http.Request) {
			method = r.Method + " " + chi.URLParam(r, "id")
			writeJSON(w, http.StatusOK, map[string]any{"success": true})
		})
	})
	ctx := context.Background()

	list, err := c.ListBudgets(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.InDelta(t, 250.5, list[0].Food, 0.001)

	b, err := c.GetBudget(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "EUR", b.Currency)

	_, err = c.CreateBudget(ctx, domain.Budget{Name: "Paris"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, method)

	_, err = c.UpdateBudget(ctx, domain.Budget{ID: "b1", Name: "Paris"})
	require.NoError(t, err)
	assert.Equal(t, "PUT b1", method)

	require.NoError(t, c.DeleteBudget(ctx, "b1"))
	assert.Equal(t, "DELETE b1", method)
}
