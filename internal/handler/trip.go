package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/trip-planner/internal/domain"
)

// GetDashboard handles GET /api/dashboard.
func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r)
	d, err := st.Dashboard.Load(r.Context())
	if err != nil {
		s.fail(w, r, st, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Pagination describes the page of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripList is the body of GET /api/trips.
type TripList struct {
	Data       []domain.Trip `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

// ListTrips handles GET /api/trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
// The backend returns the full list; paging happens here.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	var page, limit *int
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &page); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("page must be a number"))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("limit must be a number"))
		return
	}
	params := domain.NewPaginationParams(page, limit)

	st := stateFrom(r)
	trips, err := st.Trips.List(r.Context())
	if err != nil {
		s.fail(w, r, st, err)
		return
	}
	writeJSON(w, http.StatusOK, TripList{
		Data: domain.Paginate(trips, params),
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: len(trips),
		},
	})
}

// DeleteTrip handles DELETE /api/trips/{id}?confirmed=true, the delete
// button of the trip list.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	confirmed, ok := s.bindConfirmed(w, r)
	if !ok {
		return
	}
	st := stateFrom(r)
	if err := st.Trips.Delete(r.Context(), chi.URLParam(r, "id"), confirmed); err != nil {
		s.fail(w, r, st, err)
		return
	}
	st.Notify("Trip deleted successfully!", domain.SeveritySuccess, 0)
	w.WriteHeader(http.StatusNoContent)
}
