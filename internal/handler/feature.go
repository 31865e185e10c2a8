package handler

import (
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/trip-planner/internal/domain"
)

// GetWeather handles GET /api/weather?location=.
func (s *Server) GetWeather(w http.ResponseWriter, r *http.Request) {
	var location string
	if err := runtime.BindQueryParameter("form", true, false, "location", r.URL.Query(), &location); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid location"))
		return
	}
	st := stateFrom(r)
	f, err := st.Weather.Forecast(r.Context(), location)
	if err != nil {
		s.fail(w, r, st, err)
		return
	}
	st.Notify("Weather data loaded!", domain.SeveritySuccess, 0)
	writeJSON(w, http.StatusOK, f)
}

// GetExplore handles GET /api/explore?q=.
func (s *Server) GetExplore(w http.ResponseWriter, r *http.Request) {
	var query string
	if err := runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &query); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid query"))
		return
	}
	st := stateFrom(r)
	e, err := st.Explore.Explore(r.Context(), query)
	if err != nil {
		s.fail(w, r, st, err)
		return
	}
	st.Notify("Exploration data loaded!", domain.SeveritySuccess, 0)
	writeJSON(w, http.StatusOK, e)
}
