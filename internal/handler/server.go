// Package handler implements the JSON API the browser page talks to.
// Every request is bound to the application state of the calling client,
// identified by the client-id cookie. Handlers translate HTTP into named
// actions on app.State and render the result; they hold no state of their own.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/app"
	"github.com/pkordes/trip-planner/internal/gateway"
	"github.com/pkordes/trip-planner/internal/middleware"
	"github.com/pkordes/trip-planner/spec"
)

// States looks up the application state of a client.
// *app.Registry satisfies it.
type States interface {
	Get(ctx context.Context, id uuid.UUID) (*app.State, error)
}

// HealthChecker reports whether the trip backend is up.
// *gateway.Client satisfies it.
type HealthChecker interface {
	Health(ctx context.Context) (gateway.HealthStatus, error)
}

var (
	_ States        = (*app.Registry)(nil)
	_ HealthChecker = (*gateway.Client)(nil)
)

// Server holds the dependencies shared by every handler.
type Server struct {
	states  States
	backend HealthChecker
	log     *slog.Logger
}

// NewServer constructs the Server. A nil logger uses slog.Default().
func NewServer(states States, backend HealthChecker, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{states: states, backend: backend, log: log}
}

// Routes returns the API routes. The client-id middleware must run before
// them; requests without a client id are rejected.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/api/health", s.GetHealth)

	r.Group(func(r chi.Router) {
		r.Use(s.withState)

		r.Get("/api/view", s.GetView)
		r.Post("/api/navigate", s.PostNavigate)
		r.Post("/api/login", s.PostLogin)
		r.Post("/api/signup", s.PostSignup)
		r.Post("/api/logout", s.PostLogout)
		r.Delete("/api/notifications/{id}", s.DeleteNotification)

		r.Group(func(r chi.Router) {
			r.Use(requireSession)

			r.Route("/api/wizard", func(r chi.Router) {
				r.Get("/", s.GetWizard)
				r.Post("/fields", s.PostWizardField)
				r.Post("/swap", s.PostWizardSwap)
				r.Post("/destination", s.PostWizardDestination)
				r.Post("/booking-type", s.PostWizardBookingType)
				r.Post("/trip-type", s.PostWizardTripType)
				r.Post("/transport/search", s.PostWizardSearchTransport)
				r.Post("/transport/select", s.PostWizardSelectTransport)
				r.Post("/hotels/search", s.PostWizardSearchHotels)
				r.Post("/hotels/select", s.PostWizardSelectHotel)
				r.Post("/continue", s.PostWizardContinue)
				r.Post("/back", s.PostWizardBack)
				r.Post("/change", s.PostWizardChange)
				r.Post("/commit", s.PostWizardCommit)
				r.Delete("/trip", s.DeleteWizardTrip)
			})

			r.Get("/api/dashboard", s.GetDashboard)
			r.Get("/api/trips", s.ListTrips)
			r.Get("/api/trips/export.csv", s.GetTripsCSV)
			r.Get("/api/trips/{id}/itinerary.pdf", s.GetItineraryPDF)
			r.Delete("/api/trips/{id}", s.DeleteTrip)

			r.Get("/api/budgets", s.ListBudgets)
			r.Post("/api/budgets", s.CreateBudget)
			r.Get("/api/budgets/{id}", s.GetBudget)
			r.Put("/api/budgets/{id}", s.UpdateBudget)
			r.Delete("/api/budgets/{id}", s.DeleteBudget)
			r.Get("/api/currency/convert", s.GetConversion)

			r.Get("/api/weather", s.GetWeather)
			r.Get("/api/explore", s.GetExplore)
		})
	})

	return r
}

// GetOpenAPI serves the embedded API description.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}

type stateKey struct{}

// withState resolves the calling client's application state.
func (s *Server) withState(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.ClientIDFrom(r.Context())
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorBody("missing_client", "client id cookie is required"))
			return
		}
		st, err := s.states.Get(r.Context(), id)
		if err != nil {
			s.log.Error("client state lookup failed", "error", err, "client_id", id.String())
			writeJSON(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), stateKey{}, st)))
	})
}

// requireSession rejects requests from clients that are not logged in.
func requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !stateFrom(r).Authenticated() {
			writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized", "Please log in to continue"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func stateFrom(r *http.Request) *app.State {
	return r.Context().Value(stateKey{}).(*app.State)
}

// decodeBody reads a JSON request body into dst. An empty body leaves dst
// untouched.
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeView renders the client's page state after an action.
func writeView(w http.ResponseWriter, st *app.State) {
	writeJSON(w, http.StatusOK, st.View())
}
