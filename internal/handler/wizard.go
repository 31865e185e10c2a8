package handler

import (
	"net/http"
	"strings"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/trip-planner/internal/app"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/wizard"
)

// FieldRequest is the body of POST /api/wizard/fields.
type FieldRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DestinationRequest is the body of POST /api/wizard/destination.
type DestinationRequest struct {
	City string `json:"city"`
}

// BookingTypeRequest is the body of POST /api/wizard/booking-type.
type BookingTypeRequest struct {
	BookingType domain.BookingType `json:"bookingType"`
}

// TripTypeRequest is the body of POST /api/wizard/trip-type.
type TripTypeRequest struct {
	TripType domain.TripType `json:"tripType"`
}

// SelectRequest is the body of the transport and hotel select actions.
type SelectRequest struct {
	ID domain.OptionID `json:"id"`
}

// ChangeRequest is the body of POST /api/wizard/change.
type ChangeRequest struct {
	Step string `json:"step"`
}

// CommitResponse is returned by a successful commit.
type CommitResponse struct {
	Trip domain.Trip `json:"trip"`
	View app.View    `json:"view"`
}

// GetWizard handles GET /api/wizard.
func (s *Server) GetWizard(w http.ResponseWriter, r *http.Request) {
	snap, err := stateFrom(r).Snapshot()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// wizardAction decodes the request body into req, runs fn against the
// active wizard and renders the view.
func wizardAction[T any](s *Server, w http.ResponseWriter, r *http.Request, fn func(wz *wizard.Wizard, req T) error) {
	var req T
	if err := decodeBody(r, &req); err != nil {
		writeBodyError(w, err)
		return
	}
	st := stateFrom(r)
	s.respond(w, r, st, st.WizardAction(func(wz *wizard.Wizard) error {
		return fn(wz, req)
	}))
}

// noBody is the request type of actions that take no input.
type noBody struct{}

// PostWizardField handles POST /api/wizard/fields.
func (s *Server) PostWizardField(w http.ResponseWriter, r *http.Request) {
	wizardAction(s, w, r, func(wz *wizard.Wizard, req FieldRequest) error {
		return wz.SetField(req.Name, req.Value)
	})
}

// PostWizardSwap handles POST /api/wizard/swap.
func (s *Server) PostWizardSwap(w http.ResponseWriter, r *http.Request) {
	wizardAction(s, w, r, func(wz *wizard.Wizard, _ noBody) error {
		return wz.SwapLocations()
	})
}

// PostWizardDestination handles POST /api/wizard/destination.
// It fills the hotel city from a popular-destination pick without searching.
func (s *Server) PostWizardDestination(w http.ResponseWriter, r *http.Request) {
	wizardAction(s, w, r, func(wz *wizard.Wizard, req DestinationRequest) error {
		return wz.PickDestination(req.City)
	})
}

// PostWizardBookingType handles POST /api/wizard/booking-type.
func (s *Server) PostWizardBookingType(w http.ResponseWriter, r *http.Request) {
	wizardAction(s, w, r, func(wz *wizard.Wizard, req BookingTypeRequest) error {
		return wz.SetBookingType(req.BookingType)
	})
}

// PostWizardTripType handles POST /api/wizard/trip-type.
func (s *Server) PostWizardTripType(w http.ResponseWriter, r *http.Request) {
	wizardAction(s, w, r, func(wz *wizard.Wizard, req TripTypeRequest) error {
		return wz.SetTripType(req.TripType)
	})
}

// PostWizardSelectTransport handles POST /api/wizard/transport/select.
func (s *Server) PostWizardSelectTransport(w http.ResponseWriter, r *http.Request) {
	wizardAction(s, w, r, func(wz *wizard.Wizard, req SelectRequest) error {
		return wz.SelectTransport(req.ID)
	})
}

// PostWizardSelectHotel handles POST /api/wizard/hotels/select.
func (s *Server) PostWizardSelectHotel(w http.ResponseWriter, r *http.Request) {
	wizardAction(s, w, r, func(wz *wizard.Wizard, req SelectRequest) error {
		return wz.SelectHotel(req.ID)
	})
}

// PostWizardContinue handles POST /api/wizard/continue.
func (s *Server) PostWizardContinue(w http.ResponseWriter, r *http.Request) {
	wizardAction(s, w, r, func(wz *wizard.Wizard, _ noBody) error {
		return wz.Continue()
	})
}

// PostWizardBack handles POST /api/wizard/back.
func (s *Server) PostWizardBack(w http.ResponseWriter, r *http.Request) {
	wizardAction(s, w, r, func(wz *wizard.Wizard, _ noBody) error {
		return wz.Back()
	})
}

// PostWizardChange handles POST /api/wizard/change.
// Step is "transport" or "hotel".
func (s *Server) PostWizardChange(w http.ResponseWriter, r *http.Request) {
	wizardAction(s, w, r, func(wz *wizard.Wizard, req ChangeRequest) error {
		step, ok := parseStep(req.Step)
		if !ok {
			return domain.NewValidationError("step", "step must be transport or hotel")
		}
		return wz.Change(step)
	})
}

func parseStep(s string) (wizard.Step, bool) {
	for _, step := range []wizard.Step{wizard.StepTransport, wizard.StepHotel, wizard.StepReview} {
		if strings.EqualFold(s, step.String()) {
			return step, true
		}
	}
	return 0, false
}

// PostWizardSearchTransport handles POST /api/wizard/transport/search.
func (s *Server) PostWizardSearchTransport(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r)
	s.respond(w, r, st, st.SearchTransport(r.Context()))
}

// PostWizardSearchHotels handles POST /api/wizard/hotels/search.
func (s *Server) PostWizardSearchHotels(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r)
	s.respond(w, r, st, st.SearchHotels(r.Context()))
}

// PostWizardCommit handles POST /api/wizard/commit.
// It creates or updates the trip; the client is sent to the dashboard
// after the redirect delay.
func (s *Server) PostWizardCommit(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r)
	trip, err := st.CommitTrip(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CommitResponse{Trip: trip, View: st.View()})
}

// DeleteWizardTrip handles DELETE /api/wizard/trip?confirmed=true.
func (s *Server) DeleteWizardTrip(w http.ResponseWriter, r *http.Request) {
	confirmed, ok := s.bindConfirmed(w, r)
	if !ok {
		return
	}
	st := stateFrom(r)
	s.respond(w, r, st, st.DeleteTrip(r.Context(), confirmed))
}

// bindConfirmed reads the optional ?confirmed= flag of destructive actions.
func (s *Server) bindConfirmed(w http.ResponseWriter, r *http.Request) (bool, bool) {
	var confirmed bool
	if err := runtime.BindQueryParameter("form", true, false, "confirmed", r.URL.Query(), &confirmed); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("confirmed must be true or false"))
		return false, false
	}
	return confirmed, true
}
