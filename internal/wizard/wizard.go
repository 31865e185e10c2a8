// Package wizard implements the three-step trip wizard: pick transport,
// pick a hotel, review and save.
//
// A Wizard runs in one of three modes. Create starts from an empty draft.
// Edit and view start from a persisted trip, at the first step whose
// selection is still missing. View mode only displays: every mutation is
// rejected, but Continue may walk forward through steps whose selection
// is present.
//
// Network calls (searches, commit, delete) run without holding the wizard's
// lock. Search results carry a per-kind sequence number and are discarded
// when a newer search of the same kind was issued in the meantime.
package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/gateway"
	"github.com/pkordes/trip-planner/internal/locations"
)

// ErrStaleResult is returned by a search whose response arrived after a
// newer search of the same kind was issued. The newer search owns the
// results slot; the caller should ignore this error.
var ErrStaleResult = errors.New("stale search result")

// Step is a wizard step.
type Step int

const (
	StepTransport Step = 1
	StepHotel     Step = 2
	StepReview    Step = 3
)

func (s Step) String() string {
	switch s {
	case StepTransport:
		return "transport"
	case StepHotel:
		return "hotel"
	case StepReview:
		return "review"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Mode selects what the wizard may do with a trip.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
	ModeView   Mode = "view"
)

// Backend is the subset of the gateway the wizard calls.
type Backend interface {
	SearchTransport(ctx context.Context, q gateway.TransportQuery) ([]domain.TransportOption, error)
	SearchHotels(ctx context.Context, q gateway.HotelQuery) (json.RawMessage, error)
	GetTrip(ctx context.Context, id string) (domain.Trip, error)
	CreateTrip(ctx context.Context, in domain.TripInput) (domain.Trip, error)
	UpdateTrip(ctx context.Context, id string, in domain.TripInput) (domain.Trip, error)
	DeleteTrip(ctx context.Context, id string) error
}

// Compile-time check that the gateway satisfies Backend.
var _ Backend = (*gateway.Client)(nil)

// Deps are the collaborators of a Wizard.
type Deps struct {
	Backend   Backend
	Locations *locations.Table
	Logger    *slog.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Locations == nil {
		d.Locations = locations.Default()
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return d
}

// Fields are the form inputs of the transport and hotel steps.
// For car bookings From/To are the pick-up and drop-off locations and
// ReturnDate is the drop-off date.
type Fields struct {
	From          string `json:"from"`
	To            string `json:"to"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate"`
	Travelers     int    `json:"travelers"`
	Class         string `json:"class"`
	City          string `json:"city"`
	CheckIn       string `json:"checkIn"`
	CheckOut      string `json:"checkOut"`
	Guests        int    `json:"guests"`
	Rooms         int    `json:"rooms"`
}

func defaultFields() Fields {
	return Fields{Travelers: 1, Class: "economy", Guests: 2, Rooms: 1}
}

// Wizard is the draft of one trip being created, edited or viewed.
// It is safe for concurrent use.
type Wizard struct {
	deps   Deps
	mode   Mode
	tripID string

	mu                sync.Mutex
	step              Step
	bookingType       domain.BookingType
	tripType          domain.TripType
	fields            Fields
	transportOptions  []domain.TransportOption
	selectedTransport *domain.TransportOption
	hotelOptions      []domain.HotelOption
	selectedHotel     *domain.HotelOption

	// Sequence numbers of the most recently issued search of each kind.
	transportSeq uint64
	hotelSeq     uint64
}

// New starts a create-mode wizard. A non-empty destination pre-fills both
// the transport destination and the hotel city.
func New(deps Deps, destination string) *Wizard {
	w := &Wizard{
		deps:        deps.withDefaults(),
		mode:        ModeCreate,
		step:        StepTransport,
		bookingType: domain.BookingFlight,
		tripType:    domain.RoundTrip,
		fields:      defaultFields(),
	}
	w.fields.To = destination
	w.fields.City = destination
	return w
}

// Load fetches trip id and starts an edit or view wizard on it. No search
// is issued. The initial step is Review when both selections are stored,
// Hotel when only the transport is, and Transport otherwise.
func Load(ctx context.Context, deps Deps, mode Mode, id string) (*Wizard, error) {
	if mode != ModeEdit && mode != ModeView {
		return nil, domain.NewValidationError("mode", fmt.Sprintf("cannot load a trip in %s mode", mode))
	}
	if id == "" {
		return nil, domain.NewValidationError("tripId", "")
	}

	trip, err := deps.Backend.GetTrip(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("wizard.Load: %w", err)
	}

	w := &Wizard{
		deps:        deps.withDefaults(),
		mode:        mode,
		tripID:      id,
		bookingType: domain.BookingFlight,
		tripType:    domain.OneWay,
		fields:      defaultFields(),
	}
	w.fill(trip)

	switch {
	case trip.TransportationData != nil && trip.HotelData != nil:
		w.step = StepReview
	case trip.TransportationData != nil:
		w.step = StepHotel
	default:
		w.step = StepTransport
	}
	return w, nil
}

// fill copies a persisted trip into the draft. Stored selections are also
// placed in the options lists so they can be reselected by id.
func (w *Wizard) fill(trip domain.Trip) {
	f := &w.fields
	f.To = trip.Destination
	f.City = trip.Destination
	if trip.Travelers > 0 {
		f.Travelers = trip.Travelers
		f.Guests = trip.Travelers
	}
	if trip.TransportationType.Valid() {
		w.bookingType = trip.TransportationType
	}
	if trip.StartDate != nil {
		f.DepartureDate = trip.StartDate.UTC().Format(domain.DateLayout)
		f.CheckIn = f.DepartureDate
	}
	if trip.EndDate != nil {
		f.ReturnDate = trip.EndDate.UTC().Format(domain.DateLayout)
		f.CheckOut = f.ReturnDate
	}

	if t := trip.TransportationData; t != nil {
		opt := *t
		w.transportOptions = []domain.TransportOption{opt}
		w.selectedTransport = &opt
		if t.Type.Valid() && !trip.TransportationType.Valid() {
			w.bookingType = t.Type
		}
		f.From = firstNonEmpty(t.From, f.From)
		f.To = firstNonEmpty(t.To, f.To)
		f.DepartureDate = firstNonEmpty(t.DepartureDate, f.DepartureDate)
		f.ReturnDate = firstNonEmpty(t.ReturnDate, f.ReturnDate)
		f.Class = firstNonEmpty(t.Class, f.Class)
	}
	if f.ReturnDate != "" {
		w.tripType = domain.RoundTrip
	}

	if h := trip.HotelData; h != nil {
		opt := *h
		w.hotelOptions = []domain.HotelOption{opt}
		w.selectedHotel = &opt
		f.CheckIn = firstNonEmpty(h.CheckIn, f.CheckIn)
		f.CheckOut = firstNonEmpty(h.CheckOut, f.CheckOut)
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// Mode returns the wizard's mode.
func (w *Wizard) Mode() Mode { return w.mode }

// TripID returns the id of the loaded trip, or "" in create mode.
func (w *Wizard) TripID() string { return w.tripID }

// Step returns the current step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// errReadOnly is returned for every mutation attempted in view mode.
func errReadOnly() error {
	return domain.NewValidationError("mode", "This trip is open in view mode and cannot be changed")
}
