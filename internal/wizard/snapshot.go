package wizard

import (
	"slices"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Snapshot is a copy of the draft plus the affordances the page should show.
type Snapshot struct {
	Mode              Mode                     `json:"mode"`
	TripID            string                   `json:"tripId,omitempty"`
	Step              Step                     `json:"step"`
	StepName          string                   `json:"stepName"`
	BookingType       domain.BookingType       `json:"bookingType"`
	TripType          domain.TripType          `json:"tripType"`
	Fields            Fields                   `json:"fields"`
	TransportOptions  []domain.TransportOption `json:"transportOptions"`
	SelectedTransport *domain.TransportOption  `json:"selectedTransport,omitempty"`
	HotelOptions      []domain.HotelOption     `json:"hotelOptions"`
	SelectedHotel     *domain.HotelOption      `json:"selectedHotel,omitempty"`

	CanContinue    bool `json:"canContinue"`
	CanBack        bool `json:"canBack"`
	CanChange      bool `json:"canChange"`
	CanCommit      bool `json:"canCommit"`
	CanDelete      bool `json:"canDelete"`
	CanSwap        bool `json:"canSwap"`
	ReadOnly       bool `json:"readOnly"`
	ShowClass      bool `json:"showClass"`
	ShowReturnDate bool `json:"showReturnDate"`
}

// Snapshot returns a copy of the current draft.
func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	readOnly := w.mode == ModeView
	s := Snapshot{
		Mode:             w.mode,
		TripID:           w.tripID,
		Step:             w.step,
		StepName:         w.step.String(),
		BookingType:      w.bookingType,
		TripType:         w.tripType,
		Fields:           w.fields,
		TransportOptions: slices.Clone(w.transportOptions),
		HotelOptions:     slices.Clone(w.hotelOptions),

		CanContinue:    w.canContinueLocked(),
		CanBack:        !readOnly && w.step > StepTransport,
		CanChange:      w.mode == ModeEdit && w.step == StepReview,
		CanCommit:      !readOnly && w.step == StepReview && w.selectedTransport != nil && w.selectedHotel != nil,
		CanDelete:      w.mode != ModeCreate,
		CanSwap:        !readOnly && w.bookingType != domain.BookingCar,
		ReadOnly:       readOnly,
		ShowClass:      w.bookingType.HasClass(),
		ShowReturnDate: w.needsReturnDate(),
	}
	if s.TransportOptions == nil {
		s.TransportOptions = []domain.TransportOption{}
	}
	if s.HotelOptions == nil {
		s.HotelOptions = []domain.HotelOption{}
	}
	if w.selectedTransport != nil {
		t := *w.selectedTransport
		s.SelectedTransport = &t
	}
	if w.selectedHotel != nil {
		h := *w.selectedHotel
		s.SelectedHotel = &h
	}
	return s
}

func (w *Wizard) canContinueLocked() bool {
	switch w.step {
	case StepTransport:
		return w.selectedTransport != nil
	case StepHotel:
		return w.selectedHotel != nil
	}
	return false
}

// needsReturnDate reports whether the return (or drop-off) date is shown
// and required.
func (w *Wizard) needsReturnDate() bool {
	return w.tripType == domain.RoundTrip || w.bookingType == domain.BookingCar
}
