package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
)

// SetField updates one form input by its JSON name.
func (w *Wizard) SetField(name, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.mode == ModeView {
		return errReadOnly()
	}

	f := &w.fields
	value = strings.TrimSpace(value)
	switch name {
	case "from":
		f.From = value
	case "to":
		f.To = value
	case "departureDate":
		f.DepartureDate = value
	case "returnDate":
		f.ReturnDate = value
	case "class":
		f.Class = value
	case "city":
		f.City = value
	case "checkIn":
		f.CheckIn = value
	case "checkOut":
		f.CheckOut = value
	case "travelers", "guests", "rooms":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return domain.NewValidationError(name, fmt.Sprintf("%s must be a positive number", name))
		}
		switch name {
		case "travelers":
			f.Travelers = n
		case "guests":
			f.Guests = n
		default:
			f.Rooms = n
		}
	default:
		return domain.NewValidationError(name, fmt.Sprintf("unknown field %q", name))
	}
	return nil
}

// SwapLocations exchanges the origin and destination fields. Car bookings
// use pick-up and drop-off locations instead and cannot be swapped.
func (w *Wizard) SwapLocations() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.mode == ModeView {
		return errReadOnly()
	}
	if w.bookingType == domain.BookingCar {
		return domain.NewValidationError("bookingType", "Pick-up and drop-off locations cannot be swapped")
	}
	w.fields.From, w.fields.To = w.fields.To, w.fields.From
	return nil
}

// PickDestination pre-fills the destination and hotel city without searching.
func (w *Wizard) PickDestination(city string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.mode == ModeView {
		return errReadOnly()
	}
	city = strings.TrimSpace(city)
	w.fields.To = city
	w.fields.City = city
	return nil
}

// SetBookingType switches the transport kind. Selections, results and the
// current step are kept.
func (w *Wizard) SetBookingType(b domain.BookingType) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.mode == ModeView {
		return errReadOnly()
	}
	if !b.Valid() {
		return domain.NewValidationError("bookingType", fmt.Sprintf("unknown booking type %q", b))
	}
	w.bookingType = b
	return nil
}

// SetTripType switches between one-way and round-trip.
func (w *Wizard) SetTripType(t domain.TripType) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.mode == ModeView {
		return errReadOnly()
	}
	if t != domain.OneWay && t != domain.RoundTrip {
		return domain.NewValidationError("tripType", fmt.Sprintf("unknown trip type %q", t))
	}
	w.tripType = t
	return nil
}

// SelectTransport picks a transport option from the current results by id.
func (w *Wizard) SelectTransport(id domain.OptionID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.mode == ModeView {
		return errReadOnly()
	}
	for _, opt := range w.transportOptions {
		if opt.ID == id {
			o := opt
			w.selectedTransport = &o
			return nil
		}
	}
	return domain.NewValidationError("transport", fmt.Sprintf("transport option %q is not in the current results", id))
}

// SelectHotel picks a hotel option from the current results by id.
func (w *Wizard) SelectHotel(id domain.OptionID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.mode == ModeView {
		return errReadOnly()
	}
	for _, opt := range w.hotelOptions {
		if opt.ID == id {
			o := opt
			w.selectedHotel = &o
			return nil
		}
	}
	return domain.NewValidationError("hotel", fmt.Sprintf("hotel option %q is not in the current results", id))
}

// Continue advances one step. It requires the current step's selection and
// is the one navigation allowed in view mode.
func (w *Wizard) Continue() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.step {
	case StepTransport:
		if w.selectedTransport == nil {
			return domain.NewValidationError("transport", "Please select a transport option")
		}
		w.step = StepHotel
	case StepHotel:
		if w.selectedHotel == nil {
			return domain.NewValidationError("hotel", "Please select a hotel")
		}
		w.step = StepReview
	default:
		return domain.NewValidationError("step", "Already at the last step")
	}
	return nil
}

// Back returns to the previous step with the draft intact.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.mode == ModeView {
		return errReadOnly()
	}
	if w.step == StepTransport {
		return domain.NewValidationError("step", "Already at the first step")
	}
	w.step--
	return nil
}

// Change jumps from Review back to the transport or hotel step. Only an
// edit wizard offers it.
func (w *Wizard) Change(target Step) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.mode != ModeEdit {
		return domain.NewValidationError("mode", "Only a trip being edited can be changed")
	}
	if w.step != StepReview {
		return domain.NewValidationError("step", "Change is only available on the review step")
	}
	if target != StepTransport && target != StepHotel {
		return domain.NewValidationError("step", fmt.Sprintf("cannot change to %s", target))
	}
	w.step = target
	return nil
}
