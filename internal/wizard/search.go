package wizard

import (
	"context"
	"fmt"
	"slices"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/gateway"
	"github.com/pkordes/trip-planner/internal/hotels"
)

const missingFields = "Please fill in all required fields"

// SearchTransport runs a transport search for the current fields and
// replaces the transport results. The current selection is kept only while
// the new results still list it.
func (w *Wizard) SearchTransport(ctx context.Context) ([]domain.TransportOption, error) {
	w.mu.Lock()
	if err := w.searchableLocked(StepTransport); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	q, err := w.transportQueryLocked()
	if err != nil {
		w.mu.Unlock()
		return nil, err
	}
	w.transportSeq++
	seq := w.transportSeq
	w.mu.Unlock()

	opts, err := w.deps.Backend.SearchTransport(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("wizard.Wizard.SearchTransport: %w", err)
	}
	if opts == nil {
		opts = []domain.TransportOption{}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if seq != w.transportSeq {
		return nil, ErrStaleResult
	}
	w.transportOptions = opts
	if sel := w.selectedTransport; sel != nil && !slices.ContainsFunc(opts, func(o domain.TransportOption) bool { return o.ID == sel.ID }) {
		w.selectedTransport = nil
	}
	return opts, nil
}

func (w *Wizard) transportQueryLocked() (gateway.TransportQuery, error) {
	f := w.fields
	switch {
	case f.From == "":
		return gateway.TransportQuery{}, domain.NewValidationError("from", missingFields)
	case f.To == "":
		return gateway.TransportQuery{}, domain.NewValidationError("to", missingFields)
	case f.DepartureDate == "":
		return gateway.TransportQuery{}, domain.NewValidationError("departureDate", missingFields)
	case w.needsReturnDate() && f.ReturnDate == "":
		return gateway.TransportQuery{}, domain.NewValidationError("returnDate", "Please select a return date")
	}

	q := gateway.TransportQuery{
		Type:          w.bookingType,
		TripType:      w.tripType,
		From:          f.From,
		To:            f.To,
		DepartureDate: f.DepartureDate,
		Travelers:     f.Travelers,
	}
	if w.needsReturnDate() {
		q.ReturnDate = f.ReturnDate
	}
	if w.bookingType.HasClass() {
		q.Class = f.Class
	}
	return q, nil
}

// SearchHotels resolves the city through the location table, runs a hotel
// search and replaces the hotel results with at most hotels.MaxResults
// normalized options. Unknown cities fail before any request is made. A hotel
// selection missing from the new results is cleared.
func (w *Wizard) SearchHotels(ctx context.Context) ([]domain.HotelOption, error) {
	w.mu.Lock()
	if err := w.searchableLocked(StepHotel); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	f := w.fields
	switch {
	case f.City == "":
		w.mu.Unlock()
		return nil, domain.NewValidationError("city", missingFields)
	case f.CheckIn == "":
		w.mu.Unlock()
		return nil, domain.NewValidationError("checkIn", missingFields)
	case f.CheckOut == "":
		w.mu.Unlock()
		return nil, domain.NewValidationError("checkOut", missingFields)
	}
	loc, err := w.deps.Locations.Resolve(f.City)
	if err != nil {
		w.mu.Unlock()
		return nil, err
	}
	w.hotelSeq++
	seq := w.hotelSeq
	w.mu.Unlock()

	raw, err := w.deps.Backend.SearchHotels(ctx, gateway.HotelQuery{
		LocationID: loc.ID,
		CheckIn:    f.CheckIn,
		CheckOut:   f.CheckOut,
		Guests:     f.Guests,
		Rooms:      f.Rooms,
	})
	if err != nil {
		return nil, fmt.Errorf("wizard.Wizard.SearchHotels: %w", err)
	}
	opts := hotels.NormalizeWithLogger(raw, hotels.Query{
		LocationID: loc.ID,
		CheckIn:    f.CheckIn,
		CheckOut:   f.CheckOut,
	}, w.deps.Logger)

	w.mu.Lock()
	defer w.mu.Unlock()
	if seq != w.hotelSeq {
		return nil, ErrStaleResult
	}
	w.hotelOptions = opts
	if sel := w.selectedHotel; sel != nil && !slices.ContainsFunc(opts, func(o domain.HotelOption) bool { return o.ID == sel.ID }) {
		w.selectedHotel = nil
	}
	return opts, nil
}

func (w *Wizard) searchableLocked(step Step) error {
	if w.mode == ModeView {
		return errReadOnly()
	}
	if w.step != step {
		return domain.NewValidationError("step", fmt.Sprintf("%s search is only available on the %s step", step, step))
	}
	return nil
}
