package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Commit saves the draft: create mode creates a trip, edit mode updates the
// loaded one. Both selections are required, the transport one first, and the
// wizard must be on the review step. On failure the draft and step are left
// untouched so the user can retry.
func (w *Wizard) Commit(ctx context.Context) (domain.Trip, error) {
	w.mu.Lock()
	if w.mode == ModeView {
		w.mu.Unlock()
		return domain.Trip{}, errReadOnly()
	}
	in, err := w.payloadLocked()
	if err == nil && w.step != StepReview {
		err = domain.NewValidationError("step", "Please review the trip before saving")
	}
	w.mu.Unlock()
	if err != nil {
		return domain.Trip{}, err
	}

	var trip domain.Trip
	if w.mode == ModeEdit {
		trip, err = w.deps.Backend.UpdateTrip(ctx, w.tripID, in)
	} else {
		trip, err = w.deps.Backend.CreateTrip(ctx, in)
	}
	if err != nil {
		return domain.Trip{}, fmt.Errorf("wizard.Wizard.Commit: %w", err)
	}
	return trip, nil
}

// Payload returns the request body Commit would send.
func (w *Wizard) Payload() (domain.TripInput, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.payloadLocked()
}

func (w *Wizard) payloadLocked() (domain.TripInput, error) {
	if w.selectedTransport == nil {
		return domain.TripInput{}, domain.NewValidationError("transport", "Please select a transport option")
	}
	if w.selectedHotel == nil {
		return domain.TripInput{}, domain.NewValidationError("hotel", "Please select a hotel")
	}
	t := *w.selectedTransport
	h := *w.selectedHotel

	start, err := isoDate("startDate", t.DepartureDate, h.CheckIn)
	if err != nil {
		return domain.TripInput{}, err
	}
	end, err := isoDate("endDate", t.ReturnDate, h.CheckOut)
	if err != nil {
		return domain.TripInput{}, err
	}

	destination := w.fields.To
	if destination == "" {
		destination = firstNonEmpty(t.To, w.fields.City)
	}
	return domain.TripInput{
		Destination:        destination,
		TransportationType: w.bookingType,
		TransportationData: &t,
		HotelData:          &h,
		StartDate:          start,
		EndDate:            end,
		Travelers:          max(w.fields.Travelers, 1),
	}, nil
}

// isoDate formats the first non-empty date as an ISO-8601 UTC timestamp.
// Transport dates come first, hotel dates second.
func isoDate(field string, candidates ...string) (string, error) {
	s := firstNonEmpty(candidates...)
	if s == "" {
		return "", nil
	}
	t, err := domain.ParseDate(s)
	if err != nil {
		return "", domain.NewValidationError(field, fmt.Sprintf("invalid %s %q", field, s))
	}
	return domain.FormatISO(t.UTC().Truncate(time.Millisecond)), nil
}

// Delete removes the loaded trip. It needs explicit confirmation and is only
// available in edit and view mode.
func (w *Wizard) Delete(ctx context.Context, confirmed bool) error {
	if w.mode == ModeCreate {
		return domain.NewValidationError("mode", "Only a saved trip can be deleted")
	}
	if !confirmed {
		return domain.NewValidationError("confirmation", "Please confirm that the trip should be deleted")
	}
	if err := w.deps.Backend.DeleteTrip(ctx, w.tripID); err != nil {
		return fmt.Errorf("wizard.Wizard.Delete: %w", err)
	}
	return nil
}
