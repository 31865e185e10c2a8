package app

import (
	"context"
	"fmt"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/wizard"
)

// errNoWizard is returned by wizard actions outside the create-trip page.
var errNoWizard = domain.NewValidationError("wizard", "No trip is open. Start from the create trip page")

// currentWizard returns the wizard of the active route, if any.
func (s *State) currentWizard() (*wizard.Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wiz == nil {
		return nil, errNoWizard
	}
	return s.wiz, nil
}

// WizardAction runs a local wizard edit and reports its error.
func (s *State) WizardAction(fn func(w *wizard.Wizard) error) error {
	w, err := s.currentWizard()
	if err != nil {
		return s.Fail(err)
	}
	return s.Fail(fn(w))
}

// Snapshot returns the active wizard's draft.
func (s *State) Snapshot() (wizard.Snapshot, error) {
	w, err := s.currentWizard()
	if err != nil {
		return wizard.Snapshot{}, err
	}
	return w.Snapshot(), nil
}

// SearchTransport runs the transport search of the active wizard.
func (s *State) SearchTransport(ctx context.Context) error {
	return s.WizardAction(func(w *wizard.Wizard) error {
		_, err := w.SearchTransport(ctx)
		return err
	})
}

// SearchHotels runs the hotel search of the active wizard.
func (s *State) SearchHotels(ctx context.Context) error {
	return s.WizardAction(func(w *wizard.Wizard) error {
		_, err := w.SearchHotels(ctx)
		return err
	})
}

// CommitTrip saves the active wizard's draft. On success the draft is
// discarded and the client is sent to the dashboard after the redirect delay.
func (s *State) CommitTrip(ctx context.Context) (domain.Trip, error) {
	w, err := s.currentWizard()
	if err != nil {
		return domain.Trip{}, s.Fail(err)
	}
	trip, err := w.Commit(ctx)
	if err != nil {
		return domain.Trip{}, s.Fail(fmt.Errorf("app.State.CommitTrip: %w", err))
	}

	msg := "Trip created successfully!"
	if w.Mode() == wizard.ModeEdit {
		msg = "Trip updated successfully!"
	}
	s.finishWizard(w, msg)
	return trip, nil
}

// DeleteTrip deletes the trip open in the wizard.
func (s *State) DeleteTrip(ctx context.Context, confirmed bool) error {
	w, err := s.currentWizard()
	if err != nil {
		return s.Fail(err)
	}
	if err := w.Delete(ctx, confirmed); err != nil {
		return s.Fail(fmt.Errorf("app.State.DeleteTrip: %w", err))
	}
	s.finishWizard(w, "Trip deleted successfully!")
	return nil
}

func (s *State) finishWizard(w *wizard.Wizard, msg string) {
	s.mu.Lock()
	if s.wiz == w {
		s.wiz = nil
	}
	s.mu.Unlock()
	s.notes.Success(msg)
	s.scheduleDashboard()
}
