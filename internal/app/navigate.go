package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/trip-planner/internal/clock"
	"github.com/pkordes/trip-planner/internal/router"
	"github.com/pkordes/trip-planner/internal/wizard"
)

// Navigate switches the active page. Entering create-trip builds a fresh
// wizard, or loads the trip for edit and view; any other route discards the
// wizard. An explicit navigation cancels a pending dashboard redirect.
func (s *State) Navigate(ctx context.Context, page router.Page, p router.Params) error {
	target := router.Normalize(page, p)
	target.Params.Destination = strings.TrimSpace(target.Params.Destination)

	s.mu.Lock()
	s.router.Navigate(target.Page, target.Params)
	s.stopRedirectLocked()
	if s.wiz != nil && s.wizRoute != target {
		s.wiz = nil
	}
	needWizard := target.Page == router.CreateTrip && s.wiz == nil && s.credential != ""
	s.mu.Unlock()

	if !needWizard {
		return nil
	}

	deps := wizard.Deps{Backend: s.gw, Locations: s.deps.Locations, Logger: s.log}
	var w *wizard.Wizard
	switch target.Params.Mode {
	case router.ModeEdit, router.ModeView:
		var err error
		w, err = wizard.Load(ctx, deps, wizard.Mode(target.Params.Mode), target.Params.TripID)
		if err != nil {
			return s.Fail(fmt.Errorf("app.State.Navigate: %w", err))
		}
	default:
		w = wizard.New(deps, target.Params.Destination)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// The client may have navigated elsewhere while the trip loaded.
	if s.router.Current() == target && s.wiz == nil {
		s.wiz = w
		s.wizRoute = target
	}
	return nil
}

// Route returns the route as requested, ignoring the auth guard.
func (s *State) Route() router.Route {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.router.Current()
}

// scheduleDashboard navigates to the dashboard once the redirect delay has
// elapsed, replacing any redirect already pending.
func (s *State) scheduleDashboard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopRedirectLocked()
	var t clock.Timer
	t = s.deps.Clock.AfterFunc(s.deps.RedirectDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.redirect != t {
			return
		}
		s.redirect = nil
		s.router.Navigate(router.Dashboard, router.Params{})
		s.wiz = nil
	})
	s.redirect = t
}

// RedirectPending reports whether a delayed dashboard navigation is scheduled.
func (s *State) RedirectPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.redirect != nil
}

func (s *State) stopRedirectLocked() {
	if s.redirect != nil {
		s.redirect.Stop()
		s.redirect = nil
	}
}
