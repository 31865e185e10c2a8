package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/gateway"
	"github.com/pkordes/trip-planner/internal/router"
)

// Login exchanges credentials for a session and saves it.
func (s *State) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		return s.Fail(domain.NewValidationError("email", "Please fill in all fields"))
	case password == "":
		return s.Fail(domain.NewValidationError("password", "Please fill in all fields"))
	}

	res, err := s.deps.Gateway.Login(ctx, email, password)
	if err != nil {
		return s.Fail(fmt.Errorf("app.State.Login: %w", err))
	}
	if err := s.startSession(ctx, res); err != nil {
		return s.Fail(err)
	}
	s.notes.Success("Login successful!")
	return nil
}

// Signup creates an account and starts a session for it.
func (s *State) Signup(ctx context.Context, email, username, password string) error {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)
	switch {
	case email == "":
		return s.Fail(domain.NewValidationError("email", "Please fill in all fields"))
	case username == "":
		return s.Fail(domain.NewValidationError("username", "Please fill in all fields"))
	case password == "":
		return s.Fail(domain.NewValidationError("password", "Please fill in all fields"))
	}

	res, err := s.deps.Gateway.Signup(ctx, email, username, password)
	if err != nil {
		return s.Fail(fmt.Errorf("app.State.Signup: %w", err))
	}
	if err := s.startSession(ctx, res); err != nil {
		return s.Fail(err)
	}
	s.notes.Success("Account created!")
	return nil
}

// startSession persists the token and leaves the landing pages for the
// dashboard. Any other page requested before login is entered now, which
// builds the wizard when that page is create-trip.
func (s *State) startSession(ctx context.Context, res gateway.AuthResult) error {
	if err := s.deps.Sessions.Save(ctx, s.id, res.Token); err != nil {
		return fmt.Errorf("app.State.startSession: %w", err)
	}

	s.mu.Lock()
	s.credential = res.Token
	u := res.User
	s.user = &u
	cur := s.router.Current()
	s.mu.Unlock()

	if router.IsLanding(cur.Page) {
		cur = router.Route{Page: router.Dashboard}
	}
	// Navigate reports its own failures; the session is valid either way.
	_ = s.Navigate(ctx, cur.Page, cur.Params)
	return nil
}

// Logout forgets the session and returns to the home page.
func (s *State) Logout(ctx context.Context) error {
	if err := s.deps.Sessions.Remove(ctx, s.id); err != nil {
		return s.Fail(fmt.Errorf("app.State.Logout: %w", err))
	}

	s.mu.Lock()
	s.credential = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.Navigate(ctx, router.Home, router.Params{}); err != nil {
		return err
	}
	s.notes.Success("Logged out successfully")
	return nil
}
