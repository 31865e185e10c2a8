// Package app holds the application state of each browser client: its
// session credential, active route, notifications and trip wizard.
//
// Every mutation goes through a named action on State. Actions that call
// the backend do so without holding the state lock and report failures as
// a single error notification before returning them.
package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/clock"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/gateway"
	"github.com/pkordes/trip-planner/internal/locations"
	"github.com/pkordes/trip-planner/internal/notify"
	"github.com/pkordes/trip-planner/internal/router"
	"github.com/pkordes/trip-planner/internal/service"
	"github.com/pkordes/trip-planner/internal/session"
	"github.com/pkordes/trip-planner/internal/wizard"
)

// DefaultRedirectDelay is how long a success message shows before the
// client is sent to the dashboard.
const DefaultRedirectDelay = 1500 * time.Millisecond

// Deps are shared by every client state.
type Deps struct {
	Gateway         *gateway.Client
	Sessions        session.Store
	Clock           clock.Clock
	Locations       *locations.Table
	Logger          *slog.Logger
	NotificationTTL time.Duration
	RedirectDelay   time.Duration
}

func (d Deps) withDefaults() Deps {
	if d.Clock == nil {
		d.Clock = clock.Real()
	}
	if d.Locations == nil {
		d.Locations = locations.Default()
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.NotificationTTL <= 0 {
		d.NotificationTTL = notify.DefaultTTL
	}
	if d.RedirectDelay <= 0 {
		d.RedirectDelay = DefaultRedirectDelay
	}
	return d
}

// State is the application state of one client. It is safe for concurrent use.
type State struct {
	id   uuid.UUID
	deps Deps
	log  *slog.Logger
	gw   *gateway.Client

	notes *notify.Queue

	Trips     *service.TripService
	Budgets   *service.BudgetService
	Weather   *service.WeatherService
	Explore   *service.ExploreService
	Dashboard *service.DashboardService
	Export    *service.ExportService

	mu          sync.Mutex
	credential  string
	user        *gateway.User
	router      *router.Router
	wiz         *wizard.Wizard
	wizRoute    router.Route
	redirect    clock.Timer
	lastTouched time.Time
}

func newState(id uuid.UUID, credential string, deps Deps) *State {
	s := &State{
		id:          id,
		deps:        deps,
		log:         deps.Logger.With("client_id", id.String()),
		credential:  credential,
		router:      router.New(),
		lastTouched: deps.Clock.Now(),
	}
	s.notes = notify.New(deps.Clock, notify.WithDefaultTTL(deps.NotificationTTL))
	s.gw = deps.Gateway.WithCredential(s.readCredential)

	s.Trips = service.NewTripService(s.gw)
	s.Budgets = service.NewBudgetService(s.gw)
	s.Weather = service.NewWeatherService(s.gw)
	s.Explore = service.NewExploreService(s.gw, deps.Locations, s.log)
	s.Dashboard = service.NewDashboardService(s.gw, deps.Clock)
	s.Export = service.NewExportService(s.gw, deps.Clock)
	return s
}

// ID returns the client id.
func (s *State) ID() uuid.UUID { return s.id }

func (s *State) readCredential(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credential, nil
}

// Authenticated reports whether the client holds a session credential.
func (s *State) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credential != ""
}

// Fail reports err to the user as one error notification and returns it.
// A stale search result is not an error for the user and is dropped.
func (s *State) Fail(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, wizard.ErrStaleResult) {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	s.log.Info("action failed", "error", err)
	s.notes.Error(domain.UserMessage(err))
	return err
}

// Notify enqueues a notification. ttl follows notify.Queue.Enqueue.
func (s *State) Notify(message string, severity domain.Severity, ttl time.Duration) uuid.UUID {
	return s.notes.Enqueue(message, severity, ttl)
}

// Dismiss removes a notification.
func (s *State) Dismiss(id uuid.UUID) bool {
	return s.notes.Dismiss(id)
}

// Notifications returns the current notifications in insertion order.
func (s *State) Notifications() []domain.Notification {
	return s.notes.List()
}

// View is everything the page needs to render.
type View struct {
	ClientID      uuid.UUID             `json:"clientId"`
	Authenticated bool                  `json:"authenticated"`
	User          *gateway.User         `json:"user,omitempty"`
	Route         router.Route          `json:"route"`
	Requested     router.Route          `json:"requested"`
	Notifications []domain.Notification `json:"notifications"`
	Wizard        *wizard.Snapshot      `json:"wizard,omitempty"`
}

// View returns the resolved route and current page state.
func (s *State) View() View {
	s.mu.Lock()
	authed := s.credential != ""
	v := View{
		ClientID:      s.id,
		Authenticated: authed,
		Route:         s.router.Resolve(authed),
		Requested:     s.router.Current(),
	}
	if s.user != nil {
		u := *s.user
		v.User = &u
	}
	wiz := s.wiz
	if v.Route.Page != router.CreateTrip {
		wiz = nil
	}
	s.mu.Unlock()

	if wiz != nil {
		snap := wiz.Snapshot()
		v.Wizard = &snap
	}
	v.Notifications = s.notes.List()
	return v
}

func (s *State) touch(now time.Time) {
	s.mu.Lock()
	s.lastTouched = now
	s.mu.Unlock()
}

func (s *State) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTouched
}

// close stops timers owned by the state.
func (s *State) close() {
	s.mu.Lock()
	if s.redirect != nil {
		s.redirect.Stop()
		s.redirect = nil
	}
	s.mu.Unlock()
	s.notes.Clear()
}
