// Package router tracks which page a client is looking at.
//
// The router holds the active page name and its parameters. It does not own
// page state; callers react to route changes themselves.
package router

import "sync"

// Page names a top-level view.
type Page string

const (
	Home          Page = "home"
	Login         Page = "login"
	Dashboard     Page = "dashboard"
	CreateTrip    Page = "create-trip"
	Trips         Page = "trips"
	Explore       Page = "explore"
	BudgetPlanner Page = "budget-planner"
	Weather       Page = "weather"
)

// pages lists every known page; anything else falls back to Home.
var pages = map[Page]bool{
	Home: true, Login: true, Dashboard: true, CreateTrip: true,
	Trips: true, Explore: true, BudgetPlanner: true, Weather: true,
}

// Landing pages give way to the dashboard once a session starts.
var landing = map[Page]bool{Home: true, Login: true}

// Mode selects how the trip wizard treats a trip.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
	ModeView   Mode = "view"
)

// ParseMode maps a raw mode to a Mode, defaulting to create.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeEdit:
		return ModeEdit
	case ModeView:
		return ModeView
	}
	return ModeCreate
}

// Params are the optional route parameters of a page.
type Params struct {
	TripID      string `json:"tripId,omitempty"`
	Mode        Mode   `json:"mode"`
	Destination string `json:"destination,omitempty"`
}

// Route is a page with its parameters.
type Route struct {
	Page   Page   `json:"page"`
	Params Params `json:"params"`
}

// Router is safe for concurrent use.
type Router struct {
	mu    sync.RWMutex
	route Route
}

// New returns a router on the home page.
func New() *Router {
	return &Router{route: Route{Page: Home, Params: Params{Mode: ModeCreate}}}
}

// Normalize maps unknown pages to Home and an empty mode to create.
func Normalize(page Page, p Params) Route {
	if !pages[page] {
		page = Home
	}
	p.Mode = ParseMode(string(p.Mode))
	return Route{Page: page, Params: p}
}

// Navigate replaces the active page and all of its parameters, and returns
// the previous route.
func (r *Router) Navigate(page Page, p Params) Route {
	next := Normalize(page, p)
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.route
	r.route = next
	return prev
}

// Current returns the active route as navigated, ignoring the auth guard.
func (r *Router) Current() Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.route
}

// Resolve returns the route to render. Without a session every page,
// home included, resolves to the login page; the stored route is kept so the
// client lands there after logging in.
func (r *Router) Resolve(authenticated bool) Route {
	if !authenticated {
		return Route{Page: Login, Params: Params{Mode: ModeCreate}}
	}
	return r.Current()
}

// IsLanding reports whether page is replaced by the dashboard after login.
func IsLanding(page Page) bool {
	return landing[page]
}
