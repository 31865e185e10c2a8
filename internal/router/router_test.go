package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/trip-planner/internal/router"
)

func TestRouter_StartsAtHome(t *testing.T) {
	r := router.New()

	assert.Equal(t, router.Home, r.Current().Page)
	assert.Equal(t, router.ModeCreate, r.Current().Params.Mode)
}

func TestRouter_NavigateReplacesParams(t *testing.T) {
	r := router.New()
	r.Navigate(router.CreateTrip, router.Params{TripID: "t1", Mode: router.ModeEdit})

	prev := r.Navigate(router.CreateTrip, router.Params{Destination: "Paris"})

	assert.Equal(t, "t1", prev.Params.TripID)
	cur := r.Current()
	assert.Equal(t, router.CreateTrip, cur.Page)
	assert.Empty(t, cur.Params.TripID)
	assert.Equal(t, router.ModeCreate, cur.Params.Mode)
	assert.Equal(t, "Paris", cur.Params.Destination)
}

func TestRouter_UnknownPageFallsBackToHome(t *testing.T) {
	r := router.New()
	r.Navigate(router.Dashboard, router.Params{})

	r.Navigate("settings", router.Params{})

	assert.Equal(t, router.Home, r.Current().Page)
}

func TestRouter_Resolve(t *testing.T) {
	tests := []struct {
		name          string
		page          router.Page
		authenticated bool
		want          router.Page
	}{
		{"home needs a session", router.Home, false, router.Login},
		{"login without a session", router.Login, false, router.Login},
		{"dashboard needs a session", router.Dashboard, false, router.Login},
		{"wizard needs a session", router.CreateTrip, false, router.Login},
		{"budget needs a session", router.BudgetPlanner, false, router.Login},
		{"authenticated dashboard", router.Dashboard, true, router.Dashboard},
		{"authenticated weather", router.Weather, true, router.Weather},
		{"authenticated home", router.Home, true, router.Home},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := router.New()
			r.Navigate(tt.page, router.Params{})

			assert.Equal(t, tt.want, r.Resolve(tt.authenticated).Page)
			assert.Equal(t, tt.page, r.Current().Page, "guard must not rewrite the stored route")
		})
	}
}

func TestRouter_NewClientResolvesToLogin(t *testing.T) {
	r := router.New()

	assert.Equal(t, router.Login, r.Resolve(false).Page)
	assert.Equal(t, router.Home, r.Current().Page)
}

func TestIsLanding(t *testing.T) {
	assert.True(t, router.IsLanding(router.Home))
	assert.True(t, router.IsLanding(router.Login))
	assert.False(t, router.IsLanding(router.Trips))
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, router.ModeEdit, router.ParseMode("edit"))
	assert.Equal(t, router.ModeView, router.ParseMode("view"))
	assert.Equal(t, router.ModeCreate, router.ParseMode(""))
	assert.Equal(t, router.ModeCreate, router.ParseMode("delete"))
}
