package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pkordes/trip-planner/internal/clock"
	"github.com/pkordes/trip-planner/internal/domain"
)

// DashboardBackend is the part of the gateway the dashboard calls.
type DashboardBackend interface {
	ListTrips(ctx context.Context) ([]domain.Trip, error)
	ListBudgets(ctx context.Context) ([]domain.Budget, error)
}

// DashboardService assembles the dashboard.
type DashboardService struct {
	backend DashboardBackend
	clock   clock.Clock
}

// NewDashboardService constructs a DashboardService. The clock decides
// which trips are upcoming.
func NewDashboardService(b DashboardBackend, c clock.Clock) *DashboardService {
	return &DashboardService{backend: b, clock: c}
}

// Dashboard groups the user's trips and budgets.
type Dashboard struct {
	Upcoming []domain.Trip `json:"upcoming"`
	Past     []domain.Trip `json:"past"`
	Budgets  []Summary     `json:"budgets"`
}

// Load fetches trips and budgets. A trip is upcoming when it ends today or
// later, or has no dates yet; upcoming trips are sorted soonest first and
// past trips most recent first.
func (s *DashboardService) Load(ctx context.Context) (Dashboard, error) {
	trips, err := s.backend.ListTrips(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("service.DashboardService.Load: %w", err)
	}
	budgets, err := s.backend.ListBudgets(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("service.DashboardService.Load: %w", err)
	}

	now := s.clock.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	d := Dashboard{Upcoming: []domain.Trip{}, Past: []domain.Trip{}, Budgets: make([]Summary, 0, len(budgets))}
	for _, t := range trips {
		if isPast(t, today) {
			d.Past = append(d.Past, t)
		} else {
			d.Upcoming = append(d.Upcoming, t)
		}
	}
	sort.SliceStable(d.Upcoming, func(i, j int) bool {
		return startOf(d.Upcoming[i]).Before(startOf(d.Upcoming[j]))
	})
	sort.SliceStable(d.Past, func(i, j int) bool {
		return startOf(d.Past[i]).After(startOf(d.Past[j]))
	})
	for _, b := range budgets {
		d.Budgets = append(d.Budgets, Summarize(b))
	}
	return d, nil
}

func isPast(t domain.Trip, today time.Time) bool {
	end := t.EndDate
	if end == nil {
		end = t.StartDate
	}
	return end != nil && end.UTC().Before(today)
}

// startOf sorts undated trips last among upcoming ones.
func startOf(t domain.Trip) time.Time {
	if t.StartDate == nil {
		return time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return *t.StartDate
}
