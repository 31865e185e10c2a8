package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/gateway"
)

// BudgetBackend is the part of the gateway the budget planner calls.
type BudgetBackend interface {
	ListBudgets(ctx context.Context) ([]domain.Budget, error)
	GetBudget(ctx context.Context, id string) (domain.Budget, error)
	CreateBudget(ctx context.Context, b domain.Budget) (domain.Budget, error)
	UpdateBudget(ctx context.Context, b domain.Budget) (domain.Budget, error)
	DeleteBudget(ctx context.Context, id string) error
	ExchangeRates(ctx context.Context, base string) (gateway.ExchangeRates, error)
}

// BudgetService implements the budget planner.
type BudgetService struct {
	backend BudgetBackend
}

// NewBudgetService constructs a BudgetService backed by the provided gateway.
func NewBudgetService(b BudgetBackend) *BudgetService {
	return &BudgetService{backend: b}
}

// CategoryShare is one category of a budget breakdown.
type CategoryShare struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Percent  float64 `json:"percent"`
}

// Summary is a budget with its computed totals.
type Summary struct {
	Budget    domain.Budget   `json:"budget"`
	Total     float64         `json:"total"`
	Breakdown []CategoryShare `json:"breakdown"`
}

// Summarize computes the total and per-category shares of b. Shares are 0
// when the total is 0.
func Summarize(b domain.Budget) Summary {
	total := b.Total()
	amounts := b.Amounts()
	shares := make([]CategoryShare, 0, len(domain.BudgetCategories))
	for _, c := range domain.BudgetCategories {
		var pct float64
		if total > 0 {
			pct = amounts[c] / total * 100
		}
		shares = append(shares, CategoryShare{Category: c, Amount: amounts[c], Percent: pct})
	}
	return Summary{Budget: b, Total: total, Breakdown: shares}
}

// List returns every budget with its summary.
func (s *BudgetService) List(ctx context.Context) ([]Summary, error) {
	budgets, err := s.backend.ListBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.BudgetService.List: %w", err)
	}
	out := make([]Summary, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, Summarize(b))
	}
	return out, nil
}

// Get returns one budget with its summary.
func (s *BudgetService) Get(ctx context.Context, id string) (Summary, error) {
	b, err := s.backend.GetBudget(ctx, id)
	if err != nil {
		return Summary{}, fmt.Errorf("service.BudgetService.Get: %w", err)
	}
	return Summarize(b), nil
}

// Save validates b and creates it when it has no ID, else updates it.
func (s *BudgetService) Save(ctx context.Context, b domain.Budget) (Summary, error) {
	if err := validateBudget(&b); err != nil {
		return Summary{}, err
	}

	var (
		saved domain.Budget
		err   error
	)
	if b.ID == "" {
		saved, err = s.backend.CreateBudget(ctx, b)
	} else {
		saved, err = s.backend.UpdateBudget(ctx, b)
	}
	if err != nil {
		return Summary{}, fmt.Errorf("service.BudgetService.Save: %w", err)
	}
	return Summarize(saved), nil
}

func validateBudget(b *domain.Budget) error {
	b.Name = strings.TrimSpace(b.Name)
	b.Currency = strings.ToUpper(strings.TrimSpace(b.Currency))
	if b.Name == "" {
		return domain.NewValidationError("name", "")
	}
	if b.Currency == "" {
		b.Currency = "USD"
	}
	if len(b.Currency) != 3 {
		return domain.NewValidationError("currency", fmt.Sprintf("invalid currency code %q", b.Currency))
	}
	for c, v := range b.Amounts() {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return domain.NewValidationError(c, fmt.Sprintf("%s must be zero or more", c))
		}
	}
	return nil
}

// Delete removes a budget. The caller must pass confirmed=true.
func (s *BudgetService) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return domain.NewValidationError("confirmation", "Please confirm that the budget should be deleted")
	}
	if err := s.backend.DeleteBudget(ctx, id); err != nil {
		return fmt.Errorf("service.BudgetService.Delete: %w", err)
	}
	return nil
}

// Conversion is an amount converted between two currencies.
type Conversion struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Rate      float64 `json:"rate"`
	Amount    float64 `json:"amount"`
	Converted float64 `json:"converted"`
}

// Convert fetches the rates for base and converts amount into target.
func (s *BudgetService) Convert(ctx context.Context, amount float64, base, target string) (Conversion, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	target = strings.ToUpper(strings.TrimSpace(target))
	if base == "" {
		return Conversion{}, domain.NewValidationError("base", "")
	}
	if target == "" {
		return Conversion{}, domain.NewValidationError("target", "")
	}

	rates, err := s.backend.ExchangeRates(ctx, base)
	if err != nil {
		return Conversion{}, fmt.Errorf("service.BudgetService.Convert: %w", err)
	}
	return ConvertWith(amount, base, target, rates.ConversionRates)
}

// ConvertWith converts amount from base into target using a
// conversion_rates table keyed by currency code.
func ConvertWith(amount float64, base, target string, rates map[string]float64) (Conversion, error) {
	rate, ok := rates[target]
	if !ok {
		if target != base {
			return Conversion{}, domain.NewValidationError("target", fmt.Sprintf("no exchange rate from %s to %s", base, target))
		}
		rate = 1
	}
	return Conversion{
		From:      base,
		To:        target,
		Rate:      rate,
		Amount:    amount,
		Converted: amount * rate,
	}, nil
}
