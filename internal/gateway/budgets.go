package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkordes/trip-planner/internal/domain"
)

// ListBudgets returns every budget of the logged-in user.
func (c *Client) ListBudgets(ctx context.Context) ([]domain.Budget, error) {
	raw, err := c.call(ctx, request{method: http.MethodGet, path: "/api/budgets"})
	if err != nil {
		return nil, fmt.Errorf("gateway.Client.ListBudgets: %w", err)
	}
	var budgets []domain.Budget
	if err := decodeData(raw, &budgets); err != nil {
		return nil, fmt.Errorf("gateway.Client.ListBudgets: %w", err)
	}
	return budgets, nil
}

// GetBudget returns one budget by id.
func (c *Client) GetBudget(ctx context.Context, id string) (domain.Budget, error) {
	raw, err := c.call(ctx, request{method: http.MethodGet, path: "/api/budgets/" + url.PathEscape(id)})
	if err != nil {
		return domain.Budget{}, fmt.Errorf("gateway.Client.GetBudget: %w", err)
	}
	var b domain.Budget
	if err := decodeData(raw, &b); err != nil {
		return domain.Budget{}, fmt.Errorf("gateway.Client.GetBudget: %w", err)
	}
	return b, nil
}

// CreateBudget persists a new budget.
func (c *Client) CreateBudget(ctx context.Context, b domain.Budget) (domain.Budget, error) {
	b.ID = ""
	raw, err := c.call(ctx, request{method: http.MethodPost, path: "/api/budgets", body: b})
	if err != nil {
		return domain.Budget{}, fmt.Errorf("gateway.Client.CreateBudget: %w", err)
	}
	var out domain.Budget
	if err := decodeData(raw, &out); err != nil {
		return domain.Budget{}, fmt.Errorf("gateway.Client.CreateBudget: %w", err)
	}
	return out, nil
}

// UpdateBudget overwrites budget b.ID.
func (c *Client) UpdateBudget(ctx context.Context, b domain.Budget) (domain.Budget, error) {
	raw, err := c.call(ctx, request{method: http.MethodPut, path: "/api/budgets/" + url.PathEscape(b.ID), body: b})
	if err != nil {
		return domain.Budget{}, fmt.Errorf("gateway.Client.UpdateBudget: %w", err)
	}
	var out domain.Budget
	if err := decodeData(raw, &out); err != nil {
		return domain.Budget{}, fmt.Errorf("gateway.Client.UpdateBudget: %w", err)
	}
	return out, nil
}

// DeleteBudget removes budget id.
func (c *Client) DeleteBudget(ctx context.Context, id string) error {
	if _, err := c.call(ctx, request{method: http.MethodDelete, path: "/api/budgets/" + url.PathEscape(id)}); err != nil {
		return fmt.Errorf("gateway.Client.DeleteBudget: %w", err)
	}
	return nil
}
