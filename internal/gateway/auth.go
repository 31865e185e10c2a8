package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkordes/trip-planner/internal/domain"
)

// User is the account returned by the auth endpoints.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// AuthResult is the payload of a successful signup or login.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// HealthStatus is the payload of GET /api/health.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Signup creates an account. Public route.
func (c *Client) Signup(ctx context.Context, email, username, password string) (AuthResult, error) {
	raw, err := c.call(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/signup",
		body:   map[string]string{"email": email, "username": username, "password": password},
		public: true,
	})
	if err != nil {
		return AuthResult{}, fmt.Errorf("gateway.Client.Signup: %w", err)
	}
	return decodeAuth("gateway.Client.Signup", raw)
}

// Login exchanges credentials for a session token. Public route.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	raw, err := c.call(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/login",
		body:   map[string]string{"email": email, "password": password},
		public: true,
	})
	if err != nil {
		return AuthResult{}, fmt.Errorf("gateway.Client.Login: %w", err)
	}
	return decodeAuth("gateway.Client.Login", raw)
}

// Me returns the account the current credential belongs to.
func (c *Client) Me(ctx context.Context) (User, error) {
	raw, err := c.call(ctx, request{method: http.MethodGet, path: "/api/auth/me"})
	if err != nil {
		return User{}, fmt.Errorf("gateway.Client.Me: %w", err)
	}
	var body struct {
		User User `json:"user"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || body.User.ID == "" {
		var u User
		if err := decodeData(raw, &u); err != nil {
			return User{}, fmt.Errorf("gateway.Client.Me: %w", err)
		}
		return u, nil
	}
	return body.User, nil
}

// Health checks that the backend is up. Public route.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	raw, err := c.call(ctx, request{method: http.MethodGet, path: "/api/health", public: true})
	if err != nil {
		return HealthStatus{}, fmt.Errorf("gateway.Client.Health: %w", err)
	}
	var h HealthStatus
	if err := json.Unmarshal(raw, &h); err != nil {
		return HealthStatus{}, fmt.Errorf("gateway.Client.Health: %w", err)
	}
	return h, nil
}

func decodeAuth(op string, raw []byte) (AuthResult, error) {
	var res AuthResult
	if err := json.Unmarshal(raw, &res); err != nil || res.Token == "" {
		return AuthResult{}, fmt.Errorf("%s: %w", op, &domain.ServerError{Status: http.StatusOK, Message: "Invalid response from server"})
	}
	return res, nil
}
