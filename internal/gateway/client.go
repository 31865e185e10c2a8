// Package gateway is the single chokepoint for calls from the planner to the
// trip backend. Every call takes typed parameters and returns either a
// decoded payload or one of the domain error kinds:
//
//   - *domain.ConnectionError when the backend cannot be reached,
//   - *domain.ServerError when it answered with a failure.
//
// Authenticated routes carry the client's session credential as a bearer
// token; signup, login, and health never do.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
)

// genericFailure is shown when the backend fails without saying why.
const genericFailure = "An error occurred"

// CredentialFunc returns the session credential to attach to authenticated
// calls. An empty string means "not logged in" and sends no header.
type CredentialFunc func(ctx context.Context) (string, error)

// Client calls the trip backend rooted at baseURL.
// A Client is safe for concurrent use; WithCredential returns a copy bound
// to one browser client's session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	credential CredentialFunc
}

// New constructs a Client. A nil httpClient selects http.DefaultClient,
// which applies no timeout beyond the transport defaults.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// WithCredential returns a copy of c that reads the bearer token from f.
func (c *Client) WithCredential(f CredentialFunc) *Client {
	cp := *c
	cp.credential = f
	return &cp
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// envelope is the part of every backend response the gateway inspects.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	public bool
}

// call performs req and returns the raw response body of a successful call.
func (c *Client) call(ctx context.Context, req request) ([]byte, error) {
	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		b, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	if !req.public && c.credential != nil {
		token, err := c.credential(ctx)
		if err != nil {
			return nil, fmt.Errorf("read credential: %w", err)
		}
		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &domain.ConnectionError{BaseURL: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.ConnectionError{BaseURL: c.baseURL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, failure(resp, raw)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		// Some endpoints answer with a bare JSON array; anything else is garbage.
		if !json.Valid(raw) {
			return nil, &domain.ServerError{Status: resp.StatusCode, Message: "Invalid response from server"}
		}
		return raw, nil
	}
	if env.Success != nil && !*env.Success {
		msg := env.Message
		if msg == "" {
			msg = genericFailure
		}
		return nil, &domain.ServerError{Status: resp.StatusCode, Message: msg}
	}
	return raw, nil
}

// failure builds the ServerError for a non-2xx response.
func failure(resp *http.Response, raw []byte) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		msg := http.StatusText(resp.StatusCode)
		if msg == "" {
			msg = fmt.Sprintf("Server error (%d)", resp.StatusCode)
		}
		return &domain.ServerError{Status: resp.StatusCode, Message: msg}
	}
	msg := env.Message
	if msg == "" {
		msg = genericFailure
	}
	return &domain.ServerError{Status: resp.StatusCode, Message: msg}
}

// decodeData unmarshals the envelope's data field into out.
func decodeData(raw []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &domain.ServerError{Status: http.StatusOK, Message: "Invalid response from server"}
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return &domain.ServerError{Status: http.StatusOK, Message: "Invalid response from server"}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &domain.ServerError{Status: http.StatusOK, Message: "Invalid response from server"}
	}
	return nil
}

// IsConnection reports whether err means the backend was unreachable.
func IsConnection(err error) bool {
	return errors.Is(err, domain.ErrConnection)
}
