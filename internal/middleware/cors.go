// Package middleware provides the HTTP middleware of the trip planner server.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// apiMethods are the verbs the /api routes answer to. Preflight OPTIONS
// requests are answered by rs/cors itself.
var apiMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}

// preflightMaxAge is how long, in seconds, a browser may reuse a preflight answer.
const preflightMaxAge = 600

// NewCORSHandler lets the page served from one of allowedOrigins call the
// API with its client-id cookie. Origins are full scheme and host with no
// trailing slash. Content-Disposition is exposed so the page can name CSV
// and PDF downloads.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   apiMethods,
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           preflightMaxAge,
	}).Handler
}
