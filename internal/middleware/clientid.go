package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// ClientCookie names the cookie that identifies one browser.
const ClientCookie = "planner_client"

// clientIDMaxAge keeps the cookie for a year.
const clientIDMaxAge = 365 * 24 * 60 * 60

type clientIDKey struct{}

// NewClientIDHandler returns a middleware that puts the browser's client id
// in the request context. Requests without a valid cookie get a fresh id and
// a Set-Cookie header carrying it.
func NewClientIDHandler(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := clientIDFromCookie(r)
			if !ok {
				id = uuid.New()
				http.SetCookie(w, &http.Cookie{
					Name:     ClientCookie,
					Value:    id.String(),
					Path:     "/",
					MaxAge:   clientIDMaxAge,
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(WithClientID(r.Context(), id)))
		})
	}
}

func clientIDFromCookie(r *http.Request) (uuid.UUID, bool) {
	c, err := r.Cookie(ClientCookie)
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(c.Value)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithClientID returns a copy of ctx carrying id.
func WithClientID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, clientIDKey{}, id)
}

// ClientIDFrom returns the client id stored by NewClientIDHandler.
func ClientIDFrom(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(clientIDKey{}).(uuid.UUID)
	return id, ok
}
