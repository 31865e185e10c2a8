package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/middleware"
)

// echoClientID writes the context client id as the response body.
var echoClientID = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.ClientIDFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	_, _ = w.Write([]byte(id.String()))
})

// TestClientIDHandler_NewClient verifies that a request without a cookie gets
// a fresh id in context and a Set-Cookie header carrying the same id.
func TestClientIDHandler_NewClient(t *testing.T) {
	h := middleware.NewClientIDHandler(false)(echoClientID)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/view", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.ClientCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, rec.Body.String(), cookies[0].Value)
	_, err := uuid.Parse(cookies[0].Value)
	assert.NoError(t, err)
}

// TestClientIDHandler_ReturningClient verifies that a valid cookie is reused
// and not re-issued.
func TestClientIDHandler_ReturningClient(t *testing.T) {
	h := middleware.NewClientIDHandler(true)(echoClientID)
	id := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/view", nil)
	req.AddCookie(&http.Cookie{Name: middleware.ClientCookie, Value: id.String()})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, id.String(), rec.Body.String())
	assert.Empty(t, rec.Result().Cookies())
}

// TestClientIDHandler_InvalidCookie verifies that a tampered cookie is replaced.
func TestClientIDHandler_InvalidCookie(t *testing.T) {
	h := middleware.NewClientIDHandler(false)(echoClientID)

	req := httptest.NewRequest(http.MethodGet, "/api/view", nil)
	req.AddCookie(&http.Cookie{Name: middleware.ClientCookie, Value: "not-a-uuid"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.NotEqual(t, "not-a-uuid", cookies[0].Value)
	assert.Equal(t, cookies[0].Value, rec.Body.String())
}
