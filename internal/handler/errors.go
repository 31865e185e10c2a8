package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/pkordes/trip-planner/internal/app"
	"github.com/pkordes/trip-planner/internal/domain"
)

// ErrorDetail is the machine code and user-facing message of a failure.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

func errorBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// requestBody returns an ErrorResponse for a request rejected before it
// reached the application state (e.g. malformed JSON).
func requestBody(message string) ErrorResponse {
	return errorBody("validation_error", message)
}

// writeBodyError rejects a request body that could not be decoded.
func writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, requestBody("request body too large"))
		return
	}
	writeJSON(w, http.StatusBadRequest, requestBody("invalid request body"))
}

// statusFor maps the error taxonomy onto HTTP.
func statusFor(err error) (int, ErrorResponse) {
	msg := domain.UserMessage(err)

	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		body := errorBody("validation_error", msg)
		body.Error.Field = ve.Field
		return http.StatusUnprocessableEntity, body
	case errors.Is(err, domain.ErrUnsupportedInput):
		return http.StatusUnprocessableEntity, errorBody("unsupported_input", msg)
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorBody("not_found", msg)
	case errors.Is(err, domain.ErrConnection):
		return http.StatusBadGateway, errorBody("connection_error", msg)
	case errors.Is(err, domain.ErrServer):
		return http.StatusBadGateway, errorBody("server_error", msg)
	case errors.Is(err, context.Canceled):
		// The browser went away; nobody reads this body.
		return http.StatusRequestTimeout, errorBody("canceled", "request canceled")
	}
	return http.StatusInternalServerError, errorBody("internal_error", "internal server error")
}

// writeError renders err. Errors outside the taxonomy are logged since their
// text is not shown to the user.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "request failed", "error", err, "path", r.URL.Path)
	}
	writeJSON(w, status, body)
}

// respond finishes an app.State action: a nil error renders the client's
// view, anything else the mapped error. Actions have already turned the
// error into a notification.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, st *app.State, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeView(w, st)
}

// fail reports a feature-service error to the client's notifications and
// renders it.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, st *app.State, err error) {
	s.respond(w, r, st, st.Fail(err))
}
