package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/router"
)

// NavigateRequest is the body of POST /api/navigate.
type NavigateRequest struct {
	Page        string `json:"page"`
	TripID      string `json:"tripId,omitempty"`
	Mode        string `json:"mode,omitempty"`
	Destination string `json:"destination,omitempty"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the body of POST /api/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// GetView handles GET /api/view.
// It returns the page to render after the auth guard, the notifications
// and, on the create-trip page, the wizard draft.
func (s *Server) GetView(w http.ResponseWriter, r *http.Request) {
	writeView(w, stateFrom(r))
}

// PostNavigate handles POST /api/navigate.
func (s *Server) PostNavigate(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequest
	if err := decodeBody(r, &req); err != nil {
		writeBodyError(w, err)
		return
	}
	st := stateFrom(r)
	err := st.Navigate(r.Context(), router.Page(req.Page), router.Params{
		TripID:      req.TripID,
		Mode:        router.ParseMode(req.Mode),
		Destination: req.Destination,
	})
	s.respond(w, r, st, err)
}

// PostLogin handles POST /api/login.
func (s *Server) PostLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeBodyError(w, err)
		return
	}
	st := stateFrom(r)
	s.respond(w, r, st, st.Login(r.Context(), req.Email, req.Password))
}

// PostSignup handles POST /api/signup.
func (s *Server) PostSignup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := decodeBody(r, &req); err != nil {
		writeBodyError(w, err)
		return
	}
	st := stateFrom(r)
	s.respond(w, r, st, st.Signup(r.Context(), req.Email, req.Username, req.Password))
}

// PostLogout handles POST /api/logout.
func (s *Server) PostLogout(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r)
	s.respond(w, r, st, st.Logout(r.Context()))
}

// DeleteNotification handles DELETE /api/notifications/{id}.
// Dismissing an unknown or expired notification is not an error.
func (s *Server) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("id must be a valid UUID"))
		return
	}
	st := stateFrom(r)
	st.Dismiss(id)
	writeView(w, st)
}
