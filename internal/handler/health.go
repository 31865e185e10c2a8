package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/internal/domain"
)

// HealthResponse reports this server and the trip backend behind it.
type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
	Message string `json:"message,omitempty"`
}

// GetHealth handles GET /api/health.
// It returns HTTP 200 with status "ok" while the server is running. The
// backend field is "ok" or "unreachable"; an unreachable backend does not
// fail the check.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Backend: "ok"}
	if s.backend != nil {
		h, err := s.backend.Health(r.Context())
		switch {
		case err != nil:
			resp.Backend = "unreachable"
			resp.Message = domain.UserMessage(err)
		case h.Message != "":
			resp.Message = h.Message
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
