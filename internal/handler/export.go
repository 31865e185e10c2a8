package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// GetTripsCSV handles GET /api/trips/export.csv.
// The file is rendered in memory first so a backend failure still produces
// a JSON error instead of a truncated download.
func (s *Server) GetTripsCSV(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r)
	var buf bytes.Buffer
	if err := st.Export.WriteCSV(r.Context(), &buf); err != nil {
		s.fail(w, r, st, err)
		return
	}
	writeAttachment(w, "text/csv", "trips.csv", buf.Bytes())
}

// GetItineraryPDF handles GET /api/trips/{id}/itinerary.pdf.
func (s *Server) GetItineraryPDF(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r)
	id := chi.URLParam(r, "id")
	var buf bytes.Buffer
	if err := st.Export.WriteItinerary(r.Context(), id, &buf); err != nil {
		s.fail(w, r, st, err)
		return
	}
	writeAttachment(w, "application/pdf", fmt.Sprintf("itinerary-%s.pdf", id), buf.Bytes())
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
