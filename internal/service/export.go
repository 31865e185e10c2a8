package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/pkordes/trip-planner/internal/clock"
	"github.com/pkordes/trip-planner/internal/domain"
)

// csvHeaders defines the column names written as the first row of the CSV export.
var csvHeaders = []string{
	"trip_id", "destination", "transportation_type", "start_date", "end_date",
	"travelers", "status", "transport_provider", "transport_price",
	"hotel_name", "hotel_price", "currency",
}

// ExportService renders trips as CSV and PDF itineraries.
type ExportService struct {
	trips TripBackend
	clock clock.Clock
}

// NewExportService constructs an ExportService backed by the provided gateway.
func NewExportService(trips TripBackend, c clock.Clock) *ExportService {
	return &ExportService{trips: trips, clock: c}
}

// WriteCSV writes one row per trip to w.
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer) error {
	trips, err := s.trips.ListTrips(ctx)
	if err != nil {
		return fmt.Errorf("service.ExportService.WriteCSV: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders); err != nil {
		return fmt.Errorf("service.ExportService.WriteCSV: %w", err)
	}
	for _, t := range trips {
		if err := cw.Write(tripToCSVRecord(t)); err != nil {
			return fmt.Errorf("service.ExportService.WriteCSV: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// tripToCSVRecord flattens a trip into csvHeaders order. Missing parts are
// empty cells.
func tripToCSVRecord(t domain.Trip) []string {
	var provider, transportPrice, hotelName, hotelPrice, currency string
	if tr := t.TransportationData; tr != nil {
		provider = tr.Provider
		transportPrice = formatMoney(tr.Price)
		currency = tr.Currency
	}
	if h := t.HotelData; h != nil {
		hotelName = h.Name
		hotelPrice = formatMoney(h.Price)
		if currency == "" {
			currency = h.Currency
		}
	}
	return []string{
		t.ID,
		t.Destination,
		string(t.TransportationType),
		formatDate(t.StartDate),
		formatDate(t.EndDate),
		strconv.Itoa(t.Travelers),
		t.Status,
		provider,
		transportPrice,
		hotelName,
		hotelPrice,
		currency,
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(domain.DateLayout)
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// WriteItinerary renders trip id as a one-page PDF itinerary to w.
func (s *ExportService) WriteItinerary(ctx context.Context, id string, w io.Writer) error {
	trip, err := s.trips.GetTrip(ctx, id)
	if err != nil {
		return fmt.Errorf("service.ExportService.WriteItinerary: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Itinerary: "+trip.Destination, true)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(170, 10, tr("Trip to "+trip.Destination), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Generated "+s.clock.Now().UTC().Format("02 Jan 2006, 15:04 UTC"), "", 1, "L", false, 0, "")
	pdf.SetY(36)
	pdf.SetTextColor(0, 0, 0)

	section := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}
	row := func(label, value string) {
		if value == "" {
			value = "-"
		}
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, tr(value), "", 1, "L", false, 0, "")
	}

	section("Overview")
	row("Destination", trip.Destination)
	row("Dates", formatDate(trip.StartDate)+" to "+formatDate(trip.EndDate))
	row("Travelers", strconv.Itoa(max(trip.Travelers, 1)))
	row("Status", trip.Status)
	pdf.Ln(4)

	section("Transportation")
	if t := trip.TransportationData; t != nil {
		row("Type", string(trip.TransportationType))
		row("Provider", joinNonEmpty(" ", t.Provider, t.Number))
		row("Route", joinNonEmpty(" -> ", t.From, t.To))
		row("Departure", joinNonEmpty(" ", t.DepartureDate, t.DepartureTime))
		row("Return", t.ReturnDate)
		row("Class", t.Class)
		row("Price", joinNonEmpty(" ", formatMoney(t.Price), t.Currency))
	} else {
		row("Transportation", "Not selected yet")
	}
	pdf.Ln(4)

	section("Accommodation")
	if h := trip.HotelData; h != nil {
		row("Hotel", h.Name)
		row("Address", h.Address)
		row("Check-in", h.CheckIn)
		row("Check-out", h.CheckOut)
		if h.Rating > 0 {
			row("Rating", strconv.FormatFloat(h.Rating, 'f', 1, 64)+" / 5")
		}
		row("Price", joinNonEmpty(" ", formatMoney(h.Price), h.Currency))
	} else {
		row("Hotel", "Not selected yet")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("service.ExportService.WriteItinerary: %w", err)
	}
	return nil
}

func joinNonEmpty(sep string, parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}
