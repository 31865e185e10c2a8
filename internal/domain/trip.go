// Package domain contains the core data types for the trip planner front end.
// This package has no dependencies on other internal packages and is imported
// by every layer (gateway, wizard, service, app, handler).
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ISOTimeLayout formats timestamps the way the trip backend expects them:
// UTC with millisecond precision, e.g. 2025-06-01T00:00:00.000Z.
const ISOTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// DateLayout is the calendar-date layout used by form fields and option records.
const DateLayout = "2006-01-02"

// FormatISO renders t in ISOTimeLayout after converting it to UTC.
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOTimeLayout)
}

// ParseDate accepts a calendar date ("2006-01-02") or a full RFC 3339 timestamp.
// Calendar dates are interpreted as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t.UTC(), nil
}

// BookingType is the kind of transport searched on the first wizard step.
type BookingType string

const (
	BookingFlight BookingType = "flight"
	BookingTrain  BookingType = "train"
	BookingBus    BookingType = "bus"
	BookingCar    BookingType = "car"
)

// Valid reports whether b is one of the known booking types.
func (b BookingType) Valid() bool {
	switch b {
	case BookingFlight, BookingTrain, BookingBus, BookingCar:
		return true
	}
	return false
}

// HasClass reports whether a travel class applies to this booking type.
func (b BookingType) HasClass() bool {
	return b == BookingFlight || b == BookingTrain
}

// TripType distinguishes one-way from round-trip transport searches.
type TripType string

const (
	OneWay    TripType = "one-way"
	RoundTrip TripType = "round-trip"
)

// OptionID identifies a search result. Backends send it either as a JSON
// string or as a number; both decode to the same textual form.
type OptionID string

// UnmarshalJSON accepts JSON strings and numbers.
func (id *OptionID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = OptionID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("option id: %w", err)
	}
	*id = OptionID(n.String())
	return nil
}

// TransportOption is one result of a flight/train/bus/car search.
// Once selected it is stored on the trip verbatim as TransportationData.
type TransportOption struct {
	ID            OptionID    `json:"id"`
	Type          BookingType `json:"type,omitempty"`
	Provider      string      `json:"provider,omitempty"`
	Number        string      `json:"number,omitempty"`
	From          string      `json:"from,omitempty"`
	To            string      `json:"to,omitempty"`
	DepartureDate string      `json:"departureDate,omitempty"`
	ReturnDate    string      `json:"returnDate,omitempty"`
	DepartureTime string      `json:"departureTime,omitempty"`
	ArrivalTime   string      `json:"arrivalTime,omitempty"`
	Duration      string      `json:"duration,omitempty"`
	Price         float64     `json:"price"`
	Currency      string      `json:"currency,omitempty"`
	Class         string      `json:"class,omitempty"`
}

// HotelOption is one normalized result of a hotel search.
// Once selected it is stored on the trip verbatim as HotelData.
type HotelOption struct {
	ID         OptionID `json:"id"`
	Name       string   `json:"name"`
	Address    string   `json:"address,omitempty"`
	Rating     float64  `json:"rating,omitempty"`
	Price      float64  `json:"price"`
	Currency   string   `json:"currency,omitempty"`
	CheckIn    string   `json:"checkIn,omitempty"`
	CheckOut   string   `json:"checkOut,omitempty"`
	LocationID string   `json:"locationId,omitempty"`
	ImageURL   string   `json:"imageUrl,omitempty"`
}

// Trip is the client's transient copy of a persisted trip.
// The backend owns identity; ID is empty until the trip has been created.
type Trip struct {
	ID                 string           `json:"id,omitempty"`
	Destination        string           `json:"destination"`
	TransportationType BookingType      `json:"transportationType,omitempty"`
	TransportationData *TransportOption `json:"transportationData,omitempty"`
	HotelData          *HotelOption     `json:"hotelData,omitempty"`
	StartDate          *time.Time       `json:"startDate,omitempty"`
	EndDate            *time.Time       `json:"endDate,omitempty"`
	Travelers          int              `json:"travelers,omitempty"`
	Status             string           `json:"status,omitempty"`
}

// TripInput is the payload of a create or update trip request.
// Dates are pre-formatted with FormatISO.
type TripInput struct {
	Destination        string           `json:"destination"`
	TransportationType BookingType      `json:"transportationType"`
	TransportationData *TransportOption `json:"transportationData"`
	HotelData          *HotelOption     `json:"hotelData"`
	StartDate          string           `json:"startDate,omitempty"`
	EndDate            string           `json:"endDate,omitempty"`
	Travelers          int              `json:"travelers"`
}
