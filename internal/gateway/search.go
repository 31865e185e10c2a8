package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkordes/trip-planner/internal/domain"
)

// TransportQuery is the form state of the transport step.
type TransportQuery struct {
	Type          domain.BookingType
	TripType      domain.TripType
	From          string
	To            string
	DepartureDate string
	ReturnDate    string
	Travelers     int
	Class         string
}

// searchPaths maps booking types to backend search routes.
var searchPaths = map[domain.BookingType]string{
	domain.BookingFlight: "/api/search/flights",
	domain.BookingTrain:  "/api/search/trains",
	domain.BookingBus:    "/api/search/buses",
	domain.BookingCar:    "/api/search/cars",
}

// SearchTransport returns the options for one transport search.
func (c *Client) SearchTransport(ctx context.Context, q TransportQuery) ([]domain.TransportOption, error) {
	p, ok := searchPaths[q.Type]
	if !ok {
		return nil, fmt.Errorf("gateway.Client.SearchTransport: %w", domain.NewValidationError("bookingType", fmt.Sprintf("unknown booking type %q", q.Type)))
	}

	params := url.Values{}
	params.Set("from", q.From)
	params.Set("to", q.To)
	params.Set("departureDate", q.DepartureDate)
	if q.ReturnDate != "" {
		params.Set("returnDate", q.ReturnDate)
	}
	params.Set("tripType", string(q.TripType))
	params.Set("travelers", strconv.Itoa(max(q.Travelers, 1)))
	if q.Class != "" && q.Type.HasClass() {
		params.Set("class", q.Class)
	}

	raw, err := c.call(ctx, request{method: http.MethodGet, path: p, query: params})
	if err != nil {
		return nil, fmt.Errorf("gateway.Client.SearchTransport: %w", err)
	}
	var opts []domain.TransportOption
	if err := decodeData(raw, &opts); err != nil {
		return nil, fmt.Errorf("gateway.Client.SearchTransport: %w", err)
	}
	return opts, nil
}

// HotelQuery is the form state of the hotel step, with the city already
// resolved to a location identifier.
type HotelQuery struct {
	LocationID string
	CheckIn    string
	CheckOut   string
	Guests     int
	Rooms      int
}

// SearchHotels returns the raw hotel search response. Its shape depends on
// the upstream provider; see package hotels for normalization.
func (c *Client) SearchHotels(ctx context.Context, q HotelQuery) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("locationId", q.LocationID)
	params.Set("checkIn", q.CheckIn)
	params.Set("checkOut", q.CheckOut)
	params.Set("guests", strconv.Itoa(max(q.Guests, 1)))
	params.Set("rooms", strconv.Itoa(max(q.Rooms, 1)))

	raw, err := c.call(ctx, request{method: http.MethodGet, path: "/api/search/hotels", query: params})
	if err != nil {
		return nil, fmt.Errorf("gateway.Client.SearchHotels: %w", err)
	}
	return json.RawMessage(raw), nil
}
