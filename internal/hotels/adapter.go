// Package hotels normalizes hotel search responses into domain.HotelOption.
//
// Hotel search is proxied to a third-party API whose payload arrives in one
// of several envelopes. Normalize checks the known shapes in a fixed
// priority order and converts the first match:
//
//  1. {"data": {"data": [...]}}
//  2. {"data": [...]}
//  3. {"data": {"hotels": [...]}}
//  4. {"hotels": [...]}
//  5. {"results": [...]}
//  6. [...]
//
// Anything else yields an empty list and a logged diagnostic.
package hotels

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
)

// MaxResults is the number of hotels kept from one search.
const MaxResults = 10

// Query carries the search context copied onto every normalized option.
type Query struct {
	LocationID string
	CheckIn    string
	CheckOut   string
}

type shape struct {
	name    string
	extract func(raw json.RawMessage) ([]json.RawMessage, bool)
}

var shapes = []shape{
	{"data.data", path("data", "data")},
	{"data", path("data")},
	{"data.hotels", path("data", "hotels")},
	{"hotels", path("hotels")},
	{"results", path("results")},
	{"array", path()},
}

// Normalize converts raw into at most MaxResults options.
func Normalize(raw json.RawMessage, q Query) []domain.HotelOption {
	return normalize(raw, q, slog.Default())
}

// NormalizeWithLogger is Normalize with an explicit diagnostics logger.
func NormalizeWithLogger(raw json.RawMessage, q Query, log *slog.Logger) []domain.HotelOption {
	return normalize(raw, q, log)
}

func normalize(raw json.RawMessage, q Query, log *slog.Logger) []domain.HotelOption {
	for _, s := range shapes {
		items, ok := s.extract(raw)
		if !ok {
			continue
		}
		out := make([]domain.HotelOption, 0, min(len(items), MaxResults))
		for i, item := range items {
			if len(out) == MaxResults {
				break
			}
			opt, ok := toOption(item, i, q)
			if !ok {
				log.Debug("hotel entry skipped", "shape", s.name, "index", i)
				continue
			}
			out = append(out, opt)
		}
		return out
	}
	log.Warn("unrecognized hotel search response", "bytes", len(raw), "prefix", prefix(raw, 80))
	return []domain.HotelOption{}
}

// path returns an extractor that walks object keys and expects an array at
// the end. An empty path expects a top-level array.
func path(keys ...string) func(json.RawMessage) ([]json.RawMessage, bool) {
	return func(raw json.RawMessage) ([]json.RawMessage, bool) {
		cur := bytes.TrimSpace(raw)
		for _, k := range keys {
			var obj map[string]json.RawMessage
			if err := json.Unmarshal(cur, &obj); err != nil {
				return nil, false
			}
			next, ok := obj[k]
			if !ok {
				return nil, false
			}
			cur = bytes.TrimSpace(next)
		}
		var items []json.RawMessage
		if len(cur) == 0 || cur[0] != '[' {
			return nil, false
		}
		if err := json.Unmarshal(cur, &items); err != nil {
			return nil, false
		}
		return items, true
	}
}

func toOption(raw json.RawMessage, index int, q Query) (domain.HotelOption, bool) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return domain.HotelOption{}, false
	}

	name := firstString(m, "name", "title", "hotel_name", "hotelName")
	if name == "" {
		return domain.HotelOption{}, false
	}
	// Titles often arrive numbered ("1. Hotel Lutetia").
	name = strings.TrimSpace(leadingRank.ReplaceAllString(name, ""))

	id := firstString(m, "id", "hotel_id", "hotelId", "location_id", "locationId")
	if id == "" {
		id = strconv.Itoa(index + 1)
	}

	opt := domain.HotelOption{
		ID:         domain.OptionID(id),
		Name:       name,
		Address:    firstString(m, "address", "secondaryInfo", "location", "city"),
		Rating:     firstNumber(m, "rating", "bubbleRating.rating", "stars"),
		Price:      firstNumber(m, "price", "price.amount", "priceForDisplay", "price_per_night"),
		Currency:   firstString(m, "currency", "price.currency"),
		CheckIn:    q.CheckIn,
		CheckOut:   q.CheckOut,
		LocationID: q.LocationID,
		ImageURL:   firstString(m, "imageUrl", "image", "thumbnail"),
	}
	return opt, true
}

var (
	leadingRank  = regexp.MustCompile(`^\d+\.\s*`)
	numberInText = regexp.MustCompile(`[0-9]+(?:[.,][0-9]+)*`)
)

// lookup resolves a dotted key like "price.amount" inside m.
func lookup(m map[string]any, key string) (any, bool) {
	var cur any = m
	for _, part := range strings.Split(key, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[part]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := lookup(m, k)
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64)
		}
	}
	return ""
}

func firstNumber(m map[string]any, keys ...string) float64 {
	for _, k := range keys {
		v, ok := lookup(m, k)
		if !ok {
			continue
		}
		switch t := v.(type) {
		case float64:
			return t
		case string:
			// "$1,234" or "4.5 of 5 bubbles"
			match := numberInText.FindString(t)
			if match == "" {
				continue
			}
			if f, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64); err == nil {
				return f
			}
		}
	}
	return 0
}

func prefix(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
