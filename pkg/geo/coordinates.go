// Package geo normalizes the coordinate values stored on CMS resources. Values
// arrive either as a JSON object (`{"lat":"48.85","lng":"2.35"}`, as written by
// map picker template variables) or as a plain "lat,lng" pair.
package geo

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Parser attempts to read a Coordinate from a raw value. The boolean reports
// whether the value was recognised; parsers never return errors.
type Parser interface {
	Parse(raw string) (Coordinate, bool)
}

// ParserFunc adapts a function into a Parser.
type ParserFunc func(raw string) (Coordinate, bool)

// Parse calls f(raw).
func (f ParserFunc) Parse(raw string) (Coordinate, bool) {
	return f(raw)
}

// Chain tries each parser in order; the first success wins.
type Chain []Parser

// Parse implements Parser.
func (c Chain) Parse(raw string) (Coordinate, bool) {
	if strings.TrimSpace(raw) == "" {
		return Coordinate{}, false
	}
	for _, parser := range c {
		if parser == nil {
			continue
		}
		if coord, ok := parser.Parse(raw); ok {
			return coord, true
		}
	}
	return Coordinate{}, false
}

// DefaultChain reads JSON objects first, then "lat,lng" pairs.
func DefaultChain() Chain {
	return Chain{JSONObjectParser{}, PairParser{}}
}

// Normalize parses raw with DefaultChain.
func Normalize(raw string) (Coordinate, bool) {
	return DefaultChain().Parse(raw)
}

// JSONObjectParser reads a JSON object holding both `lat` and `lng`. Values may
// be JSON numbers or numeric strings.
type JSONObjectParser struct{}

// Parse implements Parser.
func (JSONObjectParser) Parse(raw string) (Coordinate, bool) {
	trimmed := strings.TrimSpace(raw)
	if !gjson.Valid(trimmed) {
		return Coordinate{}, false
	}
	doc := gjson.Parse(trimmed)
	if !doc.IsObject() {
		return Coordinate{}, false
	}

	lat, lng := doc.Get("lat"), doc.Get("lng")
	if !lat.Exists() || !lng.Exists() {
		return Coordinate{}, false
	}

	latValue, ok := resultFloat(lat)
	if !ok {
		return Coordinate{}, false
	}
	lngValue, ok := resultFloat(lng)
	if !ok {
		return Coordinate{}, false
	}
	return Coordinate{Lat: latValue, Lng: lngValue}, true
}

// PairParser reads "lat,lng" with exactly one comma.
type PairParser struct{}

// Parse implements Parser.
func (PairParser) Parse(raw string) (Coordinate, bool) {
	if !strings.Contains(raw, ",") {
		return Coordinate{}, false
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return Coordinate{}, false
	}

	lat, ok := parseFloat(parts[0])
	if !ok {
		return Coordinate{}, false
	}
	lng, ok := parseFloat(parts[1])
	if !ok {
		return Coordinate{}, false
	}
	return Coordinate{Lat: lat, Lng: lng}, true
}

func resultFloat(r gjson.Result) (float64, bool) {
	switch r.Type {
	case gjson.Number:
		return r.Num, isFinite(r.Num)
	case gjson.String:
		return parseFloat(r.Str)
	default:
		return 0, false
	}
}

func parseFloat(value string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, false
	}
	return f, isFinite(f)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
