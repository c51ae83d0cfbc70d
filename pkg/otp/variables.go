package otp

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"otpctl/pkg/format"
	"otpctl/pkg/graphql"
)

// TripQueryVariables are the inputs of one trip search. A search is replaced
// wholesale on every edit, never mutated in place.
type TripQueryVariables struct {
	From            Location   `json:"from" yaml:"from"`
	To              Location   `json:"to" yaml:"to"`
	ArriveBy        bool       `json:"arriveBy,omitempty" yaml:"arriveBy,omitempty"`
	DateTime        *time.Time `json:"dateTime,omitempty" yaml:"dateTime,omitempty"`
	Modes           []string   `json:"modes,omitempty" yaml:"modes,omitempty"`
	NumTripPatterns int        `json:"numTripPatterns,omitempty" yaml:"numTripPatterns,omitempty"`
	PageCursor      string     `json:"pageCursor,omitempty" yaml:"pageCursor,omitempty"`
}

// streetModes maps leg modes to the StreetMode sent as access/egress/direct
// mode. Everything else is sent as a transport mode. Scooters are only
// available as rentals.
var streetModes = map[string]string{
	format.ModeFoot:    "foot",
	format.ModeBicycle: "bicycle",
	format.ModeCar:     "car",
	format.ModeScooter: "scooter_rental",
}

// Validate returns a validation error when the search cannot be sent.
func (v TripQueryVariables) Validate() error {
	var missing []string
	if v.From.IsZero() {
		missing = append(missing, "origin")
	}
	if v.To.IsZero() {
		missing = append(missing, "destination")
	}
	if len(missing) > 0 {
		return graphql.NewValidationError(fmt.Sprintf("trip search needs %s", strings.Join(missing, " and ")))
	}
	for _, m := range v.Modes {
		if !format.IsMode(m) {
			return graphql.NewValidationError(fmt.Sprintf("unknown mode %q", m))
		}
	}
	if v.NumTripPatterns < 0 {
		return graphql.NewValidationError("number of trip patterns must not be negative")
	}
	return nil
}

// Key identifies a search for caching. Equal searches produce equal keys.
func (v TripQueryVariables) Key() string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// WithPageCursor returns a copy of v asking for another page of results.
func (v TripQueryVariables) WithPageCursor(cursor string) TripQueryVariables {
	next := v
	next.Modes = append([]string(nil), v.Modes...)
	next.PageCursor = cursor
	return next
}

// GraphQLVariables renders v as the variables of the trip query.
func (v TripQueryVariables) GraphQLVariables() map[string]any {
	vars := map[string]any{
		"from":     v.From,
		"to":       v.To,
		"arriveBy": v.ArriveBy,
	}
	if v.DateTime != nil {
		vars["dateTime"] = v.DateTime.Format(time.RFC3339)
	}
	if v.NumTripPatterns > 0 {
		vars["numTripPatterns"] = v.NumTripPatterns
	}
	if v.PageCursor != "" {
		vars["pageCursor"] = v.PageCursor
	}
	if len(v.Modes) > 0 {
		vars["modes"] = modesInput(v.Modes)
	}
	return vars
}

func modesInput(modes []string) map[string]any {
	input := map[string]any{}
	transport := []map[string]string{}
	for _, m := range modes {
		m = strings.ToLower(m)
		if street, ok := streetModes[m]; ok {
			// the first street mode wins for access, egress and direct
			if _, ok := input["accessMode"]; !ok {
				input["accessMode"] = street
				input["egressMode"] = street
				input["directMode"] = street
			}
			continue
		}
		transport = append(transport, map[string]string{"transportMode": m})
	}
	if len(transport) > 0 {
		input["transportModes"] = transport
	}
	return input
}

// ParseLocation reads "lat,lon" as coordinates and anything else as a place id.
// An optional "name::" prefix sets the display name.
func ParseLocation(s string) (Location, error) {
	var loc Location
	s = strings.TrimSpace(s)
	if name, rest, ok := strings.Cut(s, "::"); ok {
		loc.Name = strings.TrimSpace(name)
		s = strings.TrimSpace(rest)
	}
	if s == "" {
		return Location{}, fmt.Errorf("empty location")
	}

	if latStr, lonStr, ok := strings.Cut(s, ","); ok {
		lat, latErr := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
		if latErr == nil && lonErr == nil {
			if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
				return Location{}, fmt.Errorf("coordinates out of range: %s", s)
			}
			loc.Coordinates = &Coordinates{Latitude: lat, Longitude: lon}
			return loc, nil
		}
	}

	loc.Place = s
	return loc, nil
}

// String renders the location for display.
func (l Location) String() string {
	switch {
	case l.Name != "":
		return l.Name
	case l.Place != "":
		return l.Place
	case l.Coordinates != nil:
		return fmt.Sprintf("%.5f,%.5f", l.Coordinates.Latitude, l.Coordinates.Longitude)
	}
	return ""
}
