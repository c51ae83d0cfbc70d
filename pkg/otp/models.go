package otp

import "time"

// Coordinates is a WGS84 position.
type Coordinates struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Location describes the origin or destination of a search, either a stop
// place id or a coordinate pair.
type Location struct {
	Place       string       `json:"place,omitempty" yaml:"place,omitempty"`
	Name        string       `json:"name,omitempty" yaml:"name,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
}

// IsZero reports whether the location names neither a place nor coordinates.
func (l Location) IsZero() bool {
	return l.Place == "" && l.Coordinates == nil
}

// ServerInfo is the static metadata the backend reports about its build.
type ServerInfo struct {
	Version                      string   `json:"version"`
	BuildTime                    string   `json:"buildTime"`
	GitBranch                    string   `json:"gitBranch"`
	GitCommit                    string   `json:"gitCommit"`
	OTPConfigVersion             string   `json:"otpConfigVersion"`
	BuildConfigVersion           string   `json:"buildConfigVersion"`
	RouterConfigVersion          string   `json:"routerConfigVersion"`
	OTPSerializationVersionIDs   []string `json:"otpSerializationVersionIds"`
	InternalTransitModelTimeZone string   `json:"internalTransitModelTimeZone"`
}

// TripQueryResult holds the trip patterns of one completed search.
type TripQueryResult struct {
	PreviousPageCursor string        `json:"previousPageCursor"`
	NextPageCursor     string        `json:"nextPageCursor"`
	TripPatterns       []TripPattern `json:"tripPatterns"`
}

// TripPattern is one candidate itinerary.
type TripPattern struct {
	AimedStartTime    time.Time `json:"aimedStartTime"`
	AimedEndTime      time.Time `json:"aimedEndTime"`
	ExpectedStartTime time.Time `json:"expectedStartTime"`
	ExpectedEndTime   time.Time `json:"expectedEndTime"`
	// Duration in seconds
	Duration int `json:"duration"`
	// Distance in meters
	Distance float64 `json:"distance"`
	Legs     []Leg   `json:"legs"`
}

// TotalDuration returns the pattern duration as a time.Duration.
func (p TripPattern) TotalDuration() time.Duration {
	return time.Duration(p.Duration) * time.Second
}

// Leg is a single continuous part of a trip pattern using one mode.
type Leg struct {
	ID                string        `json:"id"`
	Mode              string        `json:"mode"`
	AimedStartTime    time.Time     `json:"aimedStartTime"`
	AimedEndTime      time.Time     `json:"aimedEndTime"`
	ExpectedStartTime time.Time     `json:"expectedStartTime"`
	ExpectedEndTime   time.Time     `json:"expectedEndTime"`
	Realtime          bool          `json:"realtime"`
	Distance          float64       `json:"distance"`
	Duration          int           `json:"duration"`
	FromPlace         Place         `json:"fromPlace"`
	ToPlace           Place         `json:"toPlace"`
	Line              *Line         `json:"line,omitempty"`
	Authority         *Authority    `json:"authority,omitempty"`
	PointsOnLink      *PointsOnLink `json:"pointsOnLink,omitempty"`
}

// Place is where a leg starts or ends.
type Place struct {
	Name string `json:"name"`
	Quay *struct {
		ID string `json:"id"`
	} `json:"quay,omitempty"`
}

// Line holds the public information about the vehicle's line.
type Line struct {
	ID         string `json:"id"`
	PublicCode string `json:"publicCode"`
	Name       string `json:"name"`
}

// Authority operates the line.
type Authority struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PointsOnLink is the leg geometry as an encoded polyline.
type PointsOnLink struct {
	Points string `json:"points"`
	Length int    `json:"length"`
}
