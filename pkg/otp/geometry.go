package otp

import (
	"fmt"

	"github.com/twpayne/go-polyline"
)

// Point is a decoded geometry vertex.
type Point struct {
	Lat float64
	Lon float64
}

// BoundingBox spans a set of points.
type BoundingBox struct {
	MinLat, MinLon float64
	MaxLat, MaxLon float64
}

// Coordinates decodes the leg geometry. A leg without geometry yields no points.
func (l Leg) Coordinates() ([]Point, error) {
	if l.PointsOnLink == nil || l.PointsOnLink.Points == "" {
		return nil, nil
	}
	coords, rest, err := polyline.DecodeCoords([]byte(l.PointsOnLink.Points))
	if err != nil {
		return nil, fmt.Errorf("failed to decode geometry of leg %s: %w", l.ID, err)
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("trailing data in geometry of leg %s", l.ID)
	}

	points := make([]Point, 0, len(coords))
	for _, c := range coords {
		points = append(points, Point{Lat: c[0], Lon: c[1]})
	}
	return points, nil
}

// Bounds returns the bounding box of points and false when there are none.
func Bounds(points []Point) (BoundingBox, bool) {
	if len(points) == 0 {
		return BoundingBox{}, false
	}
	b := BoundingBox{
		MinLat: points[0].Lat, MaxLat: points[0].Lat,
		MinLon: points[0].Lon, MaxLon: points[0].Lon,
	}
	for _, p := range points[1:] {
		b.MinLat = min(b.MinLat, p.Lat)
		b.MaxLat = max(b.MaxLat, p.Lat)
		b.MinLon = min(b.MinLon, p.Lon)
		b.MaxLon = max(b.MaxLon, p.Lon)
	}
	return b, true
}

// PatternGeometry decodes every leg of p in order.
func PatternGeometry(p TripPattern) ([][]Point, error) {
	legs := make([][]Point, 0, len(p.Legs))
	for _, l := range p.Legs {
		pts, err := l.Coordinates()
		if err != nil {
			return nil, err
		}
		legs = append(legs, pts)
	}
	return legs, nil
}
