package otp

import (
	"math"
	"testing"
)

func TestLeg_Coordinates(t *testing.T) {
	leg := Leg{ID: "x", PointsOnLink: &PointsOnLink{Points: "_p~iF~ps|U_ulLnnqC_mqNvxq`@"}}

	points, err := leg.Coordinates()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Point{{38.5, -120.2}, {40.7, -120.95}, {43.252, -126.453}}
	if len(points) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(points))
	}
	for i := range want {
		if math.Abs(points[i].Lat-want[i].Lat) > 1e-5 || math.Abs(points[i].Lon-want[i].Lon) > 1e-5 {
			t.Errorf("point %d: got %+v, want %+v", i, points[i], want[i])
		}
	}

	box, ok := Bounds(points)
	if !ok {
		t.Fatal("expected a bounding box")
	}
	if math.Abs(box.MaxLat-43.252) > 1e-5 || math.Abs(box.MinLon+126.453) > 1e-5 {
		t.Errorf("unexpected bounding box %+v", box)
	}
}

func TestLeg_Coordinates_Empty(t *testing.T) {
	points, err := Leg{}.Coordinates()
	if err != nil || points != nil {
		t.Errorf("expected no points and no error, got %v, %v", points, err)
	}
	if _, ok := Bounds(nil); ok {
		t.Error("expected no bounding box for no points")
	}
}

func TestLeg_Coordinates_Invalid(t *testing.T) {
	leg := Leg{ID: "broken", PointsOnLink: &PointsOnLink{Points: "_p~iF~ps|U_"}}
	if _, err := leg.Coordinates(); err == nil {
		t.Error("expected error for truncated polyline")
	}
}
