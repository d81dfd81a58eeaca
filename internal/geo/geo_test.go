package geo

import (
	"math"
	"testing"
)

func TestDistanceKnownCities(t *testing.T) {
	london := LatLon{Lat: 51.5074, Lon: -0.1278}
	newYork := LatLon{Lat: 40.7128, Lon: -74.0060}

	tests := []struct {
		name string
		a, b LatLon
		want float64
	}{
		{"paris-london", Paris, london, 344},
		{"paris-new york", Paris, newYork, 5837},
		{"same point", Paris, Paris, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if math.Abs(got-tt.want) > 10 {
				t.Errorf("Distance = %.1f km, want ~%.0f km", got, tt.want)
			}
			if back := Distance(tt.b, tt.a); math.Abs(back-got) > 1e-9 {
				t.Errorf("distance not symmetric: %v vs %v", got, back)
			}
		})
	}
}

func TestCartesianRoundTrip(t *testing.T) {
	points := []LatLon{
		Paris,
		{Lat: -25.2744, Lon: 133.7751},
		{Lat: 56.1304, Lon: -106.3468},
		{Lat: 0, Lon: 0},
		{Lat: -14.235, Lon: -51.9253},
	}
	for _, p := range points {
		v := ToCartesian(p, 2)
		if r := v.Length(); math.Abs(r-2) > 1e-9 {
			t.Errorf("radius for %v = %v, want 2", p, r)
		}
		back := FromCartesian(v)
		if math.Abs(back.Lat-p.Lat) > 1e-6 || math.Abs(back.Lon-p.Lon) > 1e-6 {
			t.Errorf("round trip %v -> %v", p, back)
		}
	}
}

func TestToCartesianPoles(t *testing.T) {
	north := ToCartesian(LatLon{Lat: 90}, 1)
	if math.Abs(north.Y-1) > 1e-9 {
		t.Errorf("north pole Y = %v, want 1", north.Y)
	}
	if got := FromCartesian(Vec3{}); got != (LatLon{}) {
		t.Errorf("origin should map to zero position, got %v", got)
	}
}

func TestProject(t *testing.T) {
	x, y, visible := Project(Paris, Paris)
	if !visible || math.Abs(x) > 1e-9 || math.Abs(y) > 1e-9 {
		t.Fatalf("center projects to (%v, %v, %v), want (0, 0, true)", x, y, visible)
	}

	// Berlin is east and slightly north of Paris.
	x, y, visible = Project(Paris, LatLon{Lat: 52.52, Lon: 13.405})
	if !visible || x <= 0 || y <= 0 {
		t.Errorf("Berlin projects to (%v, %v, %v), want positive x and y", x, y, visible)
	}

	// The antipode is hidden.
	_, _, visible = Project(Paris, LatLon{Lat: -48.8566, Lon: -177.6478})
	if visible {
		t.Error("antipode should be on the far hemisphere")
	}
}

func TestValid(t *testing.T) {
	if !Paris.Valid() {
		t.Error("Paris should be valid")
	}
	if (LatLon{Lat: 91}).Valid() {
		t.Error("latitude 91 should be invalid")
	}
}
