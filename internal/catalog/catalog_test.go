package catalog

import (
	"errors"
	"testing"

	"github.com/tomz197/starfall/internal/geo"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	if len(c.Countries) != 15 {
		t.Errorf("countries = %d, want 15", len(c.Countries))
	}
	if len(c.Planes) != 3 {
		t.Errorf("planes = %d, want 3", len(c.Planes))
	}

	fr, err := c.Country("fr")
	if err != nil {
		t.Fatalf("Country(fr) error: %v", err)
	}
	if fr.Name != "France" {
		t.Errorf("fr name = %q, want France", fr.Name)
	}

	stealth, err := c.Plane("stealth")
	if err != nil {
		t.Fatalf("Plane(stealth) error: %v", err)
	}
	if stealth.Hull != HullWing {
		t.Errorf("stealth hull = %v, want wing", stealth.Hull)
	}
}

func TestLookupErrors(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Country("ZZ"); !errors.Is(err, ErrUnknownCountry) {
		t.Errorf("Country(ZZ) error = %v, want ErrUnknownCountry", err)
	}
	if _, err := c.Plane("zeppelin"); !errors.Is(err, ErrUnknownPlane) {
		t.Errorf("Plane(zeppelin) error = %v, want ErrUnknownPlane", err)
	}
}

func TestNearest(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		at   geo.LatLon
		want string
	}{
		{"paris", geo.Paris, "FR"},
		{"sydney", geo.LatLon{Lat: -33.87, Lon: 151.21}, "AU"},
		{"seoul", geo.LatLon{Lat: 37.57, Lon: 126.98}, "KR"},
		{"rio", geo.LatLon{Lat: -22.91, Lon: -43.17}, "BR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Countries[c.Nearest(tt.at)].Code
			if got != tt.want {
				t.Errorf("Nearest(%v) = %s, want %s", tt.at, got, tt.want)
			}
		})
	}
}

func TestParseRejectsBadCatalog(t *testing.T) {
	bad := []string{
		"countries: []\nplanes: [{key: a, name: A, hull: arrow}]",
		"countries: [{code: FR, name: France, position: {lat: 95, lon: 0}}]\nplanes: [{key: a, hull: arrow}]",
		"countries: [{code: FR, name: France, position: {lat: 0, lon: 0}}]\nplanes: [{key: a, hull: blimp}]",
		"countries: [{code: FR, name: A, position: {lat: 0, lon: 0}}, {code: FR, name: B, position: {lat: 0, lon: 0}}]\nplanes: [{key: a, hull: arrow}]",
	}
	for i, doc := range bad {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func TestLocate(t *testing.T) {
	loc, err := Locate("")
	if err != nil || !loc.Fallback || loc.Position != geo.Paris {
		t.Errorf("Locate(\"\") = %+v, %v; want Paris fallback", loc, err)
	}

	loc, err = Locate(" -33.87, 151.21 ")
	if err != nil {
		t.Fatalf("Locate error: %v", err)
	}
	if loc.Fallback || loc.Position.Lat != -33.87 || loc.Position.Lon != 151.21 {
		t.Errorf("Locate = %+v", loc)
	}

	loc, err = Locate("north")
	if err == nil {
		t.Error("expected parse error")
	}
	if !loc.Fallback || loc.Position != geo.Paris {
		t.Errorf("invalid location should fall back to Paris, got %+v", loc)
	}
}
