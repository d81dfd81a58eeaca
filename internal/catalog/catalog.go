// Package catalog holds the selectable countries and planes.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tomz197/starfall/internal/geo"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// UnknownCountry is the label recorded when no country was selected.
const UnknownCountry = "Unknown"

var (
	ErrUnknownCountry = errors.New("unknown country")
	ErrUnknownPlane   = errors.New("unknown plane")
)

// Hull is the outline drawn for a plane.
type Hull int

const (
	HullArrow Hull = iota
	HullDelta
	HullWing
)

// String returns the YAML name of the hull.
func (h Hull) String() string {
	switch h {
	case HullArrow:
		return "arrow"
	case HullDelta:
		return "delta"
	case HullWing:
		return "wing"
	default:
		return fmt.Sprintf("Hull(%d)", int(h))
	}
}

// UnmarshalYAML decodes a hull name.
func (h *Hull) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	switch strings.ToLower(name) {
	case "arrow":
		*h = HullArrow
	case "delta":
		*h = HullDelta
	case "wing":
		*h = HullWing
	default:
		return fmt.Errorf("line %d: unknown hull %q", node.Line, name)
	}
	return nil
}

// Country is a selectable flag for the player's ship and score entries.
type Country struct {
	Code     string     `yaml:"code"`
	Name     string     `yaml:"name"`
	Position geo.LatLon `yaml:"position"`
}

// Plane is a selectable ship.
type Plane struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
	Hull Hull   `yaml:"hull"`
}

// Catalog is the set of countries and planes offered in the menus.
type Catalog struct {
	Countries []Country `yaml:"countries"`
	Planes    []Plane   `yaml:"planes"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Countries) == 0 {
		return errors.New("countries cannot be empty")
	}
	if len(c.Planes) == 0 {
		return errors.New("planes cannot be empty")
	}
	seen := make(map[string]bool, len(c.Countries))
	for _, country := range c.Countries {
		if country.Code == "" || country.Name == "" {
			return fmt.Errorf("country %q needs both code and name", country.Code)
		}
		if seen[country.Code] {
			return fmt.Errorf("duplicate country code %q", country.Code)
		}
		seen[country.Code] = true
		if !country.Position.Valid() {
			return fmt.Errorf("country %s has invalid position %v", country.Code, country.Position)
		}
	}
	for _, plane := range c.Planes {
		if plane.Key == "" {
			return errors.New("plane key cannot be empty")
		}
	}
	return nil
}

// Country looks up a country by ISO code (case-insensitive).
func (c *Catalog) Country(code string) (Country, error) {
	for _, country := range c.Countries {
		if strings.EqualFold(country.Code, code) {
			return country, nil
		}
	}
	return Country{}, fmt.Errorf("%w: %s", ErrUnknownCountry, code)
}

// Plane looks up a plane by key.
func (c *Catalog) Plane(key string) (Plane, error) {
	for _, plane := range c.Planes {
		if plane.Key == key {
			return plane, nil
		}
	}
	return Plane{}, fmt.Errorf("%w: %s", ErrUnknownPlane, key)
}

// Nearest returns the index of the country closest to p by great-circle distance.
func (c *Catalog) Nearest(p geo.LatLon) int {
	best := 0
	bestDist := math.Inf(1)
	for i, country := range c.Countries {
		if d := geo.Distance(p, country.Position); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// ParseLocation reads a "lat,lon" pair such as "48.85,2.35".
func ParseLocation(s string) (geo.LatLon, error) {
	latStr, lonStr, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return geo.LatLon{}, fmt.Errorf("location %q: want \"lat,lon\"", s)
	}
	var p geo.LatLon
	if _, err := fmt.Sscanf(strings.TrimSpace(latStr), "%g", &p.Lat); err != nil {
		return geo.LatLon{}, fmt.Errorf("location %q: bad latitude: %w", s, err)
	}
	if _, err := fmt.Sscanf(strings.TrimSpace(lonStr), "%g", &p.Lon); err != nil {
		return geo.LatLon{}, fmt.Errorf("location %q: bad longitude: %w", s, err)
	}
	if !p.Valid() {
		return geo.LatLon{}, fmt.Errorf("location %q out of range", s)
	}
	return p, nil
}

// Locator resolves the player's position, falling back to Paris.
type Locator struct {
	Position geo.LatLon
	// Fallback is true when the position is the default rather than the player's own.
	Fallback bool
}

// Locate parses raw (may be empty) and returns a Locator. An empty or invalid value
// yields the Paris fallback together with the parse error, if any.
func Locate(raw string) (Locator, error) {
	if strings.TrimSpace(raw) == "" {
		return Locator{Position: geo.Paris, Fallback: true}, nil
	}
	p, err := ParseLocation(raw)
	if err != nil {
		return Locator{Position: geo.Paris, Fallback: true}, err
	}
	return Locator{Position: p}, nil
}
