package loop

import (
	"math"
	"math/rand"

	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/geo"
	lconfig "github.com/tomz197/starfall/internal/loop/config"
)

// star is a backdrop point; positions are fractions of the field.
type star struct {
	x, y  float64
	speed float64 // Field heights per second
}

var backdrop = func() []star {
	rng := rand.New(rand.NewSource(1))
	stars := make([]star, 60)
	for i := range stars {
		stars[i] = star{x: rng.Float64(), y: rng.Float64(), speed: 0.02 + rng.Float64()*0.06}
	}
	return stars
}()

// drawStarfield draws the scrolling backdrop for time t.
func drawStarfield(canvas *draw.Canvas, t float64) {
	w, h := canvas.LogicalWidth(), canvas.LogicalHeight()
	canvas.SetColor(draw.ColorGray)
	for _, s := range backdrop {
		_, y := math.Modf(s.y + t*s.speed)
		canvas.SetFloat(s.x*w, y*h)
	}
}

// drawGlobe draws an orthographic globe centred on the country under the cursor,
// with every country as a marker and the player's own position in red.
func (c *Client) drawGlobe() {
	canvas := c.canvas
	center := c.catalog.Countries[c.state.BrowseIndex].Position
	cx, cy := c.tuning.FieldWidth/2, c.tuning.FieldHeight/2
	r := math.Min(lconfig.GlobeRadius, math.Min(cx, cy)-4)

	toCanvas := func(p geo.LatLon) (float64, float64, bool) {
		x, y, visible := geo.Project(center, p)
		return cx + x*r, cy - y*r, visible
	}

	// Graticule every 30 degrees.
	canvas.SetColor(draw.ColorBlue)
	for lat := -60.0; lat <= 60; lat += 30 {
		for lon := -180.0; lon < 180; lon += 4 {
			if x, y, ok := toCanvas(geo.LatLon{Lat: lat, Lon: lon}); ok {
				canvas.SetFloat(x, y)
			}
		}
	}
	for lon := -180.0; lon < 180; lon += 30 {
		for lat := -88.0; lat <= 88; lat += 4 {
			if x, y, ok := toCanvas(geo.LatLon{Lat: lat, Lon: lon}); ok {
				canvas.SetFloat(x, y)
			}
		}
	}

	canvas.SetColor(draw.ColorCyan)
	canvas.DrawCircle(draw.Point{X: cx, Y: cy}, r, lconfig.GlobeSegments)

	for i, country := range c.catalog.Countries {
		x, y, ok := toCanvas(country.Position)
		if !ok {
			continue
		}
		size := 1.5
		switch {
		case i == c.state.BrowseIndex:
			canvas.SetColor(draw.ColorYellow)
			size = 3
		case i == c.state.CountryIndex:
			canvas.SetColor(draw.ColorGreen)
			size = 2
		default:
			canvas.SetColor(draw.ColorWhite)
		}
		canvas.FillRect(x-size/2, y-size/2, size, size)
	}

	if x, y, ok := toCanvas(c.location.Position); ok {
		canvas.SetColor(draw.ColorRed)
		canvas.DrawCircle(draw.Point{X: x, Y: y}, 2, 8)
	}
}
