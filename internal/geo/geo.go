// Package geo provides spherical coordinate helpers for the country globe.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Paris is the fallback location when the player's position is unknown.
var Paris = LatLon{Lat: 48.8566, Lon: 2.3522}

// LatLon is a geographic position in degrees.
type LatLon struct {
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
}

// Valid reports whether the position is within the geographic ranges.
func (p LatLon) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Vec3 is a point in globe space. Y points to the north pole.
type Vec3 struct {
	X, Y, Z float64
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean norm.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return Vec3{X: v.X / l, Y: v.Y / l, Z: v.Z / l}
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// Distance returns the great-circle distance between a and b in kilometres (haversine).
func Distance(a, b LatLon) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := lat2 - lat1
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// ToCartesian converts a position to a point on a sphere of the given radius.
// phi is the polar angle from the north pole, theta the longitude shifted by 180°.
func ToCartesian(p LatLon, radius float64) Vec3 {
	phi := radians(90 - p.Lat)
	theta := radians(p.Lon + 180)
	return Vec3{
		X: radius * math.Sin(phi) * math.Cos(theta),
		Y: radius * math.Cos(phi),
		Z: radius * math.Sin(phi) * math.Sin(theta),
	}
}

// FromCartesian is the inverse of ToCartesian. The origin maps to (0, 0).
func FromCartesian(v Vec3) LatLon {
	r := v.Length()
	if r < 1e-9 {
		return LatLon{}
	}
	lat := 90 - degrees(math.Acos(v.Y/r))
	lon := degrees(math.Atan2(v.Z, v.X)) - 180
	if lon < -180 {
		lon += 360
	}
	return LatLon{Lat: lat, Lon: lon}
}

// Project maps p onto a unit disc as seen from directly above center
// (orthographic projection). x grows eastwards, y grows northwards.
// visible is false for points on the far hemisphere.
func Project(center, p LatLon) (x, y float64, visible bool) {
	c := ToCartesian(center, 1)
	q := ToCartesian(p, 1)

	north := Vec3{Y: 1}
	east := c.Cross(north).Normalize()
	if east.Length() == 0 {
		// Looking straight at a pole: any horizontal axis works.
		east = Vec3{X: 1}
	}
	up := east.Cross(c).Normalize()

	return q.Dot(east), q.Dot(up), q.Dot(c) > 0
}
