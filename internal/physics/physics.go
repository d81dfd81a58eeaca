// Package physics provides vector, bounds and collision utilities.
package physics

import "math"

// Vec2 is a 2D vector used for positions and velocities.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Rect is an axis-aligned rectangle in field coordinates.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewRect creates a rectangle anchored at the origin.
func NewRect(width, height float64) Rect {
	return Rect{MaxX: width, MaxY: height}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the vertical extent.
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// Center returns the middle of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Contains reports whether p lies inside the rectangle (edges inclusive).
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Clamp returns p moved to the nearest point inside the rectangle.
func (r Rect) Clamp(p Vec2) Vec2 {
	return Vec2{X: Clamp(p.X, r.MinX, r.MaxX), Y: Clamp(p.Y, r.MinY, r.MaxY)}
}

// Inset shrinks the rectangle by margin on every side.
// A negative margin grows it.
func (r Rect) Inset(margin float64) Rect {
	out := Rect{
		MinX: r.MinX + margin,
		MinY: r.MinY + margin,
		MaxX: r.MaxX - margin,
		MaxY: r.MaxY - margin,
	}
	if out.MinX > out.MaxX {
		mid := (r.MinX + r.MaxX) / 2
		out.MinX, out.MaxX = mid, mid
	}
	if out.MinY > out.MaxY {
		mid := (r.MinY + r.MaxY) / 2
		out.MinY, out.MaxY = mid, mid
	}
	return out
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}

// CirclesOverlap checks if two circles overlap.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// Overlap is CirclesOverlap for vector positions.
func Overlap(a Vec2, ra float64, b Vec2, rb float64) bool {
	return CirclesOverlap(a.X, a.Y, ra, b.X, b.Y, rb)
}
