package model

import "math"

// Point represents a 2D point in pixel coordinates.
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Geometry describes an element's placement on the slide canvas.
// Coordinates are device-independent pixels (96 per inch) with the origin
// at the top-left corner and Y increasing downward, matching the slide
// coordinate system of the source format.
type Geometry struct {
	X        float64 // Left edge
	Y        float64 // Top edge
	Width    float64
	Height   float64
	Rotation float64 // Clockwise degrees in [0, 360)
}

// NewGeometry creates a geometry from position and size.
func NewGeometry(x, y, width, height float64) Geometry {
	return Geometry{X: x, Y: y, Width: width, Height: height}
}

// Left returns the left edge X coordinate.
func (g Geometry) Left() float64 {
	return g.X
}

// Right returns the right edge X coordinate.
func (g Geometry) Right() float64 {
	return g.X + g.Width
}

// Top returns the top edge Y coordinate.
func (g Geometry) Top() float64 {
	return g.Y
}

// Bottom returns the bottom edge Y coordinate.
func (g Geometry) Bottom() float64 {
	return g.Y + g.Height
}

// Center returns the center point.
func (g Geometry) Center() Point {
	return Point{
		X: g.X + g.Width/2,
		Y: g.Y + g.Height/2,
	}
}

// Area returns the area in square pixels.
func (g Geometry) Area() float64 {
	return g.Width * g.Height
}

// Contains checks if a point is inside the geometry's bounding box.
func (g Geometry) Contains(p Point) bool {
	return p.X >= g.Left() && p.X <= g.Right() &&
		p.Y >= g.Top() && p.Y <= g.Bottom()
}

// Intersects checks if two bounding boxes overlap.
func (g Geometry) Intersects(other Geometry) bool {
	return !(g.Right() < other.Left() ||
		g.Left() > other.Right() ||
		g.Bottom() < other.Top() ||
		g.Top() > other.Bottom())
}
