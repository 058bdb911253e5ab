package geom

import "math"

// Point is a homogeneous 2D coordinate. Z is normally 1.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Pt returns the point (x, y, 1).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y, Z: 1}
}

// Origin is the default reference point.
func Origin() Point {
	return Pt(0, 0)
}

// Distance returns the Euclidean distance between a and b, ignoring Z.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Sub returns a - b on the X and Y components. Z is kept from a.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z}
}

// Cross returns the Z component of the 2D cross product p × q.
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// ApproxEqual reports whether p and q match within eps on every component.
func (p Point) ApproxEqual(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps &&
		math.Abs(p.Y-q.Y) <= eps &&
		math.Abs(p.Z-q.Z) <= eps
}

// ClonePoints returns a fresh copy of pts. A nil input yields an empty slice.
func ClonePoints(pts []Point) []Point {
	out := make([]Point, len(pts))
	copy(out, pts)
	return out
}
