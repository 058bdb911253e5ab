package shape

import (
	"errors"
	"fmt"

	"github.com/vectorpad/vectorpad/internal/geom"
)

// Type is the kind of a committed shape.
type Type string

const (
	TypeLine    Type = "line"
	TypePolygon Type = "polygon"
	TypeCircle  Type = "circle"
)

// LineTolerance is how far, in canvas units, a click may land from a line's
// bounding box and still hit it.
const LineTolerance = 5.0

// MinPolygonPoints is the smallest polygon that can be drawn.
const MinPolygonPoints = 3

var ErrInvalidShape = errors.New("invalid shape")

// Shape is a committed shape on the canvas.
type Shape struct {
	ID     string       `json:"id"`
	Type   Type         `json:"type"`
	Points []geom.Point `json:"points"`
}

// ParseType converts a wire name into a Type.
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypeLine, TypePolygon, TypeCircle:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown type %q", ErrInvalidShape, s)
	}
}

// ValidArity checks that n points is a legal point count for t.
func ValidArity(t Type, n int) error {
	switch t {
	case TypeLine, TypeCircle:
		if n != 2 {
			return fmt.Errorf("%w: %s needs exactly 2 points, got %d", ErrInvalidShape, t, n)
		}
	case TypePolygon:
		if n < MinPolygonPoints {
			return fmt.Errorf("%w: polygon needs at least %d points, got %d", ErrInvalidShape, MinPolygonPoints, n)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidShape, t)
	}
	return nil
}

// NextID returns the id the next shape of type t would receive given the
// shapes already committed.
func NextID(t Type, existing []Shape) string {
	n := 0
	for _, s := range existing {
		if s.Type == t {
			n++
		}
	}
	return fmt.Sprintf("%s%d", t, n)
}

// Create builds a shape from a finished draft. The points are copied, so the
// caller may keep reusing its buffer.
func Create(t Type, points []geom.Point, existing []Shape) (Shape, error) {
	if err := ValidArity(t, len(points)); err != nil {
		return Shape{}, err
	}
	return Shape{
		ID:     NextID(t, existing),
		Type:   t,
		Points: geom.ClonePoints(points),
	}, nil
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	s.Points = geom.ClonePoints(s.Points)
	return s
}

// Radius returns the circle radius, or 0 for other types.
func (s Shape) Radius() float64 {
	if s.Type != TypeCircle || len(s.Points) != 2 {
		return 0
	}
	return geom.Distance(s.Points[0], s.Points[1])
}

// Bounds returns the axis-aligned bounding box of the shape.
func (s Shape) Bounds() geom.Rect {
	if s.Type == TypeCircle && len(s.Points) == 2 {
		c := s.Points[0]
		r := s.Radius()
		return geom.Rect{X: c.X - r, Y: c.Y - r, Width: 2 * r, Height: 2 * r}
	}
	return geom.BoundsOf(s.Points)
}

// HitTest reports whether p lands on the shape.
func HitTest(s Shape, p geom.Point) bool {
	switch s.Type {
	case TypeCircle:
		if len(s.Points) != 2 {
			return false
		}
		return geom.PointInCircle(p, s.Points[0], s.Points[1])
	case TypeLine:
		if len(s.Points) != 2 {
			return false
		}
		return geom.PointNearSegment(p, s.Points[0], s.Points[1], LineTolerance)
	case TypePolygon:
		return geom.RayCastParity(p, s.Points)
	default:
		return false
	}
}

// FirstHit returns the index of the first shape hit by p in list order,
// or -1.
func FirstHit(shapes []Shape, p geom.Point) int {
	for i, s := range shapes {
		if HitTest(s, p) {
			return i
		}
	}
	return -1
}

// CloneAll deep-copies a shape list.
func CloneAll(shapes []Shape) []Shape {
	out := make([]Shape, len(shapes))
	for i, s := range shapes {
		out[i] = s.Clone()
	}
	return out
}
