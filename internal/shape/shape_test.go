package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vectorpad/vectorpad/internal/geom"
)

func TestCreateAssignsOrdinalPerType(t *testing.T) {
	var shapes []Shape

	add := func(typ Type, pts ...geom.Point) Shape {
		s, err := Create(typ, pts, shapes)
		require.NoError(t, err)
		shapes = append(shapes, s)
		return s
	}

	assert.Equal(t, "line0", add(TypeLine, geom.Pt(0, 0), geom.Pt(1, 1)).ID)
	assert.Equal(t, "circle0", add(TypeCircle, geom.Pt(0, 0), geom.Pt(1, 1)).ID)
	assert.Equal(t, "line1", add(TypeLine, geom.Pt(0, 0), geom.Pt(2, 2)).ID)
	assert.Equal(t, "polygon0", add(TypePolygon, geom.Pt(0, 0), geom.Pt(2, 0), geom.Pt(1, 2)).ID)
	assert.Equal(t, "circle1", add(TypeCircle, geom.Pt(5, 5), geom.Pt(6, 6)).ID)
}

func TestCreateDoesNotAliasDraft(t *testing.T) {
	draft := []geom.Point{geom.Pt(10, 10), geom.Pt(50, 50)}
	s, err := Create(TypeLine, draft, nil)
	require.NoError(t, err)

	draft[0] = geom.Pt(-1, -1)
	assert.Equal(t, geom.Pt(10, 10), s.Points[0])
}

func TestCreateRejectsBadArity(t *testing.T) {
	tests := []struct {
		typ Type
		n   int
	}{
		{TypeLine, 1},
		{TypeLine, 3},
		{TypeCircle, 3},
		{TypePolygon, 2},
		{Type("spline"), 4},
	}

	for _, tt := range tests {
		pts := make([]geom.Point, tt.n)
		_, err := Create(tt.typ, pts, nil)
		assert.ErrorIs(t, err, ErrInvalidShape, "%s/%d", tt.typ, tt.n)
	}
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("circle")
	require.NoError(t, err)
	assert.Equal(t, TypeCircle, typ)

	_, err = ParseType("bezier")
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestHitTestDispatch(t *testing.T) {
	line := Shape{ID: "line0", Type: TypeLine, Points: []geom.Point{geom.Pt(10, 10), geom.Pt(50, 50)}}
	tri := Shape{ID: "polygon0", Type: TypePolygon, Points: []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(5, 10)}}
	circle := Shape{ID: "circle0", Type: TypeCircle, Points: []geom.Point{geom.Pt(0, 0), geom.Pt(3, 0)}}

	assert.True(t, HitTest(line, geom.Pt(30, 31)))
	assert.True(t, HitTest(line, geom.Pt(6, 6)), "within tolerance of the box")
	assert.False(t, HitTest(line, geom.Pt(70, 70)))

	assert.True(t, HitTest(tri, geom.Pt(5, 3)))
	assert.False(t, HitTest(tri, geom.Pt(9, 9)))

	assert.True(t, HitTest(circle, geom.Pt(1, 1)))
	assert.False(t, HitTest(circle, geom.Pt(4, 0)))

	assert.False(t, HitTest(Shape{Type: "spline"}, geom.Pt(0, 0)))
}

func TestFirstHitUsesListOrder(t *testing.T) {
	shapes := []Shape{
		{ID: "circle0", Type: TypeCircle, Points: []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0)}},
		{ID: "circle1", Type: TypeCircle, Points: []geom.Point{geom.Pt(1, 0), geom.Pt(10, 0)}},
	}

	assert.Equal(t, 0, FirstHit(shapes, geom.Pt(2, 0)))
	assert.Equal(t, -1, FirstHit(shapes, geom.Pt(100, 0)))
}

func TestRadiusAndBounds(t *testing.T) {
	c := Shape{Type: TypeCircle, Points: []geom.Point{geom.Pt(2, 2), geom.Pt(5, 6)}}
	assert.Equal(t, 5.0, c.Radius())
	assert.Equal(t, geom.Rect{X: -3, Y: -3, Width: 10, Height: 10}, c.Bounds())

	l := Shape{Type: TypeLine, Points: []geom.Point{geom.Pt(4, 1), geom.Pt(0, 3)}}
	assert.Equal(t, 0.0, l.Radius())
	assert.Equal(t, geom.Rect{X: 0, Y: 1, Width: 4, Height: 2}, l.Bounds())
}

func TestCloneAllIsDeep(t *testing.T) {
	orig := []Shape{{ID: "line0", Type: TypeLine, Points: []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1)}}}
	cp := CloneAll(orig)
	cp[0].Points[0] = geom.Pt(9, 9)
	assert.Equal(t, geom.Pt(0, 0), orig[0].Points[0])
}
