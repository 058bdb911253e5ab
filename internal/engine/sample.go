package engine

import (
	"log/slog"

	"github.com/vectorpad/vectorpad/internal/geom"
	"github.com/vectorpad/vectorpad/internal/shape"
)

// LoadSample replaces the canvas with a small demo scene: a rectangle, a
// circle, a triangle and a line. It is a single undoable step.
func (e *Engine) LoadSample() {
	st := initialState()

	sample := []struct {
		t   shape.Type
		pts []geom.Point
	}{
		{shape.TypePolygon, []geom.Point{geom.Pt(100, 100), geom.Pt(300, 100), geom.Pt(300, 250), geom.Pt(100, 250)}},
		{shape.TypeCircle, []geom.Point{geom.Pt(500, 175), geom.Pt(575, 175)}},
		{shape.TypePolygon, []geom.Point{geom.Pt(200, 350), geom.Pt(300, 500), geom.Pt(100, 500)}},
		{shape.TypeLine, []geom.Point{geom.Pt(400, 400), geom.Pt(650, 500)}},
	}

	for _, s := range sample {
		created, err := shape.Create(s.t, s.pts, st.Shapes)
		if err != nil {
			slog.Error("build sample shape", "error", err, "type", s.t)
			continue
		}
		st.Shapes = append(st.Shapes, created)
	}
	st.Reference = geom.Pt(400, 300)

	e.state = st
	e.pending = ""
	e.commit()
}
