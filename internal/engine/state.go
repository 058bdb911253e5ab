package engine

import (
	"slices"

	"github.com/vectorpad/vectorpad/internal/geom"
	"github.com/vectorpad/vectorpad/internal/shape"
)

// ModeKind tags the active editor mode. Exactly one is active at a time.
type ModeKind string

const (
	ModeSelecting         ModeKind = "selecting"
	ModeDrawing           ModeKind = "drawing"
	ModeChangingReference ModeKind = "changingReference"
)

// Mode is the modal state of the editor. ShapeType and PointsRemaining are
// only meaningful while drawing.
type Mode struct {
	Kind            ModeKind   `json:"kind"`
	ShapeType       shape.Type `json:"shapeType,omitempty"`
	PointsRemaining int        `json:"pointsRemaining,omitempty"`
}

// State is everything that undo/redo restores. Fields are exported so the
// history package can deep-copy them.
type State struct {
	Mode      Mode          `json:"mode"`
	Draft     []geom.Point  `json:"draft"`
	Shapes    []shape.Shape `json:"shapes"`
	Selection []string      `json:"selection"`
	Reference geom.Point    `json:"reference"`
}

func initialState() State {
	return State{
		Mode:      Mode{Kind: ModeSelecting},
		Draft:     []geom.Point{},
		Shapes:    []shape.Shape{},
		Selection: []string{},
		Reference: geom.Origin(),
	}
}

// normalize replaces nil collections so restored snapshots look the same as
// freshly built ones.
func (s *State) normalize() {
	if s.Draft == nil {
		s.Draft = []geom.Point{}
	}
	if s.Shapes == nil {
		s.Shapes = []shape.Shape{}
	}
	if s.Selection == nil {
		s.Selection = []string{}
	}
	for i := range s.Shapes {
		if s.Shapes[i].Points == nil {
			s.Shapes[i].Points = []geom.Point{}
		}
	}
}

func (s *State) isSelected(id string) bool {
	return slices.Contains(s.Selection, id)
}
