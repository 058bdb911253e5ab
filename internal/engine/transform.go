package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/vectorpad/vectorpad/internal/geom"
	"github.com/vectorpad/vectorpad/internal/shape"
)

// TransformKind names an affine transformation the UI can request.
type TransformKind string

const (
	TransformRotate    TransformKind = "rotate"
	TransformScale     TransformKind = "scale"
	TransformTranslate TransformKind = "translate"
)

var ErrUnknownTransform = errors.New("unknown transform")

// TransformParams carries the user-entered values. Only the fields for the
// applied kind are read: Angle (degrees) for rotate, RatioX/RatioY for scale,
// DX/DY for translate.
type TransformParams struct {
	Angle  float64 `json:"angle,omitempty"`
	RatioX float64 `json:"ratioX,omitempty"`
	RatioY float64 `json:"ratioY,omitempty"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
}

// RotationMatrix returns a rotation by angleDegrees, counter-clockwise in a
// y-up coordinate system.
func RotationMatrix(angleDegrees float64) geom.Matrix {
	return geom.RotateDegrees(angleDegrees)
}

// ScaleMatrix returns an independent per-axis scale. A ratio of 0 collapses
// the axis, a negative ratio mirrors it.
func ScaleMatrix(ratioX, ratioY float64) geom.Matrix {
	return geom.Scale(ratioX, ratioY)
}

// TranslationMatrix returns a pure offset.
func TranslationMatrix(dx, dy float64) geom.Matrix {
	return geom.Translate(dx, dy)
}

func transformShape(s *shape.Shape, m geom.Matrix) {
	s.Points = m.ApplyAll(s.Points)
}

// DoRotate rotates every point of s by angleDegrees around ref.
func DoRotate(s *shape.Shape, angleDegrees float64, ref geom.Point) {
	transformShape(s, geom.AboutPivot(RotationMatrix(angleDegrees), ref))
}

// DoScale scales every point of s around ref.
func DoScale(s *shape.Shape, ratioX, ratioY float64, ref geom.Point) {
	transformShape(s, geom.AboutPivot(ScaleMatrix(ratioX, ratioY), ref))
}

// DoTranslate offsets every point of s. The reference point plays no part.
func DoTranslate(s *shape.Shape, dx, dy float64) {
	transformShape(s, TranslationMatrix(dx, dy))
}

// RequestTransform marks a transform of the given kind as pending. The UI
// collects its parameters and then calls ApplyTransformation.
func (e *Engine) RequestTransform(kind TransformKind) {
	e.pending = kind
}

// CancelTransform drops the pending transform marker.
func (e *Engine) CancelTransform() {
	e.pending = ""
}

// IsTransforming reports whether a transform is pending.
func (e *Engine) IsTransforming() bool {
	return e.pending != ""
}

// PendingTransform returns the pending transform kind, or "".
func (e *Engine) PendingTransform() TransformKind {
	return e.pending
}

// transformMatrix builds the matrix a transform of the given kind applies
// to every point, pivoting rotate and scale around ref.
func transformMatrix(kind TransformKind, params TransformParams, ref geom.Point) (geom.Matrix, error) {
	switch kind {
	case TransformRotate:
		return geom.AboutPivot(RotationMatrix(params.Angle), ref), nil
	case TransformScale:
		return geom.AboutPivot(ScaleMatrix(params.RatioX, params.RatioY), ref), nil
	case TransformTranslate:
		return TranslationMatrix(params.DX, params.DY), nil
	default:
		return geom.Matrix{}, fmt.Errorf("%w: %q", ErrUnknownTransform, kind)
	}
}

// ApplyTransformation applies the pending transform to every selected shape,
// using the shared reference point as pivot for rotate and scale.
//
// It is a no-op returning nil unless kind is the pending transform, the
// editor is selecting and the selection is non-empty. An unrecognised kind
// leaves the shapes untouched and returns ErrUnknownTransform. Otherwise the
// pending marker is cleared. A transform that moves nothing (rotate by 0,
// scale by 1, translate by 0) is not recorded in history.
func (e *Engine) ApplyTransformation(kind TransformKind, params TransformParams) error {
	if !e.IsTransforming() || kind != e.pending ||
		e.state.Mode.Kind != ModeSelecting || len(e.state.Selection) == 0 {
		return nil
	}
	defer e.CancelTransform()

	m, err := transformMatrix(kind, params, e.state.Reference)
	if err != nil {
		slog.Warn("unknown transform", "kind", kind)
		return err
	}
	if m.IsIdentity() {
		return nil
	}

	var apply func(s *shape.Shape)
	switch kind {
	case TransformRotate:
		apply = func(s *shape.Shape) { DoRotate(s, params.Angle, e.state.Reference) }
	case TransformScale:
		apply = func(s *shape.Shape) { DoScale(s, params.RatioX, params.RatioY, e.state.Reference) }
	case TransformTranslate:
		apply = func(s *shape.Shape) { DoTranslate(s, params.DX, params.DY) }
	}

	applied := 0
	for i := range e.state.Shapes {
		if e.state.isSelected(e.state.Shapes[i].ID) {
			apply(&e.state.Shapes[i])
			applied++
		}
	}
	if applied == 0 {
		return nil
	}

	e.commit()
	return nil
}
