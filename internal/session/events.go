package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vectorpad/vectorpad/internal/engine"
	"github.com/vectorpad/vectorpad/internal/shape"
)

var (
	ErrUnknownEvent   = errors.New("unknown event")
	ErrInvalidPayload = errors.New("invalid event payload")
)

// Apply feeds one event to the engine. Events the engine ignores in its
// current mode are not errors; unknown types and undecodable payloads are,
// and leave the engine untouched.
func Apply(e *engine.Engine, ev Event) error {
	switch ev.Type {
	case TypePointerClick:
		var p PointerClickPayload
		if err := decode(ev, &p); err != nil {
			return err
		}
		e.PointerClicked(p.X, p.Y, engine.Modifiers{Shift: p.Shift, Ctrl: p.Ctrl})

	case TypeKeyCombo:
		var p KeyComboPayload
		if err := decode(ev, &p); err != nil {
			return err
		}
		e.KeyCombo(p.Ctrl, p.Shift, p.Key)

	case TypeDrawBegin:
		var p DrawBeginPayload
		if err := decode(ev, &p); err != nil {
			return err
		}
		t, err := shape.ParseType(p.Shape)
		if err != nil {
			return err
		}
		n := p.Points
		if n == 0 && t != shape.TypePolygon {
			n = 2
		}
		return e.BeginDraw(t, n)

	case TypeReferenceBegin:
		e.BeginChangeReference()

	case TypeTransformRequest:
		var p TransformRequestPayload
		if err := decode(ev, &p); err != nil {
			return err
		}
		e.RequestTransform(p.Kind)

	case TypeTransformCancel:
		e.CancelTransform()

	case TypeTransformApply:
		var p TransformApplyPayload
		if err := decode(ev, &p); err != nil {
			return err
		}
		return e.ApplyTransformation(p.Kind, p.TransformParams)

	case TypeClear:
		e.ClearAll()

	case TypeUndo:
		e.Undo()

	case TypeRedo:
		e.Redo()

	case TypeSampleLoad:
		e.LoadSample()

	default:
		slog.Warn("unknown event type", "type", ev.Type)
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}

	return nil
}

func decode(ev Event, v any) error {
	if len(ev.Payload) == 0 {
		return fmt.Errorf("%w: %s needs a payload", ErrInvalidPayload, ev.Type)
	}
	if err := json.Unmarshal(ev.Payload, v); err != nil {
		slog.Warn("invalid event payload", "type", ev.Type, "error", err)
		return fmt.Errorf("%w: %s: %w", ErrInvalidPayload, ev.Type, err)
	}
	return nil
}

// IsClientError reports whether err was caused by a bad event rather than a
// server fault.
func IsClientError(err error) bool {
	return errors.Is(err, ErrUnknownEvent) ||
		errors.Is(err, ErrInvalidPayload) ||
		errors.Is(err, shape.ErrInvalidShape) ||
		errors.Is(err, engine.ErrUnknownTransform)
}
