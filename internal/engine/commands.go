package engine

import (
	"encoding/json"
	"math"

	"github.com/vectorpad/vectorpad/internal/geom"
	"github.com/vectorpad/vectorpad/internal/shape"
)

// Colours and sizes used for the canvas.
const (
	ColorBackground = "#ffffff"
	ColorShapeFill  = "#dcdcdc"
	ColorShapeLine  = "#000000"
	ColorSelected   = "#1e90ff"
	ColorDraftLink  = "#b4b4b4"
	ColorDraftDot   = "#ff0000"
	ColorReference  = "#2e8b57"

	ShapeStrokeWidth = 1.0
	DraftDotRadius   = 5.0
	ReferenceSize    = 6.0
)

// DrawCommand represents a single drawing operation for a renderer to execute.
// Renderers receive a list of these and replay them on their own surface
// (Canvas2D in the browser, a raster context on the server).
type DrawCommand struct {
	Op          string        `json:"op"`                    // Operation: "path"
	ObjectID    string        `json:"objectId,omitempty"`    // For hit correlation
	Path        []PathCommand `json:"path,omitempty"`        // Path data for "path" ops
	Fill        string        `json:"fill,omitempty"`        // Fill color
	Stroke      string        `json:"stroke,omitempty"`      // Stroke color
	StrokeWidth float64       `json:"strokeWidth,omitempty"` // Stroke width
	Dash        []float64     `json:"dash,omitempty"`        // Stroke dash pattern
}

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["Z"], and
// ["A", cx, cy, r, startAngle, endAngle] for arcs.
type PathCommand []interface{}

// CompileDrawCommands generates a draw command buffer from a view.
// Commands are in painter's order: committed shapes in list order, the
// selection box, the draft, then the reference marker.
func CompileDrawCommands(v View) []DrawCommand {
	var commands []DrawCommand

	for _, s := range v.Shapes {
		if cmd, ok := compileShape(s, v.IsSelected(s.ID)); ok {
			commands = append(commands, cmd)
		}
	}

	if len(v.Selection) > 0 {
		r := v.SelectionBounds.Expand(shape.LineTolerance)
		commands = append(commands, DrawCommand{
			Op:          "path",
			Path:        polylinePath(r.Corners(), true),
			Stroke:      ColorSelected,
			StrokeWidth: ShapeStrokeWidth,
			Dash:        []float64{4, 4},
		})
	}

	commands = append(commands, compileDraft(v.Draft)...)
	commands = append(commands, compileReference(v.Reference))

	return commands
}

func compileShape(s shape.Shape, selected bool) (DrawCommand, bool) {
	cmd := DrawCommand{
		Op:          "path",
		ObjectID:    s.ID,
		Stroke:      ColorShapeLine,
		StrokeWidth: ShapeStrokeWidth,
	}
	if selected {
		cmd.Stroke = ColorSelected
		cmd.StrokeWidth = 2 * ShapeStrokeWidth
	}

	switch s.Type {
	case shape.TypeLine:
		if len(s.Points) != 2 {
			return DrawCommand{}, false
		}
		cmd.Path = polylinePath(s.Points, false)
	case shape.TypePolygon:
		if len(s.Points) < shape.MinPolygonPoints {
			return DrawCommand{}, false
		}
		cmd.Path = polylinePath(s.Points, true)
		cmd.Fill = ColorShapeFill
	case shape.TypeCircle:
		if len(s.Points) != 2 {
			return DrawCommand{}, false
		}
		cmd.Path = []PathCommand{arc(s.Points[0], s.Radius())}
		cmd.Fill = ColorShapeFill
	default:
		return DrawCommand{}, false
	}

	return cmd, true
}

// compileDraft draws linking lines between the collected points and a dot
// on each of them.
func compileDraft(draft []geom.Point) []DrawCommand {
	var commands []DrawCommand

	if len(draft) > 1 {
		commands = append(commands, DrawCommand{
			Op:          "path",
			Path:        polylinePath(draft, false),
			Stroke:      ColorDraftLink,
			StrokeWidth: ShapeStrokeWidth,
		})
	}

	for _, p := range draft {
		commands = append(commands, DrawCommand{
			Op:   "path",
			Path: []PathCommand{arc(p, DraftDotRadius)},
			Fill: ColorDraftDot,
		})
	}

	return commands
}

func compileReference(ref geom.Point) DrawCommand {
	d := ReferenceSize
	return DrawCommand{
		Op: "path",
		Path: []PathCommand{
			{"M", ref.X - d, ref.Y},
			{"L", ref.X + d, ref.Y},
			{"M", ref.X, ref.Y - d},
			{"L", ref.X, ref.Y + d},
		},
		Stroke:      ColorReference,
		StrokeWidth: ShapeStrokeWidth,
	}
}

func polylinePath(pts []geom.Point, closed bool) []PathCommand {
	path := make([]PathCommand, 0, len(pts)+1)
	for i, p := range pts {
		op := "L"
		if i == 0 {
			op = "M"
		}
		path = append(path, PathCommand{op, p.X, p.Y})
	}
	if closed {
		path = append(path, PathCommand{"Z"})
	}
	return path
}

func arc(center geom.Point, r float64) PathCommand {
	return PathCommand{"A", center.X, center.Y, r, 0.0, 2 * math.Pi}
}

// DrawCommands compiles the current view.
func (e *Engine) DrawCommands() []DrawCommand {
	return CompileDrawCommands(e.View())
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

// Render compiles the current view and returns draw commands as JSON.
func (e *Engine) Render() string {
	result, _ := DrawCommandsToJSON(e.DrawCommands())
	return result
}
