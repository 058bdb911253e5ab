// Package render rasterizes engine draw commands with gg so the server can
// hand out PNG previews of a session's canvas.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/gogpu/gg"

	"github.com/vectorpad/vectorpad/internal/engine"
)

var ErrBadCommand = errors.New("malformed draw command")

// Options controls the raster surface.
type Options struct {
	Width      int
	Height     int
	Background string
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 600
	}
	if o.Background == "" {
		o.Background = engine.ColorBackground
	}
	return o
}

// PNG draws cmds onto a fresh surface and encodes it to w.
func PNG(w io.Writer, cmds []engine.DrawCommand, opts Options) error {
	opts = opts.withDefaults()

	dc := gg.NewContext(opts.Width, opts.Height)
	defer dc.Close()

	dc.ClearWithColor(gg.Hex(opts.Background))
	if err := Draw(dc, cmds); err != nil {
		return err
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Draw replays cmds on dc in order. Commands with no fill and no stroke are
// skipped.
func Draw(dc *gg.Context, cmds []engine.DrawCommand) error {
	for i, cmd := range cmds {
		if cmd.Op != "path" {
			return fmt.Errorf("command %d: op %q: %w", i, cmd.Op, ErrBadCommand)
		}
		if cmd.Fill == "" && cmd.Stroke == "" {
			continue
		}

		dc.ClearPath()
		if err := tracePath(dc, cmd.Path); err != nil {
			return fmt.Errorf("command %d (%s): %w", i, cmd.ObjectID, err)
		}

		if err := paint(dc, cmd); err != nil {
			return fmt.Errorf("command %d (%s): %w", i, cmd.ObjectID, err)
		}
	}
	return nil
}

func paint(dc *gg.Context, cmd engine.DrawCommand) error {
	if cmd.Fill != "" {
		dc.SetHexColor(cmd.Fill)
		if cmd.Stroke == "" {
			return dc.Fill()
		}
		if err := dc.FillPreserve(); err != nil {
			return err
		}
	}

	width := cmd.StrokeWidth
	if width <= 0 {
		width = engine.ShapeStrokeWidth
	}
	dc.SetHexColor(cmd.Stroke)
	dc.SetLineWidth(width)
	if len(cmd.Dash) > 0 {
		dc.SetDash(cmd.Dash...)
		defer dc.ClearDash()
	}
	return dc.Stroke()
}

func tracePath(dc *gg.Context, path []engine.PathCommand) error {
	for _, seg := range path {
		if len(seg) == 0 {
			return ErrBadCommand
		}
		op, _ := seg[0].(string)
		args, err := numbers(seg[1:])
		if err != nil {
			return err
		}

		switch {
		case op == "M" && len(args) == 2:
			dc.MoveTo(args[0], args[1])
		case op == "L" && len(args) == 2:
			dc.LineTo(args[0], args[1])
		case op == "Z" && len(args) == 0:
			dc.ClosePath()
		case op == "A" && len(args) == 5:
			if args[4]-args[3] >= 2*math.Pi {
				dc.DrawCircle(args[0], args[1], args[2])
			} else {
				dc.DrawArc(args[0], args[1], args[2], args[3], args[4])
			}
		default:
			return fmt.Errorf("segment %v: %w", seg, ErrBadCommand)
		}
	}
	return nil
}

// numbers converts segment arguments to float64. Commands decoded from JSON
// carry float64; ones built in-process may carry ints.
func numbers(vals []interface{}) ([]float64, error) {
	out := make([]float64, len(vals))
	for i, v := range vals {
		switch n := v.(type) {
		case float64:
			out[i] = n
		case float32:
			out[i] = float64(n)
		case int:
			out[i] = float64(n)
		default:
			return nil, fmt.Errorf("argument %v: %w", v, ErrBadCommand)
		}
	}
	return out, nil
}
