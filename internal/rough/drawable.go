// Package rough generates hand-drawn looking outlines for geometric
// primitives. A Generator turns a primitive into a Drawable: a list of op
// sets that any Pen (raster, PDF, browser canvas) can replay.
package rough

// OpType names a single path instruction inside an OpSet.
type OpType string

const (
	OpMove    OpType = "move"
	OpLineTo  OpType = "lineTo"
	OpCurveTo OpType = "bcurveTo"
)

// Op is one path instruction. Data holds x,y for move and lineTo and the
// two control points plus the end point for bcurveTo.
type Op struct {
	Op   OpType    `json:"op"`
	Data []float64 `json:"data"`
}

// SetType says how an OpSet is painted.
type SetType string

const (
	// SetPath is stroked with the stroke color and width.
	SetPath SetType = "path"
	// SetFillPath is filled with the fill color.
	SetFillPath SetType = "fillPath"
	// SetFillSketch is stroked with the fill color and fill weight.
	SetFillSketch SetType = "fillSketch"
)

// OpSet is a path painted in one pass.
type OpSet struct {
	Type SetType `json:"type"`
	Ops  []Op    `json:"ops"`
}

// Drawable is the renderer-neutral description of a sketched primitive.
// Drawables are immutable once generated; elements replace them rather
// than edit them.
type Drawable struct {
	Shape   string  `json:"shape"`
	Options Options `json:"options"`
	Sets    []OpSet `json:"sets"`
}

// Pen is the drawing surface a Drawable is replayed onto.
type Pen interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	ClosePath()
	// Stroke paints and clears the current path.
	Stroke(color string, width float64) error
	// Fill paints and clears the current path.
	Fill(color string) error
}

// Trace replays every op set of d onto pen, in order.
func (d *Drawable) Trace(pen Pen) error {
	if d == nil {
		return nil
	}
	for _, set := range d.Sets {
		if len(set.Ops) == 0 {
			continue
		}
		for _, op := range set.Ops {
			switch op.Op {
			case OpMove:
				pen.MoveTo(op.Data[0], op.Data[1])
			case OpLineTo:
				pen.LineTo(op.Data[0], op.Data[1])
			case OpCurveTo:
				pen.CubicTo(op.Data[0], op.Data[1], op.Data[2], op.Data[3], op.Data[4], op.Data[5])
			}
		}

		var err error
		switch set.Type {
		case SetPath:
			err = pen.Stroke(d.Options.Stroke, d.Options.StrokeWidth)
		case SetFillPath:
			pen.ClosePath()
			err = pen.Fill(d.Options.Fill)
		case SetFillSketch:
			err = pen.Stroke(d.Options.Fill, d.Options.fillWeight())
		}
		if err != nil {
			return err
		}
	}
	return nil
}
