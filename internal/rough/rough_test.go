package rough

import (
	"reflect"
	"testing"

	"github.com/inkboard/inkboard/internal/geom"
)

func smooth() Options {
	o := DefaultOptions()
	o.Roughness = 0
	o.Bowing = 0
	return o
}

func TestResolve(t *testing.T) {
	o := Resolve("#ff0000", map[string]any{
		"strokeWidth": "4",
		"roughness":   0,
		"fillStyle":   "solid",
		"seed":        float64(42),
		"unknown":     true,
	})

	if o.Stroke != "#ff0000" || o.Fill != "#ff0000" {
		t.Errorf("stroke/fill = %q/%q, want both #ff0000", o.Stroke, o.Fill)
	}
	if o.StrokeWidth != 4 {
		t.Errorf("StrokeWidth = %v, want 4", o.StrokeWidth)
	}
	if o.Roughness != 0 {
		t.Errorf("Roughness = %v, want 0", o.Roughness)
	}
	if o.FillStyle != FillSolid {
		t.Errorf("FillStyle = %q, want solid", o.FillStyle)
	}
	if o.Seed != 42 {
		t.Errorf("Seed = %d, want 42", o.Seed)
	}
	if o.Bowing != 1 {
		t.Errorf("Bowing = %v, want default 1", o.Bowing)
	}
}

func TestResolveFillOverride(t *testing.T) {
	o := Resolve("#000000", map[string]any{"fill": "#00ff00"})
	if o.Fill != "#00ff00" {
		t.Errorf("Fill = %q, want option to win over color", o.Fill)
	}
}

func TestSmoothLineIsExact(t *testing.T) {
	d := NewGenerator().Line(1, 2, 30, 40, smooth())
	if len(d.Sets) != 1 || d.Sets[0].Type != SetPath {
		t.Fatalf("expected one path set, got %+v", d.Sets)
	}
	ops := d.Sets[0].Ops
	if len(ops) != 2 {
		t.Fatalf("expected move + curve, got %d ops", len(ops))
	}
	if ops[0].Op != OpMove || ops[0].Data[0] != 1 || ops[0].Data[1] != 2 {
		t.Errorf("move = %+v, want (1,2)", ops[0])
	}
	end := ops[1].Data
	if ops[1].Op != OpCurveTo || end[4] != 30 || end[5] != 40 {
		t.Errorf("curve = %+v, want end (30,40)", ops[1])
	}
}

func TestSeedDeterminism(t *testing.T) {
	o := DefaultOptions()
	o.Seed = 7
	g := NewGenerator()

	a := g.Ellipse(50, 50, 40, 20, o)
	b := g.Ellipse(50, 50, 40, 20, o)
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different ellipses")
	}

	o.Seed = 8
	c := g.Ellipse(50, 50, 40, 20, o)
	if reflect.DeepEqual(a, c) {
		t.Error("different seeds produced identical ellipses")
	}
}

func TestRectangleFills(t *testing.T) {
	g := NewGenerator()
	tests := []struct {
		style string
		want  SetType
	}{
		{FillSolid, SetFillPath},
		{FillHachure, SetFillSketch},
		{FillCrossHatch, SetFillSketch},
		{FillZigzag, SetFillSketch},
		{FillDots, SetFillSketch},
		{FillDashed, SetFillSketch},
		{"sunburst", SetFillSketch},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			o := smooth()
			o.Fill = "#123456"
			o.FillStyle = tt.style
			d := g.Rectangle(0, 0, 40, 40, o)
			if len(d.Sets) != 2 {
				t.Fatalf("expected fill + outline, got %d sets", len(d.Sets))
			}
			if d.Sets[0].Type != tt.want {
				t.Errorf("fill set type = %q, want %q", d.Sets[0].Type, tt.want)
			}
			if len(d.Sets[0].Ops) == 0 {
				t.Error("fill set has no ops")
			}
			if d.Sets[1].Type != SetPath {
				t.Errorf("outline set type = %q, want path", d.Sets[1].Type)
			}
		})
	}
}

func TestNoFillWithoutColor(t *testing.T) {
	o := smooth()
	o.Fill = ""
	d := NewGenerator().Polygon([]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}}, o)
	if len(d.Sets) != 1 {
		t.Fatalf("expected outline only, got %d sets", len(d.Sets))
	}
}

func TestHachureLines(t *testing.T) {
	square := []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	lines := hachureLines(square, 0, 2)
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	for _, l := range lines {
		if l[0].X != 0 || l[1].X != 10 {
			t.Errorf("line %v does not span the square", l)
		}
	}
}

type recordingPen struct {
	moves, lines, curves int
	strokes              []string
	fills                []string
}

func (p *recordingPen) MoveTo(x, y float64)                      { p.moves++ }
func (p *recordingPen) LineTo(x, y float64)                      { p.lines++ }
func (p *recordingPen) CubicTo(c1x, c1y, c2x, c2y, x, y float64) { p.curves++ }
func (p *recordingPen) QuadraticTo(cx, cy, x, y float64)         {}
func (p *recordingPen) ClosePath()                               {}
func (p *recordingPen) Stroke(color string, width float64) error {
	p.strokes = append(p.strokes, color)
	return nil
}
func (p *recordingPen) Fill(color string) error {
	p.fills = append(p.fills, color)
	return nil
}

func TestTrace(t *testing.T) {
	o := smooth()
	o.Stroke = "#111111"
	o.Fill = "#222222"
	o.FillStyle = FillSolid
	d := NewGenerator().Rectangle(0, 0, 10, 10, o)

	pen := &recordingPen{}
	if err := d.Trace(pen); err != nil {
		t.Fatalf("Trace() error = %v", err)
	}
	if !reflect.DeepEqual(pen.fills, []string{"#222222"}) {
		t.Errorf("fills = %v", pen.fills)
	}
	if !reflect.DeepEqual(pen.strokes, []string{"#111111"}) {
		t.Errorf("strokes = %v", pen.strokes)
	}
	if pen.curves != 4 {
		t.Errorf("outline curves = %d, want 4 edges", pen.curves)
	}

	var nilDrawable *Drawable
	if err := nilDrawable.Trace(pen); err != nil {
		t.Errorf("nil Trace() error = %v", err)
	}
}
