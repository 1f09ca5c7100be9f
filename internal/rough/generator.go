package rough

import (
	"math"
	"math/rand/v2"

	"github.com/inkboard/inkboard/internal/geom"
)

// Generator produces drawables for the primitive shapes.
type Generator interface {
	Line(x1, y1, x2, y2 float64, o Options) *Drawable
	Rectangle(x, y, width, height float64, o Options) *Drawable
	Polygon(points []geom.Point, o Options) *Drawable
	Circle(cx, cy, diameter float64, o Options) *Drawable
	Ellipse(cx, cy, width, height float64, o Options) *Drawable
}

const (
	maxRandomnessOffset = 2.0
	curveStepCount      = 9.0
	curveFitting        = 0.95
)

// Sketch is the default Generator. Output is a pure function of the
// arguments: the random stream is seeded from Options.Seed, so the same
// element keeps the same wobble across regenerations.
type Sketch struct{}

// NewGenerator returns the default sketch generator.
func NewGenerator() *Sketch {
	return &Sketch{}
}

var _ Generator = (*Sketch)(nil)

func (s *Sketch) Line(x1, y1, x2, y2 float64, o Options) *Drawable {
	g := newPass(o)
	return &Drawable{
		Shape:   "line",
		Options: o,
		Sets:    []OpSet{{Type: SetPath, Ops: g.doubleLine(x1, y1, x2, y2)}},
	}
}

func (s *Sketch) Rectangle(x, y, width, height float64, o Options) *Drawable {
	points := []geom.Point{
		{X: x, Y: y},
		{X: x + width, Y: y},
		{X: x + width, Y: y + height},
		{X: x, Y: y + height},
	}
	d := s.Polygon(points, o)
	d.Shape = "rectangle"
	return d
}

func (s *Sketch) Polygon(points []geom.Point, o Options) *Drawable {
	g := newPass(o)
	d := &Drawable{Shape: "polygon", Options: o}
	if len(points) < 2 {
		return d
	}

	outline := g.closedPolyline(points)
	if fill := g.fill(points, o); fill != nil {
		d.Sets = append(d.Sets, *fill)
	}
	d.Sets = append(d.Sets, OpSet{Type: SetPath, Ops: outline})
	return d
}

func (s *Sketch) Circle(cx, cy, diameter float64, o Options) *Drawable {
	d := s.Ellipse(cx, cy, diameter, diameter, o)
	d.Shape = "circle"
	return d
}

func (s *Sketch) Ellipse(cx, cy, width, height float64, o Options) *Drawable {
	g := newPass(o)
	d := &Drawable{Shape: "ellipse", Options: o}

	rx, ry := math.Abs(width/2), math.Abs(height/2)
	if rx == 0 && ry == 0 {
		return d
	}

	psq := math.Sqrt(math.Pi * 2 * math.Sqrt((rx*rx+ry*ry)/2))
	steps := math.Ceil(max(curveStepCount, (curveStepCount/math.Sqrt(200))*psq))
	increment := 2 * math.Pi / steps

	fitRandomness := 1 - curveFitting
	rx += g.offset(-rx*fitRandomness, rx*fitRandomness)
	ry += g.offset(-ry*fitRandomness, ry*fitRandomness)

	first := g.ellipsePoints(cx, cy, rx, ry, increment, 1)
	second := g.ellipsePoints(cx, cy, rx, ry, increment, 1.5)

	if fill := g.fill(first, o); fill != nil {
		d.Sets = append(d.Sets, *fill)
	}
	ops := g.closedCurve(first)
	if o.Roughness > 0 {
		ops = append(ops, g.closedCurve(second)...)
	}
	d.Sets = append(d.Sets, OpSet{Type: SetPath, Ops: ops})
	return d
}

// pass carries the seeded random stream for one generation.
type pass struct {
	rnd *rand.Rand
	o   Options
}

func newPass(o Options) *pass {
	return &pass{
		rnd: rand.New(rand.NewPCG(o.Seed, o.Seed^0x9e3779b97f4a7c15)),
		o:   o,
	}
}

func (g *pass) offset(lo, hi float64) float64 {
	return g.o.Roughness * (g.rnd.Float64()*(hi-lo) + lo)
}

func (g *pass) offsetOpt(v float64) float64 {
	return g.offset(-v, v)
}

func (g *pass) doubleLine(x1, y1, x2, y2 float64) []Op {
	ops := g.line(x1, y1, x2, y2, true, false)
	if g.o.Roughness == 0 {
		return ops
	}
	return append(ops, g.line(x1, y1, x2, y2, true, true)...)
}

// line sketches one stroke of a straight segment as a cubic curve with a
// slight bow. overlay strokes wobble half as much.
func (g *pass) line(x1, y1, x2, y2 float64, move, overlay bool) []Op {
	lengthSq := (x1-x2)*(x1-x2) + (y1-y2)*(y1-y2)
	length := math.Sqrt(lengthSq)

	gain := 1.0
	switch {
	case length > 500:
		gain = 0.4
	case length >= 200:
		gain = -0.0016668*length + 1.233334
	}

	off := maxRandomnessOffset
	if off*off*100 > lengthSq {
		off = length / 10
	}
	half := off / 2
	diverge := 0.2 + g.rnd.Float64()*0.2

	midDispX := g.o.Bowing * maxRandomnessOffset * (y2 - y1) / 200
	midDispY := g.o.Bowing * maxRandomnessOffset * (x1 - x2) / 200
	midDispX = g.offsetOpt(midDispX) * gain
	midDispY = g.offsetOpt(midDispY) * gain

	jitter := func(v float64) float64 {
		if overlay {
			return g.offsetOpt(half) * gain
		}
		return g.offsetOpt(v) * gain
	}

	var ops []Op
	if move {
		ops = append(ops, Op{Op: OpMove, Data: []float64{x1 + jitter(off), y1 + jitter(off)}})
	}
	ops = append(ops, Op{Op: OpCurveTo, Data: []float64{
		midDispX + x1 + (x2-x1)*diverge + jitter(off),
		midDispY + y1 + (y2-y1)*diverge + jitter(off),
		midDispX + x1 + 2*(x2-x1)*diverge + jitter(off),
		midDispY + y1 + 2*(y2-y1)*diverge + jitter(off),
		x2 + jitter(off),
		y2 + jitter(off),
	}})
	return ops
}

func (g *pass) closedPolyline(points []geom.Point) []Op {
	var ops []Op
	for i := range points {
		a := points[i]
		b := points[(i+1)%len(points)]
		if len(points) == 2 && i == 1 {
			break
		}
		ops = append(ops, g.doubleLine(a.X, a.Y, b.X, b.Y)...)
	}
	return ops
}

func (g *pass) ellipsePoints(cx, cy, rx, ry, increment, overlap float64) []geom.Point {
	radOffset := g.offset(-0.5, 0.5) - math.Pi/2
	var points []geom.Point
	for angle := radOffset; angle < 2*math.Pi+radOffset-0.01; angle += increment {
		points = append(points, geom.Point{
			X: g.offset(-rx*0.01*overlap, rx*0.01*overlap) + cx + rx*math.Cos(angle),
			Y: g.offset(-ry*0.01*overlap, ry*0.01*overlap) + cy + ry*math.Sin(angle),
		})
	}
	return points
}

// closedCurve passes a Catmull-Rom spline through points and back to the
// first one, emitted as cubic bezier segments.
func (g *pass) closedCurve(points []geom.Point) []Op {
	n := len(points)
	if n < 3 {
		return nil
	}
	pts := make([]geom.Point, 0, n+3)
	pts = append(pts, points[n-1])
	pts = append(pts, points...)
	pts = append(pts, points[0], points[1])

	ops := []Op{{Op: OpMove, Data: []float64{pts[1].X, pts[1].Y}}}
	for i := 1; i+2 < len(pts); i++ {
		b1 := geom.Point{
			X: pts[i].X + (pts[i+1].X-pts[i-1].X)/6,
			Y: pts[i].Y + (pts[i+1].Y-pts[i-1].Y)/6,
		}
		b2 := geom.Point{
			X: pts[i+1].X - (pts[i+2].X-pts[i].X)/6,
			Y: pts[i+1].Y - (pts[i+2].Y-pts[i].Y)/6,
		}
		ops = append(ops, Op{Op: OpCurveTo, Data: []float64{b1.X, b1.Y, b2.X, b2.Y, pts[i+1].X, pts[i+1].Y}})
	}
	return ops
}
