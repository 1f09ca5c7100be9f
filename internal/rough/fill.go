package rough

import (
	"math"
	"slices"

	"github.com/inkboard/inkboard/internal/geom"
)

// fill returns the fill op set for a closed polygon, or nil when the
// options ask for no fill.
func (g *pass) fill(points []geom.Point, o Options) *OpSet {
	if o.Fill == "" || len(points) < 3 {
		return nil
	}

	switch o.FillStyle {
	case FillSolid:
		return &OpSet{Type: SetFillPath, Ops: g.solid(points)}
	case FillCrossHatch:
		ops := g.strokeLines(hachureLines(points, o.HachureAngle, o.hachureGap()))
		ops = append(ops, g.strokeLines(hachureLines(points, o.HachureAngle+90, o.hachureGap()))...)
		return &OpSet{Type: SetFillSketch, Ops: ops}
	case FillZigzag, FillZigzagLine:
		return &OpSet{Type: SetFillSketch, Ops: g.zigzag(hachureLines(points, o.HachureAngle, o.hachureGap()))}
	case FillDots:
		return &OpSet{Type: SetFillSketch, Ops: g.dots(hachureLines(points, o.HachureAngle, o.hachureGap()), o)}
	case FillDashed:
		return &OpSet{Type: SetFillSketch, Ops: g.dashed(hachureLines(points, o.HachureAngle, o.hachureGap()), o.hachureGap())}
	default:
		return &OpSet{Type: SetFillSketch, Ops: g.strokeLines(hachureLines(points, o.HachureAngle, o.hachureGap()))}
	}
}

func (g *pass) solid(points []geom.Point) []Op {
	ops := make([]Op, 0, len(points))
	for i, p := range points {
		op := OpLineTo
		if i == 0 {
			op = OpMove
		}
		ops = append(ops, Op{Op: op, Data: []float64{
			p.X + g.offsetOpt(maxRandomnessOffset/4),
			p.Y + g.offsetOpt(maxRandomnessOffset/4),
		}})
	}
	return ops
}

func (g *pass) strokeLines(lines [][2]geom.Point) []Op {
	var ops []Op
	for _, l := range lines {
		ops = append(ops, g.line(l[0].X, l[0].Y, l[1].X, l[1].Y, true, false)...)
	}
	return ops
}

func (g *pass) zigzag(lines [][2]geom.Point) []Op {
	if len(lines) == 0 {
		return nil
	}
	corners := make([]geom.Point, len(lines))
	for i, l := range lines {
		corners[i] = l[i%2]
	}
	var ops []Op
	for i := 0; i+1 < len(corners); i++ {
		a, b := corners[i], corners[i+1]
		ops = append(ops, g.line(a.X, a.Y, b.X, b.Y, true, false)...)
	}
	return ops
}

func (g *pass) dots(lines [][2]geom.Point, o Options) []Op {
	gap := o.hachureGap()
	r := max(o.fillWeight(), 0.5)
	var ops []Op
	for _, l := range lines {
		length := geom.Distance(l[0], l[1])
		count := int(math.Ceil(length / gap))
		for i := 0; i < count; i++ {
			t := (float64(i) + 0.5) / float64(count)
			c := geom.Point{
				X: l[0].X + (l[1].X-l[0].X)*t + g.offsetOpt(gap/4),
				Y: l[0].Y + (l[1].Y-l[0].Y)*t + g.offsetOpt(gap/4),
			}
			ops = append(ops, dot(c, r)...)
		}
	}
	return ops
}

// dot approximates a small circle with four cubic arcs.
func dot(c geom.Point, r float64) []Op {
	const k = 0.5522847498
	return []Op{
		{Op: OpMove, Data: []float64{c.X + r, c.Y}},
		{Op: OpCurveTo, Data: []float64{c.X + r, c.Y + r*k, c.X + r*k, c.Y + r, c.X, c.Y + r}},
		{Op: OpCurveTo, Data: []float64{c.X - r*k, c.Y + r, c.X - r, c.Y + r*k, c.X - r, c.Y}},
		{Op: OpCurveTo, Data: []float64{c.X - r, c.Y - r*k, c.X - r*k, c.Y - r, c.X, c.Y - r}},
		{Op: OpCurveTo, Data: []float64{c.X + r*k, c.Y - r, c.X + r, c.Y - r*k, c.X + r, c.Y}},
	}
}

func (g *pass) dashed(lines [][2]geom.Point, gap float64) []Op {
	dash := gap
	var ops []Op
	for _, l := range lines {
		length := geom.Distance(l[0], l[1])
		if length == 0 {
			continue
		}
		for start := 0.0; start < length; start += dash + gap {
			end := min(start+dash, length)
			a := lerp(l[0], l[1], start/length)
			b := lerp(l[0], l[1], end/length)
			ops = append(ops, g.line(a.X, a.Y, b.X, b.Y, true, false)...)
		}
	}
	return ops
}

func lerp(a, b geom.Point, t float64) geom.Point {
	return geom.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// hachureLines intersects the polygon with parallel lines at angle degrees,
// gap apart, and returns the inside segments.
func hachureLines(polygon []geom.Point, angle, gap float64) [][2]geom.Point {
	if len(polygon) < 3 || gap <= 0 {
		return nil
	}

	center := geom.Bounds(polygon).Center()
	rot := geom.RotateAround(-angle, center)
	back := rot.Invert()
	rotated := rot.ApplyAll(polygon)
	bounds := geom.Bounds(rotated)

	var lines [][2]geom.Point
	var xs []float64
	for y := bounds.Y + gap/2; y < bounds.Y+bounds.Height; y += gap {
		xs = xs[:0]
		for i := range rotated {
			a := rotated[i]
			b := rotated[(i+1)%len(rotated)]
			if (a.Y <= y && b.Y > y) || (b.Y <= y && a.Y > y) {
				xs = append(xs, a.X+(y-a.Y)*(b.X-a.X)/(b.Y-a.Y))
			}
		}
		slices.Sort(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			lines = append(lines, [2]geom.Point{
				back.Apply(geom.Point{X: xs[i], Y: y}),
				back.Apply(geom.Point{X: xs[i+1], Y: y}),
			})
		}
	}
	return lines
}
