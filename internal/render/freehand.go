package render

import (
	"math"

	"github.com/inkboard/inkboard/internal/element"
	"github.com/inkboard/inkboard/internal/geom"
	"github.com/inkboard/inkboard/internal/rough"
)

// StrokeOptions shape the outline of a freehand stroke.
type StrokeOptions struct {
	Size       float64 // diameter at full pressure
	Thinning   float64 // how much speed thins the stroke, 0..1
	Streamline float64 // how much input points are pulled toward the previous one, 0..1
}

// DefaultStrokeOptions matches a medium marker.
func DefaultStrokeOptions() StrokeOptions {
	return StrokeOptions{Size: 16, Thinning: 0.5, Streamline: 0.5}
}

// StrokeOptionsFor reads stroke options from pencil element options. A
// strokeWidth sets the diameter to twice the width unless size is given.
func StrokeOptionsFor(o element.Options) StrokeOptions {
	s := DefaultStrokeOptions()
	if w := o.Float("strokeWidth", 0); w > 0 {
		s.Size = w * 2
	}
	s.Size = o.Float("size", s.Size)
	s.Thinning = o.Float("thinning", s.Thinning)
	s.Streamline = o.Float("streamline", s.Streamline)
	return s
}

const capSteps = 8

// Outline returns the closed polygon around a freehand stroke through
// points. Zero points give an empty outline and a single point gives a dot.
func Outline(points []geom.Point, o StrokeOptions) []geom.Point {
	if len(points) == 0 || o.Size <= 0 {
		return nil
	}

	pts := streamline(points, o.Streamline)
	if len(pts) == 1 {
		return circle(pts[0], o.Size/2)
	}

	n := len(pts)
	left := make([]geom.Point, n)
	right := make([]geom.Point, n)
	radii := make([]float64, n)
	pressure := 0.5
	for i, p := range pts {
		if i > 0 {
			// Fast segments thin the stroke, slow ones thicken it.
			speed := math.Min(1, geom.Distance(p, pts[i-1])/o.Size)
			pressure = math.Min(1, pressure+(1-speed-pressure)*(speed*0.275))
		}
		radii[i] = math.Max(0.5, o.Size*(0.5-o.Thinning*(0.5-pressure)))

		nx, ny := normalAt(pts, i)
		left[i] = geom.Point{X: p.X + nx*radii[i], Y: p.Y + ny*radii[i]}
		right[i] = geom.Point{X: p.X - nx*radii[i], Y: p.Y - ny*radii[i]}
	}

	outline := make([]geom.Point, 0, 2*n+2*capSteps)
	outline = append(outline, left...)
	outline = append(outline, arc(pts[n-1], radii[n-1], left[n-1])...)
	for i := n - 1; i >= 0; i-- {
		outline = append(outline, right[i])
	}
	outline = append(outline, arc(pts[0], radii[0], right[0])...)
	return outline
}

// streamline pulls each point toward the previous smoothed one and drops
// repeated points.
func streamline(points []geom.Point, amount float64) []geom.Point {
	t := 0.15 + (1-amount)*0.85
	out := []geom.Point{points[0]}
	for _, p := range points[1:] {
		prev := out[len(out)-1]
		next := geom.Point{X: prev.X + (p.X-prev.X)*t, Y: prev.Y + (p.Y-prev.Y)*t}
		if next != prev {
			out = append(out, next)
		}
	}
	if last := points[len(points)-1]; len(out) > 1 && out[len(out)-1] != last {
		out = append(out, last)
	}
	return out
}

// normalAt is the unit normal to the stroke direction at point i.
func normalAt(pts []geom.Point, i int) (float64, float64) {
	a := pts[max(i-1, 0)]
	b := pts[min(i+1, len(pts)-1)]
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return 0, 1
	}
	return -dy / l, dx / l
}

// arc walks half a circle around center by decreasing angle, starting at
// from. Both ends are excluded.
func arc(center geom.Point, r float64, from geom.Point) []geom.Point {
	start := math.Atan2(from.Y-center.Y, from.X-center.X)
	out := make([]geom.Point, 0, capSteps-1)
	for k := 1; k < capSteps; k++ {
		a := start - math.Pi*float64(k)/capSteps
		out = append(out, geom.Point{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)})
	}
	return out
}

func circle(c geom.Point, r float64) []geom.Point {
	out := make([]geom.Point, 0, 2*capSteps)
	for k := 0; k < 2*capSteps; k++ {
		a := 2 * math.Pi * float64(k) / (2 * capSteps)
		out = append(out, geom.Point{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)})
	}
	return out
}

// SmoothPath turns an outline polygon into a closed path of quadratic
// curves through the midpoints of its edges.
func SmoothPath(outline []geom.Point) []geom.PathCommand {
	if len(outline) == 0 {
		return nil
	}
	path := make([]geom.PathCommand, 0, len(outline)+2)
	path = append(path, geom.PathCommand{"M", outline[0].X, outline[0].Y})
	for i, p := range outline {
		next := outline[(i+1)%len(outline)]
		path = append(path, geom.PathCommand{"Q", p.X, p.Y, (p.X + next.X) / 2, (p.Y + next.Y) / 2})
	}
	return append(path, geom.PathCommand{"Z"})
}

// TracePath replays path commands onto pen without painting them.
func TracePath(path []geom.PathCommand, pen rough.Pen) {
	for _, cmd := range path {
		if len(cmd) == 0 {
			continue
		}
		op, _ := cmd[0].(string)
		arg := func(i int) float64 { return geom.ToFloat64(cmd[i]) }
		switch {
		case op == "M" && len(cmd) >= 3:
			pen.MoveTo(arg(1), arg(2))
		case op == "L" && len(cmd) >= 3:
			pen.LineTo(arg(1), arg(2))
		case op == "Q" && len(cmd) >= 5:
			pen.QuadraticTo(arg(1), arg(2), arg(3), arg(4))
		case op == "C" && len(cmd) >= 7:
			pen.CubicTo(arg(1), arg(2), arg(3), arg(4), arg(5), arg(6))
		case op == "Z":
			pen.ClosePath()
		}
	}
}
