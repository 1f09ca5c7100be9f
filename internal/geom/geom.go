// Package geom holds the value types and predicates the board works in:
// points, sizes, rectangles, segment proximity and 2D affine matrices.
package geom

import "math"

// NearDistance is the per-axis tolerance, in canvas pixels, used when testing
// whether a pointer is over a handle point.
const NearDistance = 5.0

// Point is a position in canvas coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is an axis-aligned box. Width and Height may be negative while a
// drag is in progress; Normalize restores the canonical form.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectFromEdges builds a rect whose first corner is (x1, y1) and whose
// opposite corner is (x2, y2). The result is not normalized.
func RectFromEdges(x1, y1, x2, y2 float64) Rect {
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// RectFromPoints returns the rect spanning a and b, a being the first corner.
func RectFromPoints(a, b Point) Rect {
	return RectFromEdges(a.X, a.Y, b.X, b.Y)
}

// Edges returns the first corner and the opposite corner of r.
func (r Rect) Edges() (x1, y1, x2, y2 float64) {
	return r.X, r.Y, r.X + r.Width, r.Y + r.Height
}

func (r Rect) TopLeft() Point     { return Point{r.X, r.Y} }
func (r Rect) TopRight() Point    { return Point{r.X + r.Width, r.Y} }
func (r Rect) BottomLeft() Point  { return Point{r.X, r.Y + r.Height} }
func (r Rect) BottomRight() Point { return Point{r.X + r.Width, r.Y + r.Height} }

// Center returns the center point of the rect.
func (r Rect) Center() Point {
	return Point{r.X + r.Width/2, r.Y + r.Height/2}
}

// Size returns the rect's dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Contains reports whether p lies inside r, edges included. r must be
// normalized.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// IsDegenerate reports whether the rect collapsed to a single point.
func (r Rect) IsDegenerate() bool {
	return r.Width == 0 && r.Height == 0
}

// MoveTo returns r moved so its top-left corner is at p.
func (r Rect) MoveTo(p Point) Rect {
	r.X, r.Y = p.X, p.Y
	return r
}

// Normalize returns r with non-negative width and height covering the same
// area.
func (r Rect) Normalize() Rect {
	x1, y1, x2, y2 := r.Edges()
	return Rect{
		X:      math.Min(x1, x2),
		Y:      math.Min(y1, y2),
		Width:  math.Abs(x2 - x1),
		Height: math.Abs(y2 - y1),
	}
}

// Bounds returns the tight bounding box of points. The zero Rect is returned
// for an empty slice.
func Bounds(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// CenterIn returns a rect of the given size centered inside container.
func CenterIn(size Size, container Rect) Rect {
	c := container.Center()
	return Rect{
		X:      c.X - size.Width/2,
		Y:      c.Y - size.Height/2,
		Width:  size.Width,
		Height: size.Height,
	}
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// NearPoint reports whether p is within NearDistance of target on both axes.
func NearPoint(p, target Point) bool {
	return math.Abs(p.X-target.X) < NearDistance && math.Abs(p.Y-target.Y) < NearDistance
}

// OnSegment reports whether p lies on the segment ab, allowing slack. The
// test compares |ab| with |ap|+|pb|; the two are equal exactly on the
// segment and diverge as p moves away from it.
func OnSegment(a, b, p Point, slack float64) bool {
	offset := Distance(a, b) - (Distance(a, p) + Distance(b, p))
	return math.Abs(offset) < slack
}
