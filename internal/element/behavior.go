package element

import (
	"fmt"
	"hash/fnv"
	"math"

	"github.com/inkboard/inkboard/internal/geom"
	"github.com/inkboard/inkboard/internal/rough"
)

// behavior is the per-variant half of the element contract. Everything
// that does not differ between variants lives on Element itself.
type behavior struct {
	hover   func(e *Element, p geom.Point, cfg hitConfig) Handle
	adjust  func(e *Element) Patch
	resize  func(e *Element, h Handle, p geom.Point) (Patch, error)
	refresh func(e *Element, kit Toolkit)
}

var behaviors = map[Kind]behavior{
	KindLine:      {hover: hoverLine, adjust: adjustLine, resize: resizeLine, refresh: refreshShape},
	KindRectangle: {hover: hoverBox, adjust: adjustBox, resize: resizeBox, refresh: refreshShape},
	KindTriangle:  {hover: hoverBox, adjust: adjustBox, resize: resizeBox, refresh: refreshShape},
	KindCircle:    {hover: hoverBox, adjust: adjustBox, resize: resizeBox, refresh: refreshShape},
	KindEllipse:   {hover: hoverBox, adjust: adjustBox, resize: resizeBox, refresh: refreshShape},
	KindPencil:    {hover: hoverPencil, adjust: noAdjust, resize: noResize, refresh: refreshPencil},
	KindText:      {hover: hoverText, adjust: adjustBox, resize: noResize, refresh: refreshText},
	KindImage:     {hover: hoverBox, adjust: adjustBox, resize: resizeBox, refresh: noRefresh},
}

func lookup(k Kind) (behavior, error) {
	b, ok := behaviors[k]
	if !ok {
		return behavior{}, fmt.Errorf("%w: %q", ErrUnknownVariant, k)
	}
	return b, nil
}

// --- Hover ---

func hoverLine(e *Element, p geom.Point, cfg hitConfig) Handle {
	start, end := e.Endpoints()
	switch {
	case geom.NearPoint(p, start):
		return HandleStart
	case geom.NearPoint(p, end):
		return HandleEnd
	case geom.OnSegment(start, end, p, cfg.lineSlack):
		return HandleInside
	}
	return HandleNone
}

// hoverBox serves every variant hit-tested by its bounding box. Triangles,
// circles and ellipses are approximated by their box.
func hoverBox(e *Element, p geom.Point, _ hitConfig) Handle {
	r := e.Rect.Normalize()
	switch {
	case geom.NearPoint(p, r.TopLeft()):
		return HandleTL
	case geom.NearPoint(p, r.TopRight()):
		return HandleTR
	case geom.NearPoint(p, r.BottomLeft()):
		return HandleBL
	case geom.NearPoint(p, r.BottomRight()):
		return HandleBR
	case r.Contains(p):
		return HandleInside
	}
	return HandleNone
}

func hoverPencil(e *Element, p geom.Point, _ hitConfig) Handle {
	slack := e.Options.Float("strokeWidth", DefaultPencilSlack)
	for i := 0; i+1 < len(e.Points); i++ {
		if geom.OnSegment(e.Points[i], e.Points[i+1], p, slack) {
			return HandleInside
		}
	}
	return HandleNone
}

func hoverText(e *Element, p geom.Point, _ hitConfig) Handle {
	if e.Rect.Normalize().Contains(p) {
		return HandleInside
	}
	return HandleNone
}

// --- Normalization ---

func adjustBox(e *Element) Patch {
	r := e.Rect.Normalize()
	return Patch{Rect: &r}
}

// adjustLine orders the endpoints left to right (top to bottom for a
// vertical line) and stores them as a normalized box plus orientation.
func adjustLine(e *Element) Patch {
	start, end := e.Endpoints()
	if start.X > end.X || (start.X == end.X && start.Y > end.Y) {
		start, end = end, start
	}
	r := geom.RectFromPoints(start, end).Normalize()
	flipped := start.Y > end.Y
	return Patch{Rect: &r, Flipped: &flipped}
}

func noAdjust(*Element) Patch { return Patch{} }

// --- Resize ---

// resizeBox moves the edges on the dragged side of the box and leaves the
// opposite ones in place.
func resizeBox(e *Element, h Handle, p geom.Point) (Patch, error) {
	x1, y1, x2, y2 := e.Rect.Edges()
	switch h {
	case HandleTL, HandleStart:
		x1, y1 = p.X, p.Y
	case HandleTR:
		y1, x2 = p.Y, p.X
	case HandleBL:
		x1, y2 = p.X, p.Y
	case HandleBR, HandleEnd:
		x2, y2 = p.X, p.Y
	case HandleN:
		y1 = p.Y
	case HandleS:
		y2 = p.Y
	case HandleW:
		x1 = p.X
	case HandleE:
		x2 = p.X
	default:
		return Patch{}, fmt.Errorf("%w: cannot resize %s by %q", ErrInvalidGeometry, e.Kind, h)
	}
	r := geom.RectFromEdges(x1, y1, x2, y2)
	return Patch{Rect: &r}, nil
}

// resizeLine drags one endpoint and keeps the other fixed.
func resizeLine(e *Element, h Handle, p geom.Point) (Patch, error) {
	start, end := e.Endpoints()
	switch h {
	case HandleStart, HandleTL:
		start = p
	case HandleEnd, HandleBR:
		end = p
	default:
		return Patch{}, fmt.Errorf("%w: cannot resize line by %q", ErrInvalidGeometry, h)
	}
	r := geom.RectFromPoints(start, end)
	return Patch{Rect: &r}, nil
}

func noResize(e *Element, h Handle, _ geom.Point) (Patch, error) {
	return Patch{}, fmt.Errorf("%w: %s does not resize", ErrInvalidGeometry, e.Kind)
}

// --- Derived state ---

func refreshShape(e *Element, kit Toolkit) {
	o := rough.Resolve(e.Color, e.Options)
	if _, ok := e.Options["seed"]; !ok {
		o.Seed = seedFor(e.ID)
	}

	g := kit.generator()
	r := e.Rect
	switch e.Kind {
	case KindLine:
		o.Fill = ""
		start, end := e.Endpoints()
		e.Drawable = g.Line(start.X, start.Y, end.X, end.Y, o)
	case KindRectangle:
		e.Drawable = g.Rectangle(r.X, r.Y, r.Width, r.Height, o)
	case KindTriangle:
		e.Drawable = g.Polygon([]geom.Point{
			{X: r.X + r.Width/2, Y: r.Y},
			{X: r.X + r.Width, Y: r.Y + r.Height},
			{X: r.X, Y: r.Y + r.Height},
		}, o)
	case KindCircle:
		n := r.Normalize()
		d := math.Min(n.Width, n.Height)
		e.Drawable = g.Circle(n.X+d/2, n.Y+d/2, d, o)
	case KindEllipse:
		n := r.Normalize()
		c := n.Center()
		e.Drawable = g.Ellipse(c.X, c.Y, n.Width, n.Height, o)
	}
}

func refreshPencil(e *Element, _ Toolkit) {
	e.Rect = geom.Bounds(e.Points)
}

func refreshText(e *Element, kit Toolkit) {
	size := TextExtent(e.Text, e.Options, kit.measurer())
	e.Rect.Width, e.Rect.Height = size.Width, size.Height
}

func noRefresh(*Element, Toolkit) {}

// seedFor derives a stable sketch seed from an element id.
func seedFor(id string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return h.Sum64()
}
