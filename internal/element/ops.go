package element

import (
	"fmt"

	"github.com/inkboard/inkboard/internal/geom"
)

// Grab records where an element was picked up: the pointer offset from its
// top-left corner, and for a pencil the offset from every point.
type Grab struct {
	Offset geom.Point   `json:"offset"`
	Points []geom.Point `json:"points,omitempty"`
}

// Grab captures the press-time offsets used by Move.
func (e *Element) Grab(p geom.Point) Grab {
	g := Grab{Offset: p.Sub(e.TopLeft())}
	if e.Kind == KindPencil {
		g.Points = make([]geom.Point, len(e.Points))
		for i, pt := range e.Points {
			g.Points[i] = p.Sub(pt)
		}
	}
	return g
}

// MovePatch builds the patch placing e so that target minus the grab
// offset becomes its anchor.
func MovePatch(e *Element, target geom.Point, g Grab) (Patch, error) {
	if !finitePoint(target) {
		return Patch{}, fmt.Errorf("%w: move target %+v", ErrInvalidGeometry, target)
	}

	if e.Kind == KindPencil {
		if len(g.Points) != len(e.Points) {
			return Patch{}, fmt.Errorf("%w: grab holds %d offsets for %d points",
				ErrInvalidGeometry, len(g.Points), len(e.Points))
		}
		pts := make([]geom.Point, len(g.Points))
		for i, off := range g.Points {
			pts[i] = target.Sub(off)
		}
		return Patch{Points: pts}, nil
	}

	r := e.Rect.MoveTo(target.Sub(g.Offset))
	p := Patch{Rect: &r}
	if e.Kind == KindLine {
		flipped := e.Flipped
		p.Flipped = &flipped
	}
	return p, nil
}

// ResizePatch builds the patch dragging handle h to p.
func ResizePatch(e *Element, h Handle, p geom.Point) (Patch, error) {
	b, err := lookup(e.Kind)
	if err != nil {
		return Patch{}, err
	}
	if !finitePoint(p) {
		return Patch{}, fmt.Errorf("%w: resize point %+v", ErrInvalidGeometry, p)
	}
	return b.resize(e, h, p)
}

// AdjustPatch builds the patch normalizing e's geometry. Pencil gets an
// empty patch.
func AdjustPatch(e *Element) (Patch, error) {
	b, err := lookup(e.Kind)
	if err != nil {
		return Patch{}, err
	}
	return b.adjust(e), nil
}

// Move translates e in place.
func (e *Element) Move(target geom.Point, g Grab, kit Toolkit) error {
	p, err := MovePatch(e, target, g)
	if err != nil {
		return err
	}
	return e.Update(p, kit)
}

// Resize drags handle h of e to p, in place.
func (e *Element) Resize(h Handle, p geom.Point, kit Toolkit) error {
	patch, err := ResizePatch(e, h, p)
	if err != nil {
		return err
	}
	return e.Update(patch, kit)
}

// AdjustRect normalizes e in place so its box has non-negative size.
func (e *Element) AdjustRect(kit Toolkit) error {
	p, err := AdjustPatch(e)
	if err != nil {
		return err
	}
	return e.Update(p, kit)
}
