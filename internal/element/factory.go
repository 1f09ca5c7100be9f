package element

import (
	"fmt"

	"github.com/inkboard/inkboard/internal/geom"
	"github.com/inkboard/inkboard/internal/typeid"
)

// Params are the creation-time attributes of an element. An empty ID gets
// a generated one.
type Params struct {
	ID      string
	Name    string
	Rect    geom.Rect
	Color   string
	Options Options
	Points  []geom.Point
	Text    string
	Image   []byte
}

// Create builds an element of kind k. A pencil without points starts with
// the rect's top-left corner; an image needs a payload.
func Create(k Kind, p Params, kit Toolkit) (*Element, error) {
	b, err := lookup(k)
	if err != nil {
		return nil, err
	}
	if err := ValidateOptions(k, p.Options); err != nil {
		return nil, err
	}
	if !finiteRect(p.Rect) {
		return nil, fmt.Errorf("%w: rect %+v", ErrInvalidGeometry, p.Rect)
	}

	e := &Element{
		ID:      p.ID,
		Name:    p.Name,
		Kind:    k,
		Rect:    p.Rect,
		Color:   p.Color,
		Options: Options{}.Merge(p.Options),
	}
	if e.ID == "" {
		e.ID = NewID()
	}

	switch k {
	case KindPencil:
		e.Points = append([]geom.Point(nil), p.Points...)
		if len(e.Points) == 0 {
			e.Points = []geom.Point{p.Rect.TopLeft()}
		}
		for _, pt := range e.Points {
			if !finitePoint(pt) {
				return nil, fmt.Errorf("%w: point %+v", ErrInvalidGeometry, pt)
			}
		}
	case KindText:
		e.Text = p.Text
	case KindImage:
		if len(p.Image) == 0 {
			return nil, fmt.Errorf("%w: image element needs a payload", ErrMalformedUpdate)
		}
		e.Image = p.Image
	}

	b.refresh(e, kit)
	return e, nil
}

// NewID returns a fresh element id.
func NewID() string {
	return typeid.NewElementID()
}

// GenerateName labels a new element of kind k after the ones already on the
// board, e.g. "Rectangle 3" when two rectangles exist.
func GenerateName(elements Collection, k Kind) string {
	return fmt.Sprintf("%s %d", k.DisplayName(), elements.Count(k)+1)
}
