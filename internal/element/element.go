// Package element is the board's data model: one Element record shared by
// every variant, per-variant behavior in a dispatch table, and a patch
// reducer through which all mutation flows.
package element

import (
	"maps"
	"slices"

	"github.com/inkboard/inkboard/internal/geom"
	"github.com/inkboard/inkboard/internal/rough"
)

// Element is one drawable item on the board. Which variant fields are
// meaningful depends on Kind.
type Element struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Kind    Kind      `json:"type"`
	Rect    geom.Rect `json:"rect"`
	Color   string    `json:"color"`
	Options Options   `json:"options,omitempty"`

	// Flipped marks a line whose start is the bottom-left corner of Rect
	// and whose end is the top-right one.
	Flipped bool `json:"flipped,omitempty"`

	// Points is the pencil stroke in capture order.
	Points []geom.Point `json:"points,omitempty"`

	// Text is the content of a text element.
	Text string `json:"text,omitempty"`

	// Image is the opaque payload of an image element.
	Image []byte `json:"image,omitempty"`

	// Drawable caches the sketch of a shape variant. It is rebuilt by the
	// reducer and shared between clones.
	Drawable *rough.Drawable `json:"-"`
}

// Clone returns a copy that shares no mutable state with e.
func (e *Element) Clone() *Element {
	c := *e
	c.Options = maps.Clone(e.Options)
	c.Points = slices.Clone(e.Points)
	c.Image = slices.Clone(e.Image)
	return &c
}

func (e *Element) TopLeft() geom.Point     { return e.Rect.TopLeft() }
func (e *Element) TopRight() geom.Point    { return e.Rect.TopRight() }
func (e *Element) BottomLeft() geom.Point  { return e.Rect.BottomLeft() }
func (e *Element) BottomRight() geom.Point { return e.Rect.BottomRight() }
func (e *Element) Center() geom.Point      { return e.Rect.Center() }
func (e *Element) Size() geom.Size         { return e.Rect.Size() }

// Endpoints returns the start and end of a line.
func (e *Element) Endpoints() (start, end geom.Point) {
	r := e.Rect
	if e.Flipped {
		return r.BottomLeft(), r.TopRight()
	}
	return r.TopLeft(), r.BottomRight()
}

// Collection is an ordered element list. Order is paint order: later
// elements are drawn above, and win hit tests over, earlier ones.
type Collection []*Element

// Clone deep-copies every element so the result can be mutated without
// touching snapshots that share the originals.
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}
	out := make(Collection, len(c))
	for i, e := range c {
		out[i] = e.Clone()
	}
	return out
}

// Index returns the position of the element with id, or -1.
func (c Collection) Index(id string) int {
	return slices.IndexFunc(c, func(e *Element) bool { return e.ID == id })
}

// Get returns the element with id.
func (c Collection) Get(id string) (*Element, bool) {
	i := c.Index(id)
	if i < 0 {
		return nil, false
	}
	return c[i], true
}

// Replace returns a copy of c with the element sharing e's id swapped
// for e. The copy is shallow: untouched elements are shared.
func (c Collection) Replace(e *Element) Collection {
	out := slices.Clone(c)
	if i := out.Index(e.ID); i >= 0 {
		out[i] = e
	}
	return out
}

// Without returns a copy of c minus the element with id.
func (c Collection) Without(id string) Collection {
	return slices.DeleteFunc(slices.Clone(c), func(e *Element) bool { return e.ID == id })
}

// Count returns how many elements of kind k are in c.
func (c Collection) Count(k Kind) int {
	n := 0
	for _, e := range c {
		if e.Kind == k {
			n++
		}
	}
	return n
}
