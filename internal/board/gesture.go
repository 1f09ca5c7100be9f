package board

import (
	"fmt"
	"slices"

	"github.com/inkboard/inkboard/internal/element"
	"github.com/inkboard/inkboard/internal/geom"
)

// A gesture is one undo step. Pressing commits a state: the new element for
// a drawing tool, an unchanged copy for the selection tool. Every move
// amends that state, and releasing finalizes it. A gesture that ends up
// changing nothing reverts its step.

// PointerDown starts a gesture at the client position p.
func (b *Board) PointerDown(p geom.Point) error {
	if b.action == ActionWriting {
		return nil
	}
	if b.action != ActionNone {
		b.cancel()
	}
	p = b.viewport.ClientToCanvas(p)
	elements := b.Elements()

	if b.tool == ToolSelection {
		hit, ok := element.ElementAtPosition(p, elements)
		if !ok {
			return nil
		}
		e := hit.Element
		b.history.Commit(slices.Clone(elements))
		b.selected = &selection{
			id:     e.ID,
			handle: hit.Handle,
			grab:   e.Grab(p),
			press:  p,
			before: e,
		}
		if hit.Handle == element.HandleInside {
			b.action = ActionMoving
		} else {
			b.action = ActionResizing
		}
		return nil
	}

	kind, ok := b.tool.Kind()
	if !ok {
		return b.reject("pointer down", fmt.Errorf("%w: %q", ErrUnknownTool, b.tool))
	}
	e, err := element.Create(kind, element.Params{
		Name:    element.GenerateName(elements, kind),
		Rect:    geom.Rect{X: p.X, Y: p.Y},
		Color:   b.color,
		Options: b.toolOptions[kind],
	}, b.kit)
	if err != nil {
		return b.reject("pointer down", err)
	}
	b.history.Commit(with(elements, e))
	b.selected = &selection{id: e.ID, press: p, created: true, before: e}
	if kind == element.KindText {
		b.action = ActionWriting
	} else {
		b.action = ActionDrawing
	}
	return nil
}

// PointerMove updates the hover cursor and drives the gesture in progress.
func (b *Board) PointerMove(p geom.Point) error {
	p = b.viewport.ClientToCanvas(p)
	if b.tool == ToolSelection {
		b.cursor = element.HandleNone.Cursor()
		if hit, ok := element.ElementAtPosition(p, b.Elements()); ok {
			b.cursor = hit.Handle.Cursor()
		}
	}

	s := b.selected
	if s == nil {
		return nil
	}
	e := b.Element(s.id)
	if e == nil {
		b.reset()
		return nil
	}

	var (
		patch element.Patch
		err   error
	)
	switch b.action {
	case ActionDrawing:
		if e.Kind == element.KindPencil {
			patch = element.Patch{Append: []geom.Point{p}}
		} else {
			r := geom.Rect{X: s.press.X, Y: s.press.Y, Width: p.X - s.press.X, Height: p.Y - s.press.Y}
			patch = element.Patch{Rect: &r}
		}
	case ActionMoving:
		patch, err = element.MovePatch(e, p, s.grab)
	case ActionResizing:
		if e.Kind == element.KindPencil {
			return nil
		}
		patch, err = element.ResizePatch(e, s.handle, p)
	default:
		return nil
	}
	if err != nil {
		return b.reject("pointer move", err)
	}
	return b.amend(e, patch)
}

// PointerUp ends the gesture. Releasing a text element where it was
// pressed opens it for writing instead.
func (b *Board) PointerUp(p geom.Point) error {
	p = b.viewport.ClientToCanvas(p)
	s := b.selected
	if s == nil {
		b.action = ActionNone
		return nil
	}
	if b.action == ActionWriting {
		return nil
	}
	if b.action == ActionMoving && !s.created && s.before.Kind == element.KindText && p == s.press {
		b.action = ActionWriting
		return nil
	}

	err := b.finalize()
	b.reset()
	return err
}

// Blur commits the text typed into the element being written. Empty text
// removes the element.
func (b *Board) Blur(text string) error {
	if b.action != ActionWriting || b.selected == nil {
		return nil
	}
	defer b.reset()

	s := b.selected
	e := b.Element(s.id)
	if e == nil {
		return nil
	}

	switch {
	case text == "" && s.created:
		b.history.Revert()
	case text == "":
		b.history.Amend(b.Elements().Without(e.ID))
	case text == e.Text && !s.created:
		b.history.Revert()
	default:
		next, err := element.ApplyPatch(e, element.Patch{Text: &text}, b.kit)
		if err != nil {
			return b.reject("commit text", err)
		}
		b.history.Amend(b.Elements().Replace(next))
	}
	return nil
}

// finalize normalizes the element the gesture worked on and drops the
// gesture's step when it left nothing worth keeping.
func (b *Board) finalize() error {
	s := b.selected
	e := b.Element(s.id)
	if e == nil {
		return nil
	}

	if b.action == ActionDrawing || b.action == ActionResizing {
		patch, err := element.AdjustPatch(e)
		if err != nil {
			return b.reject("pointer up", err)
		}
		if err := b.amend(e, patch); err != nil {
			return err
		}
		e = b.Element(s.id)
	}

	switch {
	case b.action == ActionDrawing && degenerate(e):
		b.history.Revert()
	case !s.created && unchanged(s.before, e):
		b.history.Revert()
	}
	return nil
}

// cancel ends a gesture that will not see its pointer release: drafts are
// finalized and a text being written keeps its current content.
func (b *Board) cancel() {
	switch b.action {
	case ActionNone:
	case ActionWriting:
		if e := b.Editing(); e != nil {
			_ = b.Blur(e.Text)
		}
	default:
		if b.selected != nil {
			_ = b.finalize()
		}
	}
	b.reset()
}

func (b *Board) reset() {
	b.action = ActionNone
	b.selected = nil
}

func (b *Board) amend(e *element.Element, p element.Patch) error {
	next, err := element.ApplyPatch(e, p, b.kit)
	if err != nil {
		return b.reject("update", err)
	}
	b.history.Amend(b.Elements().Replace(next))
	return nil
}

// degenerate reports a click without drag: a box element with no extent.
// Pencil dots and text are kept.
func degenerate(e *element.Element) bool {
	switch e.Kind {
	case element.KindPencil, element.KindText:
		return false
	}
	return e.Rect.IsDegenerate()
}

func unchanged(before, after *element.Element) bool {
	return before.Rect == after.Rect &&
		before.Flipped == after.Flipped &&
		slices.Equal(before.Points, after.Points)
}
