// Package render draws board elements onto a backend. Each element kind has
// a draw function; Frame runs them over a whole collection and keeps going
// when one of them fails.
package render

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/inkboard/inkboard/internal/element"
	"github.com/inkboard/inkboard/internal/geom"
	"github.com/inkboard/inkboard/internal/rough"
)

var (
	// ErrResourceNotFound means an image bitmap is not loaded yet. The
	// element is skipped for this frame and retried on the next one.
	ErrResourceNotFound = errors.New("render: resource not found")

	errNoDrawable = errors.New("render: shape has no drawable")
)

// TextStyle is the font state for FillText.
type TextStyle struct {
	Color      string  `json:"color"`
	FontSize   float64 `json:"fontSize"`
	FontWeight string  `json:"fontWeight,omitempty"`
	FontStyle  string  `json:"fontStyle,omitempty"`
	Align      string  `json:"align,omitempty"`
}

// Canvas is a drawing backend: a path pen for sketches and strokes, plus
// text and bitmap drawing.
type Canvas interface {
	rough.Pen
	// FillText draws one line of text with its top-left corner at x, y.
	FillText(s string, x, y float64, style TextStyle) error
	DrawImage(img image.Image, r geom.Rect) error
}

// Resolver looks up the bitmap for an image element by element id. It
// returns an error wrapping ErrResourceNotFound while the bitmap is not
// available.
type Resolver interface {
	Resolve(id string) (image.Image, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(id string) (image.Image, error)

func (f ResolverFunc) Resolve(id string) (image.Image, error) { return f(id) }

// ElementScope is implemented by canvases that want to know which element
// the following calls belong to.
type ElementScope interface {
	BeginElement(e *element.Element)
}

type drawFunc func(e *element.Element, c Canvas, res Resolver) error

var drawers = map[element.Kind]drawFunc{
	element.KindLine:      drawShape,
	element.KindRectangle: drawShape,
	element.KindTriangle:  drawShape,
	element.KindCircle:    drawShape,
	element.KindEllipse:   drawShape,
	element.KindPencil:    drawPencil,
	element.KindText:      drawText,
	element.KindImage:     drawImage,
}

// Draw renders a single element.
func Draw(e *element.Element, c Canvas, res Resolver) error {
	fn, ok := drawers[e.Kind]
	if !ok {
		return fmt.Errorf("%w: %q", element.ErrUnknownVariant, e.Kind)
	}
	return fn(e, c, res)
}

func drawShape(e *element.Element, c Canvas, _ Resolver) error {
	if e.Drawable == nil {
		return errNoDrawable
	}
	return e.Drawable.Trace(c)
}

func drawPencil(e *element.Element, c Canvas, _ Resolver) error {
	outline := Outline(e.Points, StrokeOptionsFor(e.Options))
	path := SmoothPath(outline)
	if len(path) == 0 {
		return nil
	}
	TracePath(path, c)
	return c.Fill(e.Color)
}

func drawText(e *element.Element, c Canvas, _ Resolver) error {
	style := TextStyle{
		Color:      e.Color,
		FontSize:   e.Options.Float("fontSize", element.DefaultFontSize),
		FontWeight: e.Options.String("fontWeight", "normal"),
		FontStyle:  e.Options.String("fontStyle", "normal"),
		Align:      e.Options.String("align", "start"),
	}
	lineHeight := e.Options.Float("lineHeight", element.DefaultLineHeight)

	for i, line := range strings.Split(e.Text, "\n") {
		if err := c.FillText(line, e.Rect.X, e.Rect.Y+lineHeight*float64(i), style); err != nil {
			return err
		}
	}
	return nil
}

func drawImage(e *element.Element, c Canvas, res Resolver) error {
	if res == nil {
		return fmt.Errorf("image %s: %w", e.ID, ErrResourceNotFound)
	}
	img, err := res.Resolve(e.ID)
	if err != nil {
		return fmt.Errorf("image %s: %w", e.ID, err)
	}
	return c.DrawImage(img, e.Rect.Normalize())
}

// FrameOptions control a Frame pass.
type FrameOptions struct {
	// Skip is the id of an element not to draw, typically the text element
	// being edited in an overlay.
	Skip     string
	Resolver Resolver
}

// Frame draws elements in order. A failing element is logged and skipped;
// the joined errors are returned after every element had its turn.
func Frame(elements []*element.Element, c Canvas, opts FrameOptions) error {
	var errs []error
	for _, e := range elements {
		if opts.Skip != "" && e.ID == opts.Skip {
			continue
		}
		if s, ok := c.(ElementScope); ok {
			s.BeginElement(e)
		}
		if err := Draw(e, c, opts.Resolver); err != nil {
			Logger().Warn("draw element", "id", e.ID, "type", e.Kind, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
