package element

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/inkboard/inkboard/internal/geom"
	"github.com/inkboard/inkboard/internal/rough"
)

const (
	// DefaultFontSize is used for text without a fontSize option.
	DefaultFontSize = 24.0
	// DefaultLineHeight is used for text without a lineHeight option.
	DefaultLineHeight = 16.0
)

// TextMeasurer reports the advance width of a single line of text.
type TextMeasurer interface {
	MeasureText(s string, fontSize float64) float64
}

// ApproxMeasurer estimates text width from the font size alone. It is the
// fallback when no font-backed measurer is available.
type ApproxMeasurer struct{}

func (ApproxMeasurer) MeasureText(s string, fontSize float64) float64 {
	return float64(utf8.RuneCountInString(s)) * fontSize * 0.6
}

// Toolkit carries the collaborators the reducer needs to rebuild derived
// state. Zero fields fall back to the defaults.
type Toolkit struct {
	Generator rough.Generator
	Measurer  TextMeasurer
}

// DefaultToolkit returns a toolkit with the sketch generator and the
// approximate measurer.
func DefaultToolkit() Toolkit {
	return Toolkit{Generator: rough.NewGenerator(), Measurer: ApproxMeasurer{}}
}

func (k Toolkit) generator() rough.Generator {
	if k.Generator == nil {
		return rough.NewGenerator()
	}
	return k.Generator
}

func (k Toolkit) measurer() TextMeasurer {
	if k.Measurer == nil {
		return ApproxMeasurer{}
	}
	return k.Measurer
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Color   *string
	Options Options // merged key by key, nil values delete
	Rect    *geom.Rect
	Flipped *bool
	Text    *string
	Points  []geom.Point // replaces the pencil stroke
	Append  []geom.Point // extends the pencil stroke
	Image   []byte
}

// ApplyPatch returns a new element with p applied to e, derived state
// rebuilt. e itself is not modified. On error the returned element is nil.
func ApplyPatch(e *Element, p Patch, kit Toolkit) (*Element, error) {
	b, err := lookup(e.Kind)
	if err != nil {
		return nil, err
	}
	if err := checkPatch(e.Kind, p); err != nil {
		return nil, err
	}

	out := e.Clone()
	if p.Color != nil {
		out.Color = *p.Color
	}
	if p.Options != nil {
		out.Options = out.Options.Merge(p.Options)
	}
	if p.Rect != nil {
		out.Rect = *p.Rect
		if out.Kind == KindLine {
			out.Flipped = false
		}
	}
	if p.Flipped != nil {
		out.Flipped = *p.Flipped
	}
	if p.Text != nil {
		out.Text = *p.Text
	}
	if p.Points != nil {
		out.Points = append([]geom.Point(nil), p.Points...)
	}
	if len(p.Append) > 0 {
		out.Points = append(out.Points, p.Append...)
	}
	if p.Image != nil {
		out.Image = p.Image
	}

	b.refresh(out, kit)
	return out, nil
}

// Update applies p to e in place. On error e is left unchanged.
func (e *Element) Update(p Patch, kit Toolkit) error {
	out, err := ApplyPatch(e, p, kit)
	if err != nil {
		return err
	}
	*e = *out
	return nil
}

func checkPatch(k Kind, p Patch) error {
	malformed := func(field string) error {
		return fmt.Errorf("%w: %s does not apply to %s", ErrMalformedUpdate, field, k)
	}

	if p.Text != nil && k != KindText {
		return malformed("text")
	}
	if (p.Points != nil || p.Append != nil) && k != KindPencil {
		return malformed("points")
	}
	if p.Rect != nil && k == KindPencil {
		return malformed("rect")
	}
	if p.Flipped != nil && k != KindLine {
		return malformed("flipped")
	}
	if p.Image != nil && k != KindImage {
		return malformed("image")
	}
	if p.Options != nil {
		if err := ValidateOptions(k, p.Options); err != nil {
			return err
		}
	}

	if p.Rect != nil && !finiteRect(*p.Rect) {
		return fmt.Errorf("%w: rect %+v", ErrInvalidGeometry, *p.Rect)
	}
	for _, pts := range [][]geom.Point{p.Points, p.Append} {
		for _, pt := range pts {
			if !finitePoint(pt) {
				return fmt.Errorf("%w: point %+v", ErrInvalidGeometry, pt)
			}
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finitePoint(p geom.Point) bool {
	return finite(p.X) && finite(p.Y)
}

func finiteRect(r geom.Rect) bool {
	return finite(r.X) && finite(r.Y) && finite(r.Width) && finite(r.Height)
}

// TextExtent measures s as drawn with opts: the widest line by the line
// count times the line height.
func TextExtent(s string, opts Options, m TextMeasurer) geom.Size {
	fontSize := opts.Float("fontSize", DefaultFontSize)
	lineHeight := opts.Float("lineHeight", DefaultLineHeight)

	lines := strings.Split(s, "\n")
	var width float64
	for _, line := range lines {
		width = math.Max(width, m.MeasureText(line, fontSize))
	}
	height := 0.0
	if s != "" {
		height = float64(len(lines)) * lineHeight
	}
	return geom.Size{Width: width, Height: height}
}
