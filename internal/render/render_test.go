package render

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"testing"

	"github.com/inkboard/inkboard/internal/element"
	"github.com/inkboard/inkboard/internal/geom"
)

// fakeCanvas records calls as short strings.
type fakeCanvas struct {
	calls []string
	scope []string
}

func (c *fakeCanvas) MoveTo(x, y float64) { c.add("M") }
func (c *fakeCanvas) LineTo(x, y float64) { c.add("L") }
func (c *fakeCanvas) CubicTo(_, _, _, _, _, _ float64) {
	c.add("C")
}
func (c *fakeCanvas) QuadraticTo(_, _, _, _ float64) { c.add("Q") }
func (c *fakeCanvas) ClosePath()                     { c.add("Z") }

func (c *fakeCanvas) Stroke(color string, width float64) error {
	c.add(fmt.Sprintf("stroke %s", color))
	return nil
}

func (c *fakeCanvas) Fill(color string) error {
	c.add(fmt.Sprintf("fill %s", color))
	return nil
}

func (c *fakeCanvas) FillText(s string, x, y float64, style TextStyle) error {
	c.add(fmt.Sprintf("text %q %g,%g %g", s, x, y, style.FontSize))
	return nil
}

func (c *fakeCanvas) DrawImage(img image.Image, r geom.Rect) error {
	c.add(fmt.Sprintf("image %g,%g %gx%g", r.X, r.Y, r.Width, r.Height))
	return nil
}

func (c *fakeCanvas) BeginElement(e *element.Element) { c.scope = append(c.scope, e.ID) }

func (c *fakeCanvas) add(s string) { c.calls = append(c.calls, s) }

func (c *fakeCanvas) count(prefix string) int {
	n := 0
	for _, s := range c.calls {
		if strings.HasPrefix(s, prefix) {
			n++
		}
	}
	return n
}

func create(t *testing.T, k element.Kind, p element.Params) *element.Element {
	t.Helper()
	e, err := element.Create(k, p, element.DefaultToolkit())
	if err != nil {
		t.Fatalf("Create(%s) error = %v", k, err)
	}
	return e
}

func TestDrawShapeStrokes(t *testing.T) {
	e := create(t, element.KindRectangle, element.Params{
		Rect:    geom.Rect{X: 1, Y: 1, Width: 10, Height: 10},
		Color:   "#ff0000",
		Options: element.Options{"roughness": 0.0},
	})

	c := &fakeCanvas{}
	if err := Draw(e, c, nil); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if c.count("stroke #ff0000") == 0 {
		t.Errorf("calls = %v, want a stroke in #ff0000", c.calls)
	}
}

func TestDrawUnknownVariant(t *testing.T) {
	e := &element.Element{ID: "x", Kind: element.Kind("star")}
	err := Draw(e, &fakeCanvas{}, nil)
	if !errors.Is(err, element.ErrUnknownVariant) {
		t.Fatalf("Draw(star) error = %v, want ErrUnknownVariant", err)
	}
}

func TestDrawPencil(t *testing.T) {
	e := create(t, element.KindPencil, element.Params{
		Color:  "#00ff00",
		Points: []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 5}, {X: 20, Y: 0}},
	})

	c := &fakeCanvas{}
	if err := Draw(e, c, nil); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if c.count("fill #00ff00") != 1 {
		t.Errorf("calls = %v, want one fill in #00ff00", c.calls)
	}
	if c.count("Q") == 0 {
		t.Error("pencil outline drew no curves")
	}
}

func TestDrawText(t *testing.T) {
	e := create(t, element.KindText, element.Params{
		Rect:    geom.Rect{X: 5, Y: 7},
		Text:    "one\ntwo",
		Options: element.Options{"fontSize": 20.0, "lineHeight": 30.0},
	})

	c := &fakeCanvas{}
	if err := Draw(e, c, nil); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	want := []string{`text "one" 5,7 20`, `text "two" 5,37 20`}
	if len(c.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", c.calls, want)
	}
	for i := range want {
		if c.calls[i] != want[i] {
			t.Errorf("call %d = %s, want %s", i, c.calls[i], want[i])
		}
	}
}

func TestDrawImageResolves(t *testing.T) {
	e := create(t, element.KindImage, element.Params{
		Rect:  geom.Rect{X: 10, Y: 10, Width: -4, Height: 6},
		Image: []byte{1},
	})
	res := ResolverFunc(func(id string) (image.Image, error) {
		return image.NewRGBA(image.Rect(0, 0, 2, 2)), nil
	})

	c := &fakeCanvas{}
	if err := Draw(e, c, res); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if len(c.calls) != 1 || c.calls[0] != "image 6,10 4x6" {
		t.Errorf("calls = %v, want image into the normalized rect", c.calls)
	}
}

func TestFrameSkipsMissingImage(t *testing.T) {
	img := create(t, element.KindImage, element.Params{Rect: geom.Rect{Width: 4, Height: 4}, Image: []byte{1}})
	text := create(t, element.KindText, element.Params{Text: "after"})
	missing := ResolverFunc(func(id string) (image.Image, error) {
		return nil, ErrResourceNotFound
	})

	c := &fakeCanvas{}
	err := Frame([]*element.Element{img, text}, c, FrameOptions{Resolver: missing})
	if !errors.Is(err, ErrResourceNotFound) {
		t.Fatalf("Frame() error = %v, want ErrResourceNotFound", err)
	}
	if c.count("text") != 1 {
		t.Errorf("calls = %v, want the element after the failure drawn", c.calls)
	}
}

func TestFrameSkip(t *testing.T) {
	a := create(t, element.KindText, element.Params{Text: "a"})
	b := create(t, element.KindText, element.Params{Text: "b"})

	c := &fakeCanvas{}
	if err := Frame([]*element.Element{a, b}, c, FrameOptions{Skip: a.ID}); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	if len(c.scope) != 1 || c.scope[0] != b.ID {
		t.Errorf("scoped elements = %v, want only %s", c.scope, b.ID)
	}
	if c.count(`text "a"`) != 0 {
		t.Error("skipped element was drawn")
	}
}

func TestOutline(t *testing.T) {
	tests := []struct {
		name   string
		points []geom.Point
		empty  bool
	}{
		{"no points", nil, true},
		{"dot", []geom.Point{{X: 3, Y: 3}}, false},
		{"repeated", []geom.Point{{X: 3, Y: 3}, {X: 3, Y: 3}}, false},
		{"stroke", []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 10}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Outline(tt.points, DefaultStrokeOptions())
			if (len(out) == 0) != tt.empty {
				t.Fatalf("Outline() returned %d points, want empty=%v", len(out), tt.empty)
			}
			path := SmoothPath(out)
			if tt.empty {
				if path != nil {
					t.Errorf("SmoothPath(empty) = %v, want nil", path)
				}
				return
			}
			if path[0][0] != "M" || path[len(path)-1][0] != "Z" {
				t.Errorf("path = %v, want M ... Z", path)
			}
		})
	}
}

func TestOutlineStaysNearStroke(t *testing.T) {
	pts := []geom.Point{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 100, Y: 0}}
	o := DefaultStrokeOptions()
	b := geom.Bounds(Outline(pts, o))
	if b.Y < -o.Size || b.Y+b.Height > o.Size {
		t.Errorf("outline bounds %+v stray more than %g from the stroke", b, o.Size)
	}
	if b.X > 0 || b.X+b.Width < 100 {
		t.Errorf("outline bounds %+v do not cover the stroke", b)
	}
}

func TestStrokeOptionsFor(t *testing.T) {
	got := StrokeOptionsFor(element.Options{"strokeWidth": 3.0})
	if got.Size != 6 {
		t.Errorf("Size = %g, want 6", got.Size)
	}
	got = StrokeOptionsFor(element.Options{"strokeWidth": 3.0, "size": 10.0})
	if got.Size != 10 {
		t.Errorf("Size with explicit size = %g, want 10", got.Size)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b uint8
		a       uint8
		wantErr bool
	}{
		{"#ff0000", 255, 0, 0, 255, false},
		{"#0f0", 0, 255, 0, 255, false},
		{"Black", 0, 0, 0, 255, false},
		{"", 0, 0, 0, 255, false},
		{"transparent", 0, 0, 0, 0, false},
		{"nope", 0, 0, 0, 0, true},
	}
	for _, tt := range tests {
		c, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			continue
		}
		if c.R != tt.r || c.G != tt.g || c.B != tt.b || c.A != tt.a {
			t.Errorf("ParseColor(%q) = %v", tt.in, c)
		}
	}
}
