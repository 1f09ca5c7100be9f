package raster

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/inkboard/inkboard/internal/element"
	"github.com/inkboard/inkboard/internal/geom"
	"github.com/inkboard/inkboard/internal/render"
)

func TestFrameDrawsPixels(t *testing.T) {
	kit := element.Toolkit{Measurer: DefaultFonts()}
	rect, err := element.Create(element.KindRectangle, element.Params{
		Rect:    geom.Rect{X: 10, Y: 10, Width: 30, Height: 30},
		Color:   "#ff0000",
		Options: element.Options{"fillStyle": "solid", "roughness": 0.0},
	}, kit)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	c := New(64, 64)
	defer c.Close()
	if err := render.Frame([]*element.Element{rect}, c, render.FrameOptions{}); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}

	r, g, b, _ := c.Image().At(25, 25).RGBA()
	if r>>8 < 200 || g>>8 > 60 || b>>8 > 60 {
		t.Errorf("pixel inside filled rect = %d,%d,%d, want red", r>>8, g>>8, b>>8)
	}
	r, g, b, _ = c.Image().At(2, 2).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("background pixel = %d,%d,%d, want white", r>>8, g>>8, b>>8)
	}
}

func TestDrawImageAndEncode(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			src.Set(x, y, color.RGBA{B: 255, A: 255})
		}
	}

	c := New(32, 32)
	defer c.Close()
	if err := c.DrawImage(src, geom.Rect{X: 8, Y: 8, Width: 16, Height: 16}); err != nil {
		t.Fatalf("DrawImage() error = %v", err)
	}

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("EncodePNG() did not write a PNG")
	}
}

func TestStrokeRejectsBadColor(t *testing.T) {
	c := New(8, 8)
	defer c.Close()
	c.MoveTo(0, 0)
	c.LineTo(4, 4)
	if err := c.Stroke("not-a-color", 1); err == nil {
		t.Error("Stroke() with bad color returned nil error")
	}
}

func TestMeasureText(t *testing.T) {
	f := NewFonts()
	short := f.MeasureText("ab", 20)
	long := f.MeasureText("abcd", 20)
	if short <= 0 || long <= short {
		t.Errorf("MeasureText widths = %g, %g, want positive and growing", short, long)
	}
	if big := f.MeasureText("ab", 40); big <= short {
		t.Errorf("MeasureText at 40 = %g, want wider than %g", big, short)
	}
}

func TestFaceCached(t *testing.T) {
	f := NewFonts()
	a, err := f.Face(render.TextStyle{FontSize: 12, FontWeight: "bold"})
	if err != nil {
		t.Fatalf("Face() error = %v", err)
	}
	b, _ := f.Face(render.TextStyle{FontSize: 12, FontWeight: "bold"})
	if a != b {
		t.Error("Face() did not reuse the cached face")
	}
}
