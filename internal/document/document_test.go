package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/inkboard/inkboard/internal/element"
	"github.com/inkboard/inkboard/internal/geom"
)

func TestSampleRoundTrip(t *testing.T) {
	kit := element.DefaultToolkit()
	s, err := NewSample(kit)
	if err != nil {
		t.Fatalf("NewSample() error = %v", err)
	}

	data, err := s.JSON()
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	got, err := Parse(data, kit)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(got.Elements) != len(s.Elements) {
		t.Fatalf("Parse() returned %d elements, want %d", len(got.Elements), len(s.Elements))
	}
	for i, e := range got.Elements {
		want := s.Elements[i]
		if e.ID != want.ID || e.Kind != want.Kind || e.Rect != want.Rect {
			t.Errorf("element %d = %s %s %+v, want %s %s %+v", i, e.ID, e.Kind, e.Rect, want.ID, want.Kind, want.Rect)
		}
		if e.Kind.IsShape() && e.Drawable == nil {
			t.Errorf("element %d (%s) has no drawable after Parse()", i, e.Kind)
		}
	}
	if sz := got.Size(); sz != (geom.Size{Width: 800, Height: 600}) {
		t.Errorf("Size() = %+v", sz)
	}
}

func TestParseKeepsFlippedLine(t *testing.T) {
	data := `{"width":100,"height":100,"elements":[
		{"id":"el_1","type":"line","rect":{"x":0,"y":0,"width":10,"height":10},"flipped":true}
	]}`
	s, err := Parse([]byte(data), element.DefaultToolkit())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	start, end := s.Elements[0].Endpoints()
	if start != (geom.Point{X: 0, Y: 10}) || end != (geom.Point{X: 10, Y: 0}) {
		t.Errorf("endpoints = %v, %v, want (0,10) and (10,0)", start, end)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"not json", `{`, element.ErrMalformedUpdate},
		{"unknown type", `{"elements":[{"type":"hexagon"}]}`, element.ErrUnknownVariant},
		{"null element", `{"elements":[null]}`, element.ErrMalformedUpdate},
		{"bad option", `{"elements":[{"type":"line","options":{"fontSize":3}}]}`, element.ErrMalformedUpdate},
		{"image without payload", `{"elements":[{"type":"image"}]}`, element.ErrMalformedUpdate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), element.DefaultToolkit())
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEmptySceneEncodesArray(t *testing.T) {
	data, err := New(geom.Size{Width: 10, Height: 10}, nil).JSON()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"elements":[]`) {
		t.Errorf("JSON() = %s, want an empty elements array", data)
	}
}
