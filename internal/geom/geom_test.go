package geom

import (
	"math"
	"testing"
)

func TestNearPoint(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"same point", Point{10, 10}, true},
		{"inside tolerance", Point{14.9, 5.1}, true},
		{"on tolerance x", Point{15, 10}, false},
		{"far on y", Point{10, 20}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearPoint(tt.p, Point{10, 10}); got != tt.want {
				t.Errorf("NearPoint(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestOnSegment(t *testing.T) {
	a, b := Point{0, 0}, Point{10, 0}
	tests := []struct {
		name  string
		p     Point
		slack float64
		want  bool
	}{
		{"midpoint", Point{5, 0}, 1, true},
		{"endpoint", Point{10, 0}, 1, true},
		{"slightly off", Point{5, 0.5}, 1, true},
		{"far off", Point{5, 10}, 1, false},
		{"beyond end", Point{12, 0}, 1, false},
		{"wide slack", Point{5, 3}, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OnSegment(a, b, tt.p, tt.slack); got != tt.want {
				t.Errorf("OnSegment(%v, slack %v) = %v, want %v", tt.p, tt.slack, got, tt.want)
			}
		})
	}
}

func TestRectNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{"already normal", Rect{1, 2, 3, 4}, Rect{1, 2, 3, 4}},
		{"dragged up-left", Rect{10, 10, -5, -6}, Rect{5, 4, 5, 6}},
		{"dragged left", Rect{10, 10, -5, 6}, Rect{5, 10, 5, 6}},
		{"zero", Rect{3, 3, 0, 0}, Rect{3, 3, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
			if again := got.Normalize(); again != got {
				t.Errorf("Normalize() not idempotent: %+v then %+v", got, again)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	got := Bounds([]Point{{5, 5}, {1, 9}, {7, 2}})
	want := Rect{X: 1, Y: 2, Width: 6, Height: 7}
	if got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
	if got := Bounds(nil); got != (Rect{}) {
		t.Errorf("Bounds(nil) = %+v, want zero rect", got)
	}
}

func TestRectCorners(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	if got := r.TopRight(); got != (Point{40, 20}) {
		t.Errorf("TopRight() = %v", got)
	}
	if got := r.BottomLeft(); got != (Point{10, 60}) {
		t.Errorf("BottomLeft() = %v", got)
	}
	if got := r.Center(); got != (Point{25, 40}) {
		t.Errorf("Center() = %v", got)
	}
	if !r.Contains(Point{10, 20}) || !r.Contains(Point{40, 60}) {
		t.Error("Contains() should include edges")
	}
	if r.Contains(Point{41, 30}) {
		t.Error("Contains() should exclude points right of the box")
	}
}

func TestCenterIn(t *testing.T) {
	got := CenterIn(Size{Width: 100, Height: 50}, Rect{Width: 800, Height: 600})
	want := Rect{X: 350, Y: 275, Width: 100, Height: 50}
	if got != want {
		t.Errorf("CenterIn() = %+v, want %+v", got, want)
	}
}

func TestViewportRoundTrip(t *testing.T) {
	v := Viewport{Offset: Point{100, 50}, Zoom: 2}

	got := v.ClientToCanvas(Point{120, 70})
	if math.Abs(got.X-10) > 1e-9 || math.Abs(got.Y-10) > 1e-9 {
		t.Fatalf("ClientToCanvas() = %v, want (10, 10)", got)
	}
	back := v.CanvasToClient(got)
	if math.Abs(back.X-120) > 1e-9 || math.Abs(back.Y-70) > 1e-9 {
		t.Errorf("CanvasToClient() = %v, want (120, 70)", back)
	}

	// Zero zoom is treated as 1.
	if got := (Viewport{}).ClientToCanvas(Point{3, 4}); got != (Point{3, 4}) {
		t.Errorf("zero viewport ClientToCanvas() = %v", got)
	}
}

func TestRotateAround(t *testing.T) {
	m := RotateAround(90, Point{10, 10})
	got := m.Apply(Point{20, 10})
	if math.Abs(got.X-10) > 1e-9 || math.Abs(got.Y-20) > 1e-9 {
		t.Errorf("RotateAround(90) moved (20,10) to %v, want (10,20)", got)
	}
	inv := m.Invert().Apply(got)
	if math.Abs(inv.X-20) > 1e-9 || math.Abs(inv.Y-10) > 1e-9 {
		t.Errorf("Invert() round trip = %v", inv)
	}
}

func TestPathBounds(t *testing.T) {
	path := []PathCommand{
		{"M", 1.0, 2.0},
		{"Q", 10.0, -4.0, 6, 8},
		{"Z"},
	}
	got := PathBounds(path)
	want := Rect{X: 1, Y: -4, Width: 9, Height: 12}
	if got != want {
		t.Errorf("PathBounds() = %+v, want %+v", got, want)
	}
}
