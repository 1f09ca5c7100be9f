package geom

// Viewport places the canvas inside the client area: the canvas origin sits
// at Offset in client space and one canvas pixel spans Zoom client pixels.
// Pointer events arrive in client space and must be converted before they
// reach the board.
type Viewport struct {
	Offset Point   `json:"offset"`
	Zoom   float64 `json:"zoom"`
}

// Matrix returns the canvas-to-client transform.
func (v Viewport) Matrix() Matrix2D {
	zoom := v.Zoom
	if zoom == 0 {
		zoom = 1
	}
	return Translate(v.Offset.X, v.Offset.Y).Multiply(Scale(zoom, zoom))
}

// ClientToCanvas converts a client-space position into canvas coordinates.
func (v Viewport) ClientToCanvas(p Point) Point {
	return v.Matrix().Invert().Apply(p)
}

// CanvasToClient converts a canvas position into client space.
func (v Viewport) CanvasToClient(p Point) Point {
	return v.Matrix().Apply(p)
}
