// Package record is a render backend that captures draw calls as a list of
// JSON draw commands. A browser client replays them on a Canvas2D context.
package record

import (
	"encoding/json"
	"image"

	"github.com/inkboard/inkboard/internal/element"
	"github.com/inkboard/inkboard/internal/geom"
	"github.com/inkboard/inkboard/internal/render"
)

// DrawCommand is a single drawing operation for the frontend to execute.
type DrawCommand struct {
	Op           string             `json:"op"`                     // "path", "text" or "image"
	ObjectID     string             `json:"objectId,omitempty"`     // element the command belongs to
	Path         []geom.PathCommand `json:"path,omitempty"`         // path data for "path" ops
	Fill         string             `json:"fill,omitempty"`         // fill color
	Stroke       string             `json:"stroke,omitempty"`       // stroke color
	StrokeWidth  float64            `json:"strokeWidth,omitempty"`  // stroke width
	Text         string             `json:"text,omitempty"`         // one line of text
	Font         *render.TextStyle  `json:"font,omitempty"`         // font state for "text" ops
	X            float64            `json:"x,omitempty"`            // text or image origin
	Y            float64            `json:"y,omitempty"`
	Width        float64            `json:"width,omitempty"`        // image destination size
	Height       float64            `json:"height,omitempty"`
	ImageAssetID string             `json:"imageAssetId,omitempty"` // asset id for image lookup
	ImageWidth   float64            `json:"imageWidth,omitempty"`   // image natural width
	ImageHeight  float64            `json:"imageHeight,omitempty"`  // image natural height
}

// Recorder implements render.Canvas by appending DrawCommands.
type Recorder struct {
	commands []DrawCommand
	path     []geom.PathCommand
	current  string
}

func New() *Recorder { return &Recorder{} }

// BeginElement tags the following commands with e's id.
func (r *Recorder) BeginElement(e *element.Element) {
	r.current = e.ID
	r.path = nil
}

func (r *Recorder) MoveTo(x, y float64) { r.path = append(r.path, geom.PathCommand{"M", x, y}) }
func (r *Recorder) LineTo(x, y float64) { r.path = append(r.path, geom.PathCommand{"L", x, y}) }
func (r *Recorder) ClosePath()          { r.path = append(r.path, geom.PathCommand{"Z"}) }

func (r *Recorder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	r.path = append(r.path, geom.PathCommand{"C", c1x, c1y, c2x, c2y, x, y})
}

func (r *Recorder) QuadraticTo(cx, cy, x, y float64) {
	r.path = append(r.path, geom.PathCommand{"Q", cx, cy, x, y})
}

func (r *Recorder) Stroke(color string, width float64) error {
	r.flush(DrawCommand{Stroke: color, StrokeWidth: width})
	return nil
}

func (r *Recorder) Fill(color string) error {
	r.flush(DrawCommand{Fill: color})
	return nil
}

func (r *Recorder) flush(cmd DrawCommand) {
	if len(r.path) == 0 {
		return
	}
	cmd.Op = "path"
	cmd.ObjectID = r.current
	cmd.Path = r.path
	r.commands = append(r.commands, cmd)
	r.path = nil
}

func (r *Recorder) FillText(s string, x, y float64, style render.TextStyle) error {
	r.commands = append(r.commands, DrawCommand{
		Op:       "text",
		ObjectID: r.current,
		Text:     s,
		Font:     &style,
		X:        x,
		Y:        y,
	})
	return nil
}

// DrawImage records where the image goes. The pixels stay on the server;
// the client fetches them by asset id, which is the element id.
func (r *Recorder) DrawImage(img image.Image, rect geom.Rect) error {
	b := img.Bounds()
	r.commands = append(r.commands, DrawCommand{
		Op:           "image",
		ObjectID:     r.current,
		X:            rect.X,
		Y:            rect.Y,
		Width:        rect.Width,
		Height:       rect.Height,
		ImageAssetID: r.current,
		ImageWidth:   float64(b.Dx()),
		ImageHeight:  float64(b.Dy()),
	})
	return nil
}

// Commands returns everything recorded so far.
func (r *Recorder) Commands() []DrawCommand { return r.commands }

// Reset drops all recorded commands.
func (r *Recorder) Reset() {
	r.commands = nil
	r.path = nil
	r.current = ""
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
