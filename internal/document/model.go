// Package document is the JSON interchange format for a whole board.
package document

import (
	"encoding/json"
	"fmt"

	"github.com/inkboard/inkboard/internal/element"
	"github.com/inkboard/inkboard/internal/geom"
)

// Version is the scene format written by this package.
const Version = 1

// Scene is a board snapshot: its canvas size and elements in paint order.
type Scene struct {
	Version  int                `json:"version"`
	Width    float64            `json:"width"`
	Height   float64            `json:"height"`
	Elements element.Collection `json:"elements"`
}

// New wraps elements into a scene of the given canvas size.
func New(size geom.Size, elements element.Collection) *Scene {
	if elements == nil {
		elements = element.Collection{}
	}
	return &Scene{
		Version:  Version,
		Width:    size.Width,
		Height:   size.Height,
		Elements: elements,
	}
}

// Size returns the canvas size, 800x600 when the scene does not say.
func (s *Scene) Size() geom.Size {
	if s.Width <= 0 || s.Height <= 0 {
		return geom.Size{Width: 800, Height: 600}
	}
	return geom.Size{Width: s.Width, Height: s.Height}
}

// JSON serializes the scene.
func (s *Scene) JSON() ([]byte, error) {
	return json.Marshal(s)
}

// Parse decodes a scene and rebuilds every element through the factory, so
// sketches and text extents are recomputed and bad elements are rejected.
func Parse(data []byte, kit element.Toolkit) (*Scene, error) {
	var raw Scene
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("document: %w: %v", element.ErrMalformedUpdate, err)
	}

	out := New(raw.Size(), make(element.Collection, 0, len(raw.Elements)))
	for i, in := range raw.Elements {
		if in == nil {
			return nil, fmt.Errorf("document: element %d: %w: null", i, element.ErrMalformedUpdate)
		}
		e, err := rebuild(in, kit)
		if err != nil {
			return nil, fmt.Errorf("document: element %d: %w", i, err)
		}
		out.Elements = append(out.Elements, e)
	}
	return out, nil
}

func rebuild(in *element.Element, kit element.Toolkit) (*element.Element, error) {
	k, err := element.ParseKind(string(in.Kind))
	if err != nil {
		return nil, err
	}
	e, err := element.Create(k, element.Params{
		ID:      in.ID,
		Name:    in.Name,
		Rect:    in.Rect,
		Color:   in.Color,
		Options: in.Options,
		Points:  in.Points,
		Text:    in.Text,
		Image:   in.Image,
	}, kit)
	if err != nil {
		return nil, err
	}
	if in.Flipped && k == element.KindLine {
		flipped := true
		if err := e.Update(element.Patch{Flipped: &flipped}, kit); err != nil {
			return nil, err
		}
	}
	return e, nil
}
