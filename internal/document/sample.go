package document

import (
	"fmt"

	"github.com/inkboard/inkboard/internal/element"
	"github.com/inkboard/inkboard/internal/geom"
)

// NewSample returns a small board with one element of every drawable kind
// except image.
func NewSample(kit element.Toolkit) (*Scene, error) {
	specs := []struct {
		kind   element.Kind
		params element.Params
	}{
		{element.KindRectangle, element.Params{
			Rect:    geom.Rect{X: 60, Y: 60, Width: 180, Height: 120},
			Color:   "#1e88e5",
			Options: element.Options{"fillStyle": "hachure", "roughness": 1.0},
		}},
		{element.KindEllipse, element.Params{
			Rect:    geom.Rect{X: 300, Y: 60, Width: 200, Height: 120},
			Color:   "#e53935",
			Options: element.Options{"fillStyle": "cross-hatch"},
		}},
		{element.KindTriangle, element.Params{
			Rect:  geom.Rect{X: 560, Y: 60, Width: 160, Height: 140},
			Color: "#43a047",
		}},
		{element.KindCircle, element.Params{
			Rect:    geom.Rect{X: 80, Y: 260, Width: 140, Height: 140},
			Color:   "#fb8c00",
			Options: element.Options{"fillStyle": "solid"},
		}},
		{element.KindLine, element.Params{
			Rect:    geom.Rect{X: 300, Y: 260, Width: 200, Height: 120},
			Color:   "#000000",
			Options: element.Options{"roughness": 0.0, "strokeWidth": 2.0},
		}},
		{element.KindPencil, element.Params{
			Color: "#8e24aa",
			Points: []geom.Point{
				{X: 560, Y: 320}, {X: 590, Y: 290}, {X: 620, Y: 330},
				{X: 650, Y: 290}, {X: 680, Y: 330}, {X: 710, Y: 300},
			},
			Options: element.Options{"strokeWidth": 4.0},
		}},
		{element.KindText, element.Params{
			Rect:    geom.Rect{X: 80, Y: 460},
			Color:   "#000000",
			Text:    "inkboard\nsketch anything",
			Options: element.Options{"fontSize": 24.0, "lineHeight": 30.0},
		}},
	}

	elements := make(element.Collection, 0, len(specs))
	for _, s := range specs {
		s.params.Name = element.GenerateName(elements, s.kind)
		e, err := element.Create(s.kind, s.params, kit)
		if err != nil {
			return nil, fmt.Errorf("document: sample %s: %w", s.kind, err)
		}
		elements = append(elements, e)
	}
	return New(geom.Size{Width: 800, Height: 600}, elements), nil
}
