package element

import "github.com/inkboard/inkboard/internal/geom"

const (
	// DefaultLineSlack is the triangle-inequality slack for line hits.
	DefaultLineSlack = 1.0
	// DefaultPencilSlack applies to strokes without a strokeWidth option.
	DefaultPencilSlack = 5.0
)

type hitConfig struct {
	lineSlack float64
}

// HitOption tunes hit-testing.
type HitOption func(*hitConfig)

// WithLineSlack widens or narrows how far from a line still counts as on it.
func WithLineSlack(slack float64) HitOption {
	return func(c *hitConfig) { c.lineSlack = slack }
}

func newHitConfig(opts []HitOption) hitConfig {
	cfg := hitConfig{lineSlack: DefaultLineSlack}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// HandleAt returns the zone of e under p, or HandleNone.
func (e *Element) HandleAt(p geom.Point, opts ...HitOption) Handle {
	b, err := lookup(e.Kind)
	if err != nil {
		return HandleNone
	}
	return b.hover(e, p, newHitConfig(opts))
}

// IsHover reports whether p is over e.
func (e *Element) IsHover(p geom.Point, opts ...HitOption) bool {
	return e.HandleAt(p, opts...) != HandleNone
}

// Hit is the result of a hit test.
type Hit struct {
	Element *Element
	Handle  Handle
}

// ElementAtPosition returns the topmost element under p. Elements are
// tested from the end of the slice so the last drawn wins.
func ElementAtPosition(p geom.Point, elements []*Element, opts ...HitOption) (Hit, bool) {
	cfg := newHitConfig(opts)
	for i := len(elements) - 1; i >= 0; i-- {
		e := elements[i]
		b, err := lookup(e.Kind)
		if err != nil {
			continue
		}
		if h := b.hover(e, p, cfg); h != HandleNone {
			return Hit{Element: e, Handle: h}, true
		}
	}
	return Hit{}, false
}
