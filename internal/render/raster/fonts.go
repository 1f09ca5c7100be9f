package raster

import (
	"fmt"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/inkboard/inkboard/internal/render"
)

type faceKey struct {
	bold, italic bool
	size         float64
}

// Fonts hands out Go font faces by weight, style and size. Sources are
// parsed once; faces are cached per size.
type Fonts struct {
	mu      sync.Mutex
	sources map[[2]bool]*text.FontSource
	faces   map[faceKey]text.Face
}

var fontData = map[[2]bool][]byte{
	{false, false}: goregular.TTF,
	{true, false}:  gobold.TTF,
	{false, true}:  goitalic.TTF,
	{true, true}:   gobolditalic.TTF,
}

var (
	defaultFonts     *Fonts
	defaultFontsOnce sync.Once
)

// DefaultFonts returns the process-wide font cache.
func DefaultFonts() *Fonts {
	defaultFontsOnce.Do(func() { defaultFonts = NewFonts() })
	return defaultFonts
}

func NewFonts() *Fonts {
	return &Fonts{
		sources: make(map[[2]bool]*text.FontSource),
		faces:   make(map[faceKey]text.Face),
	}
}

// Face returns the face for style at its font size.
func (f *Fonts) Face(style render.TextStyle) (text.Face, error) {
	key := faceKey{
		bold:   style.FontWeight == "bold",
		italic: style.FontStyle == "italic",
		size:   style.FontSize,
	}
	if key.size <= 0 {
		key.size = 24
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if face, ok := f.faces[key]; ok {
		return face, nil
	}
	variant := [2]bool{key.bold, key.italic}
	src, ok := f.sources[variant]
	if !ok {
		var err error
		src, err = text.NewFontSource(fontData[variant])
		if err != nil {
			return nil, fmt.Errorf("raster: load font: %w", err)
		}
		f.sources[variant] = src
	}
	face := src.Face(key.size)
	f.faces[key] = face
	return face, nil
}

// MeasureText implements element.TextMeasurer with the regular Go font.
func (f *Fonts) MeasureText(s string, fontSize float64) float64 {
	face, err := f.Face(render.TextStyle{FontSize: fontSize})
	if err != nil {
		render.Logger().Warn("measure text", "error", err)
		return 0
	}
	w, _ := text.Measure(s, face)
	return w
}
