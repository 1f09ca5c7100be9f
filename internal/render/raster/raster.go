// Package raster is the bitmap render backend, drawing onto a gg context.
package raster

import (
	"image"
	"io"

	"github.com/gogpu/gg"

	"github.com/inkboard/inkboard/internal/geom"
	"github.com/inkboard/inkboard/internal/render"
)

// Canvas implements render.Canvas on a gg.Context.
type Canvas struct {
	dc    *gg.Context
	fonts *Fonts
}

// New returns a white canvas of the given pixel size.
func New(width, height int) *Canvas {
	dc := gg.NewContext(width, height)
	dc.ClearWithColor(gg.White)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	return &Canvas{dc: dc, fonts: DefaultFonts()}
}

// SetViewport applies pan and zoom to everything drawn afterwards.
func (c *Canvas) SetViewport(v geom.Viewport) {
	m := v.Matrix()
	c.dc.Identity()
	c.dc.Translate(m[4], m[5])
	c.dc.Scale(m[0], m[3])
}

func (c *Canvas) MoveTo(x, y float64) { c.dc.MoveTo(x, y) }
func (c *Canvas) LineTo(x, y float64) { c.dc.LineTo(x, y) }
func (c *Canvas) ClosePath()          { c.dc.ClosePath() }

func (c *Canvas) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	c.dc.CubicTo(c1x, c1y, c2x, c2y, x, y)
}

func (c *Canvas) QuadraticTo(cx, cy, x, y float64) {
	c.dc.QuadraticTo(cx, cy, x, y)
}

func (c *Canvas) Stroke(color string, width float64) error {
	col, err := render.ParseColor(color)
	if err != nil {
		c.dc.ClearPath()
		return err
	}
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
	return c.dc.Stroke()
}

func (c *Canvas) Fill(color string) error {
	col, err := render.ParseColor(color)
	if err != nil {
		c.dc.ClearPath()
		return err
	}
	c.dc.SetColor(col)
	return c.dc.Fill()
}

// FillText draws s with its top at y. Align picks which end of the line
// sits at x.
func (c *Canvas) FillText(s string, x, y float64, style render.TextStyle) error {
	if s == "" {
		return nil
	}
	face, err := c.fonts.Face(style)
	if err != nil {
		return err
	}
	col, err := render.ParseColor(style.Color)
	if err != nil {
		return err
	}

	ax := 0.0
	switch style.Align {
	case "center":
		ax = 0.5
	case "end", "right":
		ax = 1
	}
	c.dc.SetFont(face)
	c.dc.SetColor(col)
	c.dc.DrawStringAnchored(s, x, y, ax, 1)
	return nil
}

func (c *Canvas) DrawImage(img image.Image, r geom.Rect) error {
	c.dc.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
		X:             r.X,
		Y:             r.Y,
		DstWidth:      r.Width,
		DstHeight:     r.Height,
		Interpolation: gg.InterpBilinear,
		Opacity:       1.0,
		BlendMode:     gg.BlendNormal,
	})
	return nil
}

func (c *Canvas) Image() image.Image { return c.dc.Image() }

func (c *Canvas) EncodePNG(w io.Writer) error { return c.dc.EncodePNG(w) }

func (c *Canvas) Close() error { return c.dc.Close() }
