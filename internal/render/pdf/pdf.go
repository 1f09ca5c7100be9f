// Package pdf is the vector render backend. One board becomes one page,
// one canvas pixel one PDF point.
package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/inkboard/inkboard/internal/geom"
	"github.com/inkboard/inkboard/internal/render"
)

// ascent is the share of the font size above the baseline.
const ascent = 0.8

// Canvas implements render.Canvas on a single gofpdf page.
type Canvas struct {
	pdf    *gofpdf.Fpdf
	images int
}

// New starts a document with one page of width by height points.
func New(width, height float64) *Canvas {
	p := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: width, Ht: height},
	})
	p.SetAutoPageBreak(false, 0)
	p.AddPage()
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")
	return &Canvas{pdf: p}
}

func (c *Canvas) MoveTo(x, y float64) { c.pdf.MoveTo(x, y) }
func (c *Canvas) LineTo(x, y float64) { c.pdf.LineTo(x, y) }
func (c *Canvas) ClosePath()          { c.pdf.ClosePath() }

func (c *Canvas) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	c.pdf.CurveBezierCubicTo(c1x, c1y, c2x, c2y, x, y)
}

func (c *Canvas) QuadraticTo(cx, cy, x, y float64) {
	c.pdf.CurveTo(cx, cy, x, y)
}

func (c *Canvas) Stroke(color string, width float64) error {
	col, err := render.ParseColor(color)
	if err != nil {
		col.A = 0
	}
	c.withAlpha(col.A, func() {
		c.pdf.SetDrawColor(int(col.R), int(col.G), int(col.B))
		c.pdf.SetLineWidth(width)
		c.pdf.DrawPath("D")
	})
	return err
}

func (c *Canvas) Fill(color string) error {
	col, err := render.ParseColor(color)
	if err != nil {
		col.A = 0
	}
	c.withAlpha(col.A, func() {
		c.pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
		c.pdf.DrawPath("F")
	})
	return err
}

// withAlpha runs paint with the given opacity. The path has already been
// written to the page, so a bad or transparent color still consumes it.
func (c *Canvas) withAlpha(a uint8, paint func()) {
	if a == 255 {
		paint()
		return
	}
	c.pdf.SetAlpha(float64(a)/255, "Normal")
	paint()
	c.pdf.SetAlpha(1, "Normal")
}

func (c *Canvas) FillText(s string, x, y float64, style render.TextStyle) error {
	if s == "" {
		return nil
	}
	col, err := render.ParseColor(style.Color)
	if err != nil {
		return err
	}
	size := style.FontSize
	if size <= 0 {
		size = 24
	}

	fontStyle := ""
	if style.FontWeight == "bold" {
		fontStyle += "B"
	}
	if style.FontStyle == "italic" {
		fontStyle += "I"
	}
	c.pdf.SetFont("Helvetica", fontStyle, size)
	c.pdf.SetTextColor(int(col.R), int(col.G), int(col.B))

	switch style.Align {
	case "center":
		x -= c.pdf.GetStringWidth(s) / 2
	case "end", "right":
		x -= c.pdf.GetStringWidth(s)
	}
	c.pdf.Text(x, y+size*ascent, s)
	return c.pdf.Error()
}

// DrawImage embeds img as a PNG stretched over r.
func (c *Canvas) DrawImage(img image.Image, r geom.Rect) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("pdf: encode image: %w", err)
	}
	c.images++
	name := fmt.Sprintf("img%d", c.images)
	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	c.pdf.RegisterImageOptionsReader(name, opt, &buf)
	c.pdf.ImageOptions(name, r.X, r.Y, r.Width, r.Height, false, opt, 0, "")
	return c.pdf.Error()
}

// Output writes the finished document to w.
func (c *Canvas) Output(w io.Writer) error {
	return c.pdf.Output(w)
}
