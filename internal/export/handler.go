// Package export renders scene documents to PNG or PDF files.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/inkboard/inkboard/internal/asset"
	"github.com/inkboard/inkboard/internal/document"
	"github.com/inkboard/inkboard/internal/element"
	"github.com/inkboard/inkboard/internal/render"
	"github.com/inkboard/inkboard/internal/render/pdf"
	"github.com/inkboard/inkboard/internal/render/raster"
	"github.com/inkboard/inkboard/internal/typeid"
)

const maxSceneSize = 20 << 20 // 20MB

// Format is an output file type.
type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

var ErrUnknownFormat = errors.New("export: unknown format")

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatPNG, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "image/png"
}

// Render draws scene in format f to w. Elements that fail to draw, such as
// images whose asset is gone, are left out; the file is still written.
func Render(w io.Writer, scene *document.Scene, f Format, res render.Resolver) error {
	size := scene.Size()
	switch f {
	case FormatPNG:
		c := raster.New(int(math.Ceil(size.Width)), int(math.Ceil(size.Height)))
		defer c.Close()
		logFrame(render.Frame(scene.Elements, c, render.FrameOptions{Resolver: res}))
		return c.EncodePNG(w)
	case FormatPDF:
		c := pdf.New(size.Width, size.Height)
		logFrame(render.Frame(scene.Elements, c, render.FrameOptions{Resolver: res}))
		return c.Output(w)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

func logFrame(err error) {
	if err != nil {
		slog.Warn("export skipped elements", "error", err)
	}
}

// Handler serves the export endpoint.
type Handler struct {
	store *asset.Store
	kit   element.Toolkit
}

// NewHandler resolves images through store. Text is measured with kit so
// exported boxes match the rendered font.
func NewHandler(store *asset.Store, kit element.Toolkit) *Handler {
	return &Handler{store: store, kit: kit}
}

// Export handles POST /export/{format} with a scene document as body.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := ParseFormat(mux.Vars(r)["format"])
	if err != nil {
		http.Error(w, "invalid format: must be png or pdf", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSceneSize))
	if err != nil {
		http.Error(w, "request too large", http.StatusBadRequest)
		return
	}
	scene, err := document.Parse(body, h.kit)
	if err != nil {
		http.Error(w, "invalid scene: "+err.Error(), http.StatusBadRequest)
		return
	}

	name := sanitize(r.URL.Query().Get("name"))
	exportID := typeid.NewExportID()
	slog.Info("export started", "id", exportID, "format", format, "elements", len(scene.Elements))

	var out bytes.Buffer
	res := asset.NewResolver(h.store, asset.CollectionLookup(scene.Elements))
	if err := Render(&out, scene, format, res); err != nil {
		slog.Error("export failed", "id", exportID, "error", err)
		http.Error(w, fmt.Sprintf("encoding failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, name, format))
	w.Header().Set("Content-Length", strconv.Itoa(out.Len()))
	io.Copy(w, &out)

	slog.Info("export complete", "id", exportID, "format", format, "size", out.Len())
}

func sanitize(name string) string {
	if name == "" {
		return "board"
	}
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)
}
