package export

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/inkboard/inkboard/internal/asset"
	"github.com/inkboard/inkboard/internal/document"
	"github.com/inkboard/inkboard/internal/element"
)

func newRouter(t *testing.T) *mux.Router {
	t.Helper()
	h := NewHandler(asset.NewStore(t.TempDir()), element.DefaultToolkit())
	r := mux.NewRouter()
	r.HandleFunc("/export/{format}", h.Export).Methods(http.MethodPost)
	return r
}

func sampleJSON(t *testing.T) []byte {
	t.Helper()
	s, err := document.NewSample(element.DefaultToolkit())
	if err != nil {
		t.Fatal(err)
	}
	data, err := s.JSON()
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestExport(t *testing.T) {
	tests := []struct {
		format      string
		contentType string
		magic       string
	}{
		{"png", "image/png", "\x89PNG"},
		{"pdf", "application/pdf", "%PDF-"},
	}
	router := newRouter(t)
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/export/"+tt.format+"?name=my%20board", bytes.NewReader(sampleJSON(t)))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
			}
			if got := rec.Header().Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, `"my-board.`+tt.format+`"`) {
				t.Errorf("Content-Disposition = %q", got)
			}
			if !bytes.HasPrefix(rec.Body.Bytes(), []byte(tt.magic)) {
				t.Errorf("body does not start with %q", tt.magic)
			}
		})
	}
}

func TestExportMissingImageStillWrites(t *testing.T) {
	scene := `{"width":50,"height":50,"elements":[
		{"id":"el_img","type":"image","rect":{"x":0,"y":0,"width":10,"height":10},"image":"` +
		// base64 of "asset_01h455vb4pex5vsknk084sn02q"
		`YXNzZXRfMDFoNDU1dmI0cGV4NXZza25rMDg0c24wMnE="}
	]}`
	req := httptest.NewRequest(http.MethodPost, "/export/png", strings.NewReader(scene))
	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 with the image left out", rec.Code)
	}
}

func TestExportBadRequests(t *testing.T) {
	router := newRouter(t)
	tests := []struct {
		name, path, body string
	}{
		{"format", "/export/gif", `{}`},
		{"scene", "/export/png", `{"elements":[{"type":"hexagon"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body)))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("PDF"); err != nil || f != FormatPDF {
		t.Errorf("ParseFormat(PDF) = %q, %v", f, err)
	}
	if _, err := ParseFormat("svg"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(svg) error = %v, want ErrUnknownFormat", err)
	}
}
