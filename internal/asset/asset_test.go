package asset

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gorilla/mux"

	"github.com/inkboard/inkboard/internal/element"
	"github.com/inkboard/inkboard/internal/geom"
	"github.com/inkboard/inkboard/internal/render"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/assets/upload", h.Upload).Methods(http.MethodPost)
	r.HandleFunc("/assets/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/assets/{id}", h.Delete).Methods(http.MethodDelete)
	return r
}

func upload(t *testing.T, router http.Handler, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="pic.png"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(data)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/assets/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestUploadGetDelete(t *testing.T) {
	router := newRouter(NewHandler(NewStore(t.TempDir())))

	rec := upload(t, router, "image/png", testPNG(t, 3, 2))
	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d, body %s", rec.Code, rec.Body)
	}
	var resp UploadResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Width != 3 || resp.Height != 2 || resp.Name != "pic.png" {
		t.Errorf("upload response = %+v", resp)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, resp.URL, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "image/png" {
		t.Errorf("Content-Type = %q", got)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, resp.URL, nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, resp.URL, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestUploadRejects(t *testing.T) {
	router := newRouter(NewHandler(NewStore(t.TempDir())))
	tests := []struct {
		name        string
		contentType string
		data        []byte
	}{
		{"wrong type", "text/plain", []byte("hi")},
		{"not an image", "image/png", []byte("not a png")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := upload(t, router, tt.contentType, tt.data); rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestStoreLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	img, err := Decode(bytes.NewReader(testPNG(t, 4, 4)))
	if err != nil {
		t.Fatal(err)
	}
	id, err := NewStore(dir).Save(img)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	fresh := NewStore(dir)
	got, err := fresh.Load(id)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Bounds().Dx() != 4 {
		t.Errorf("loaded width = %d, want 4", got.Bounds().Dx())
	}

	if _, err := fresh.Load("../../etc/passwd"); !errors.Is(err, render.ErrResourceNotFound) {
		t.Errorf("Load(bad id) error = %v, want ErrResourceNotFound", err)
	}
}

func TestResolver(t *testing.T) {
	store := NewStore(t.TempDir())
	img, _ := Decode(bytes.NewReader(testPNG(t, 5, 5)))
	id, err := store.Save(img)
	if err != nil {
		t.Fatal(err)
	}

	kit := element.DefaultToolkit()
	rect := geom.Rect{Width: 10, Height: 10}
	mk := func(payload []byte) *element.Element {
		e, err := element.Create(element.KindImage, element.Params{Rect: rect, Image: payload}, kit)
		if err != nil {
			t.Fatal(err)
		}
		return e
	}
	stored := mk([]byte(id))
	inline := mk(testPNG(t, 2, 2))
	dataURL := mk([]byte("data:image/png;base64," + base64.StdEncoding.EncodeToString(testPNG(t, 6, 1))))
	broken := mk([]byte("garbage"))

	res := NewResolver(store, CollectionLookup(element.Collection{stored, inline, dataURL, broken}))
	tests := []struct {
		name  string
		id    string
		width int
		err   error
	}{
		{"stored", stored.ID, 5, nil},
		{"inline", inline.ID, 2, nil},
		{"data url", dataURL.ID, 6, nil},
		{"broken", broken.ID, 0, element.ErrMalformedUpdate},
		{"unknown element", "el_missing", 0, render.ErrResourceNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := res.Resolve(tt.id)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Errorf("Resolve() error = %v, want %v", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got.Bounds().Dx() != tt.width {
				t.Errorf("width = %d, want %d", got.Bounds().Dx(), tt.width)
			}
		})
	}
}
