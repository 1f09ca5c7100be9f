package asset

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/inkboard/inkboard/internal/element"
	"github.com/inkboard/inkboard/internal/render"
	"github.com/inkboard/inkboard/internal/typeid"
)

// Store keeps uploaded images as PNG files named by asset id and caches
// decoded bitmaps.
type Store struct {
	dir string

	mu    sync.RWMutex
	cache map[string]image.Image
}

// NewStore creates a store that keeps files in dir.
func NewStore(dir string) *Store {
	if err := os.MkdirAll(dir, 0755); err != nil {
		slog.Error("create asset dir", "error", err, "dir", dir)
	}
	return &Store{dir: dir, cache: make(map[string]image.Image)}
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".png")
}

// Save stores img under a new asset id.
func (s *Store) Save(img image.Image) (string, error) {
	id := typeid.NewAssetID()
	path := s.path(id)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("asset: create file: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("asset: encode png: %w", err)
	}

	s.mu.Lock()
	s.cache[id] = img
	s.mu.Unlock()
	return id, nil
}

// Load returns the bitmap of asset id. A missing asset is
// render.ErrResourceNotFound.
func (s *Store) Load(id string) (image.Image, error) {
	if err := typeid.Validate(id, typeid.PrefixAsset); err != nil {
		return nil, fmt.Errorf("asset %q: %w", id, render.ErrResourceNotFound)
	}

	s.mu.RLock()
	img, ok := s.cache[id]
	s.mu.RUnlock()
	if ok {
		return img, nil
	}

	f, err := os.Open(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("asset %s: %w", id, render.ErrResourceNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("asset: open %s: %w", id, err)
	}
	defer f.Close()

	img, err = png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("asset: decode %s: %w", id, err)
	}

	s.mu.Lock()
	s.cache[id] = img
	s.mu.Unlock()
	return img, nil
}

// Delete removes an asset file from disk.
func (s *Store) Delete(id string) error {
	if err := typeid.Validate(id, typeid.PrefixAsset); err != nil {
		return fmt.Errorf("asset %q: %w", id, render.ErrResourceNotFound)
	}

	s.mu.Lock()
	delete(s.cache, id)
	s.mu.Unlock()

	if err := os.Remove(s.path(id)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("asset %s: %w", id, render.ErrResourceNotFound)
		}
		return err
	}
	return nil
}

// Decode reads a PNG or JPEG image.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("asset: %w: %v", element.ErrMalformedUpdate, err)
	}
	return img, nil
}

// DecodePayload decodes an image element payload: raw PNG or JPEG bytes,
// or a base64 data URL.
func DecodePayload(payload []byte) (image.Image, error) {
	if rest, ok := bytes.CutPrefix(payload, []byte("data:")); ok {
		meta, data, found := strings.Cut(string(rest), ",")
		if !found || !strings.HasSuffix(meta, ";base64") {
			return nil, fmt.Errorf("asset: %w: unsupported data URL", element.ErrMalformedUpdate)
		}
		raw, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return nil, fmt.Errorf("asset: %w: %v", element.ErrMalformedUpdate, err)
		}
		payload = raw
	}
	return Decode(bytes.NewReader(payload))
}
