package asset

import (
	"bytes"
	"fmt"
	"image"
	"sync"

	"github.com/inkboard/inkboard/internal/element"
	"github.com/inkboard/inkboard/internal/render"
	"github.com/inkboard/inkboard/internal/typeid"
)

// Resolver finds the bitmap of an image element. A payload holding an
// asset id is loaded from the store; any other payload is decoded as an
// inline image. Decoded inline images are cached per element.
type Resolver struct {
	store  *Store
	lookup func(id string) *element.Element

	mu     sync.Mutex
	inline map[string]decoded
}

type decoded struct {
	payload []byte
	img     image.Image
}

// NewResolver resolves element ids through lookup. store may be nil when
// only inline payloads are expected.
func NewResolver(store *Store, lookup func(id string) *element.Element) *Resolver {
	return &Resolver{store: store, lookup: lookup, inline: make(map[string]decoded)}
}

// CollectionLookup looks elements up in a fixed collection.
func CollectionLookup(elements element.Collection) func(string) *element.Element {
	return func(id string) *element.Element {
		e, _ := elements.Get(id)
		return e
	}
}

func (r *Resolver) Resolve(id string) (image.Image, error) {
	e := r.lookup(id)
	if e == nil || e.Kind != element.KindImage {
		return nil, fmt.Errorf("element %s: %w", id, render.ErrResourceNotFound)
	}

	ref := string(e.Image)
	if typeid.Validate(ref, typeid.PrefixAsset) == nil {
		if r.store == nil {
			return nil, fmt.Errorf("asset %s: %w", ref, render.ErrResourceNotFound)
		}
		return r.store.Load(ref)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.inline[id]; ok && bytes.Equal(d.payload, e.Image) {
		return d.img, nil
	}
	img, err := DecodePayload(e.Image)
	if err != nil {
		return nil, err
	}
	r.inline[id] = decoded{payload: e.Image, img: img}
	return img, nil
}
