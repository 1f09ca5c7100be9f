package element

import "errors"

var (
	// ErrUnknownVariant is returned for a variant tag outside Kinds.
	ErrUnknownVariant = errors.New("element: unknown variant")
	// ErrInvalidGeometry rejects a mutation with missing or non-finite
	// coordinates, or a handle the variant does not support.
	ErrInvalidGeometry = errors.New("element: invalid geometry")
	// ErrMalformedUpdate rejects a patch that touches fields the variant
	// does not have.
	ErrMalformedUpdate = errors.New("element: malformed update")
)
