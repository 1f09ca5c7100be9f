package element

import "fmt"

// Kind is the variant tag of an element.
type Kind string

const (
	KindLine      Kind = "line"
	KindRectangle Kind = "rectangle"
	KindTriangle  Kind = "triangle"
	KindCircle    Kind = "circle"
	KindEllipse   Kind = "ellipse"
	KindPencil    Kind = "pencil"
	KindText      Kind = "text"
	KindImage     Kind = "image"
)

// Kinds lists every variant in toolbar order.
var Kinds = []Kind{
	KindLine,
	KindRectangle,
	KindTriangle,
	KindCircle,
	KindEllipse,
	KindPencil,
	KindText,
	KindImage,
}

var displayNames = map[Kind]string{
	KindLine:      "Line",
	KindRectangle: "Rectangle",
	KindTriangle:  "Triangle",
	KindCircle:    "Circle",
	KindEllipse:   "Ellipse",
	KindPencil:    "Pencil",
	KindText:      "Text",
	KindImage:     "Image",
}

// ParseKind validates a variant tag.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
	}
	return k, nil
}

// Valid reports whether k is one of the recognised variants.
func (k Kind) Valid() bool {
	_, ok := displayNames[k]
	return ok
}

// DisplayName is the label used for generated element names.
func (k Kind) DisplayName() string {
	return displayNames[k]
}

// IsShape reports whether k is drawn through the sketch generator and
// carries a cached drawable.
func (k Kind) IsShape() bool {
	switch k {
	case KindLine, KindRectangle, KindTriangle, KindCircle, KindEllipse:
		return true
	}
	return false
}
