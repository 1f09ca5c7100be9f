package element

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/inkboard/inkboard/internal/rough"
)

// Options are the free-form rendering parameters of an element. Values are
// JSON-compatible scalars.
type Options map[string]any

// Float returns the numeric option key, or def when it is absent or not a
// number.
func (o Options) Float(key string, def float64) float64 {
	if v, ok := o[key]; ok {
		if f, ok := rough.Float(v); ok {
			return f
		}
	}
	return def
}

// String returns the string option key, or def.
func (o Options) String(key, def string) string {
	if s, ok := o[key].(string); ok && s != "" {
		return s
	}
	return def
}

// Merge returns o overlaid with patch. A nil value in patch removes the key.
func (o Options) Merge(patch Options) Options {
	out := maps.Clone(o)
	if out == nil {
		out = make(Options, len(patch))
	}
	for k, v := range patch {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}

var (
	strokeKeys = []string{"stroke", "strokeWidth", "roughness", "bowing", "seed"}
	fillKeys   = []string{"fill", "fillStyle", "fillWeight", "hachureAngle", "hachureGap"}
	pencilKeys = []string{"strokeWidth", "size", "thinning", "streamline"}
	fontKeys   = []string{"fontSize", "fontWeight", "fontStyle", "fontFamily", "lineHeight", "align"}
)

// optionKeys is the set of keys each variant accepts. Shape fill keys and
// text font keys never overlap.
var optionKeys = map[Kind][]string{
	KindLine:      strokeKeys,
	KindRectangle: slices.Concat(strokeKeys, fillKeys),
	KindTriangle:  slices.Concat(strokeKeys, fillKeys),
	KindCircle:    slices.Concat(strokeKeys, fillKeys),
	KindEllipse:   slices.Concat(strokeKeys, fillKeys),
	KindPencil:    pencilKeys,
	KindText:      fontKeys,
	KindImage:     nil,
}

// OptionKeys returns the option keys accepted by kind k, sorted.
func OptionKeys(k Kind) []string {
	keys := slices.Clone(optionKeys[k])
	sort.Strings(keys)
	return keys
}

// ValidateOptions rejects keys that kind k does not accept.
func ValidateOptions(k Kind, o Options) error {
	allowed := optionKeys[k]
	for key := range o {
		if !slices.Contains(allowed, key) {
			return fmt.Errorf("%w: option %q not valid for %s (accepted: %s)",
				ErrMalformedUpdate, key, k, strings.Join(OptionKeys(k), ", "))
		}
	}
	return nil
}

// DefaultOptions returns the options a freshly selected tool starts with.
func DefaultOptions(k Kind) Options {
	switch k {
	case KindLine:
		return Options{"bowing": 0.0, "strokeWidth": 1.0, "roughness": 0.0}
	case KindRectangle, KindTriangle, KindCircle, KindEllipse:
		return Options{"bowing": 0.0, "strokeWidth": 1.0, "roughness": 0.0, "fillStyle": rough.FillSolid}
	case KindPencil:
		return Options{"strokeWidth": 4.0}
	case KindText:
		return Options{"fontSize": 20.0, "fontWeight": "normal", "lineHeight": 24.0, "align": "start"}
	default:
		return Options{}
	}
}

// FieldType says how an option is edited.
type FieldType string

const (
	FieldNumber FieldType = "number"
	FieldEnum   FieldType = "enum"
	FieldColor  FieldType = "color"
	FieldText   FieldType = "text"
)

// Field describes one editable option for a tool's settings form.
type Field struct {
	Key     string    `json:"key"`
	Label   string    `json:"label"`
	Type    FieldType `json:"type"`
	Default any       `json:"default"`
	Values  []any     `json:"values,omitempty"`
}

var (
	bowingField     = Field{Key: "bowing", Label: "Bowing", Type: FieldEnum, Default: 0.0, Values: []any{0.0, 1.0}}
	strokeField     = Field{Key: "strokeWidth", Label: "Stroke width", Type: FieldNumber, Default: 4.0}
	roughnessField  = Field{Key: "roughness", Label: "Roughness", Type: FieldNumber, Default: 4.0}
	fillField       = Field{Key: "fill", Label: "Fill", Type: FieldColor, Default: "#000000"}
	fillWeightField = Field{Key: "fillWeight", Label: "Fill weight", Type: FieldNumber, Default: 5.0}
	fillStyleField  = Field{
		Key: "fillStyle", Label: "Fill style", Type: FieldEnum, Default: rough.FillSolid,
		Values: []any{
			rough.FillSolid, rough.FillHachure, rough.FillZigzag, rough.FillCrossHatch,
			rough.FillDots, rough.FillDashed, rough.FillZigzagLine,
		},
	}
)

// OptionFields returns the settings form for kind k.
func OptionFields(k Kind) []Field {
	switch k {
	case KindLine:
		return []Field{bowingField, strokeField, roughnessField}
	case KindRectangle, KindTriangle, KindCircle, KindEllipse:
		return []Field{bowingField, strokeField, roughnessField, fillField, fillWeightField, fillStyleField}
	case KindPencil:
		return []Field{strokeField}
	case KindText:
		return []Field{
			{Key: "fontSize", Label: "Font size", Type: FieldNumber, Default: 20.0},
			{Key: "fontWeight", Label: "Font weight", Type: FieldEnum, Default: "normal", Values: []any{"normal", "bold"}},
			{Key: "fontStyle", Label: "Font style", Type: FieldEnum, Default: "normal", Values: []any{"normal", "italic"}},
			{Key: "lineHeight", Label: "Line height", Type: FieldNumber, Default: 24.0},
			{Key: "align", Label: "Align", Type: FieldEnum, Default: "start", Values: []any{"start", "center", "end"}},
		}
	default:
		return nil
	}
}
