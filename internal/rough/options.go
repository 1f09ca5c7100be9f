package rough

import (
	"strconv"
)

// Fill styles understood by the generator. Unknown styles fall back to
// hachure.
const (
	FillSolid      = "solid"
	FillHachure    = "hachure"
	FillZigzag     = "zigzag"
	FillCrossHatch = "cross-hatch"
	FillDots       = "dots"
	FillDashed     = "dashed"
	FillZigzagLine = "zigzag-line"
)

// Options control how a primitive is sketched. Negative FillWeight and
// HachureGap mean "derive from StrokeWidth".
type Options struct {
	Stroke       string  `json:"stroke"`
	Fill         string  `json:"fill,omitempty"`
	StrokeWidth  float64 `json:"strokeWidth"`
	Roughness    float64 `json:"roughness"`
	Bowing       float64 `json:"bowing"`
	FillStyle    string  `json:"fillStyle"`
	FillWeight   float64 `json:"fillWeight"`
	HachureAngle float64 `json:"hachureAngle"`
	HachureGap   float64 `json:"hachureGap"`
	Seed         uint64  `json:"seed"`
}

// DefaultOptions returns the generator defaults.
func DefaultOptions() Options {
	return Options{
		Stroke:       "#000000",
		StrokeWidth:  1,
		Roughness:    1,
		Bowing:       1,
		FillStyle:    FillHachure,
		FillWeight:   -1,
		HachureAngle: -41,
		HachureGap:   -1,
	}
}

// Resolve builds the options for an element drawn in color: stroke and fill
// both start as color, then every recognised key in values overrides the
// defaults. Values may be numbers or numeric strings, as produced by form
// inputs.
func Resolve(color string, values map[string]any) Options {
	o := DefaultOptions()
	if color != "" {
		o.Stroke = color
		o.Fill = color
	}
	for key, v := range values {
		switch key {
		case "stroke":
			if s, ok := v.(string); ok {
				o.Stroke = s
			}
		case "fill":
			if s, ok := v.(string); ok {
				o.Fill = s
			}
		case "fillStyle":
			if s, ok := v.(string); ok && s != "" {
				o.FillStyle = s
			}
		case "strokeWidth":
			setFloat(&o.StrokeWidth, v)
		case "roughness":
			setFloat(&o.Roughness, v)
		case "bowing":
			setFloat(&o.Bowing, v)
		case "fillWeight":
			setFloat(&o.FillWeight, v)
		case "hachureAngle":
			setFloat(&o.HachureAngle, v)
		case "hachureGap":
			setFloat(&o.HachureGap, v)
		case "seed":
			var f float64
			if setFloat(&f, v) && f >= 0 {
				o.Seed = uint64(f)
			}
		}
	}
	return o
}

// fillWeight and hachureGap resolve the derived defaults.
func (o Options) fillWeight() float64 {
	if o.FillWeight < 0 {
		return o.StrokeWidth / 2
	}
	return o.FillWeight
}

func (o Options) hachureGap() float64 {
	gap := o.HachureGap
	if gap < 0 {
		gap = o.StrokeWidth * 4
	}
	return max(gap, 0.5)
}

func setFloat(dst *float64, v any) bool {
	if f, ok := Float(v); ok {
		*dst = f
		return true
	}
	return false
}

// Float converts a loosely typed option value to float64.
func Float(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	case interface{ Float64() (float64, error) }:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
