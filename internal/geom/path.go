package geom

// PathCommand is one SVG-like path instruction: an op letter followed by its
// coordinates, e.g. {"M", x, y}, {"Q", cx, cy, x, y}, {"Z"}. The untyped
// layout marshals straight into the arrays a browser canvas consumes.
type PathCommand []interface{}

// PathBounds returns the axis-aligned bounding box of a path, control
// points included.
func PathBounds(path []PathCommand) Rect {
	var pts []Point
	for _, cmd := range path {
		if len(cmd) == 0 {
			continue
		}
		op, ok := cmd[0].(string)
		if !ok {
			continue
		}
		switch op {
		case "M", "L", "Q", "C":
			for i := 1; i+1 < len(cmd); i += 2 {
				pts = append(pts, Point{ToFloat64(cmd[i]), ToFloat64(cmd[i+1])})
			}
		}
	}
	return Bounds(pts)
}

// ToFloat64 converts a path argument to float64.
func ToFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
