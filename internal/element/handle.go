package element

import (
	"fmt"
	"strings"
)

// Handle names the zone of an element under the pointer. Corner and edge
// handles double as resize operations.
type Handle string

const (
	HandleNone   Handle = ""
	HandleInside Handle = "inside"
	HandleStart  Handle = "start"
	HandleEnd    Handle = "end"
	HandleTL     Handle = "tl"
	HandleTR     Handle = "tr"
	HandleBL     Handle = "bl"
	HandleBR     Handle = "br"
	HandleN      Handle = "n"
	HandleS      Handle = "s"
	HandleE      Handle = "e"
	HandleW      Handle = "w"
)

var handleAliases = map[string]Handle{
	"inside": HandleInside,
	"start":  HandleStart,
	"end":    HandleEnd,
	"tl":     HandleTL,
	"nw":     HandleTL,
	"tr":     HandleTR,
	"ne":     HandleTR,
	"bl":     HandleBL,
	"sw":     HandleBL,
	"br":     HandleBR,
	"se":     HandleBR,
	"n":      HandleN,
	"s":      HandleS,
	"e":      HandleE,
	"w":      HandleW,
}

// ParseHandle accepts zone names ("tl") as well as compass and cursor
// action names ("nw", "se-resize").
func ParseHandle(s string) (Handle, error) {
	h, ok := handleAliases[strings.TrimSuffix(s, "-resize")]
	if !ok {
		return HandleNone, fmt.Errorf("%w: unknown handle %q", ErrInvalidGeometry, s)
	}
	return h, nil
}

// IsResize reports whether dragging h resizes rather than moves.
func (h Handle) IsResize() bool {
	return h != HandleNone && h != HandleInside
}

// Cursor returns the CSS cursor shown while hovering h.
func (h Handle) Cursor() string {
	switch h {
	case HandleTL, HandleBR, HandleStart, HandleEnd:
		return "nwse-resize"
	case HandleTR, HandleBL:
		return "nesw-resize"
	case HandleN, HandleS:
		return "ns-resize"
	case HandleE, HandleW:
		return "ew-resize"
	case HandleInside:
		return "move"
	default:
		return "default"
	}
}
