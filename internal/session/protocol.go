package session

import (
	"encoding/json"

	"github.com/inkboard/inkboard/internal/board"
	"github.com/inkboard/inkboard/internal/element"
	"github.com/inkboard/inkboard/internal/geom"
	"github.com/inkboard/inkboard/internal/render/record"
)

type Message struct {
	Type    string          `json:"type"`
	Seq     int64           `json:"seq,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

const (
	// Connection
	TypeWelcome = "welcome"
	TypeError   = "error"

	// Pointer input, in client coordinates
	TypePointerDown = "pointer.down"
	TypePointerMove = "pointer.move"
	TypePointerUp   = "pointer.up"

	// Editing
	TypeTextCommit = "text.commit"
	TypeUndo       = "undo"
	TypeRedo       = "redo"
	TypeDelete     = "delete"
	TypeImagePlace = "image.place"

	// Settings
	TypeToolSet     = "tool.set"
	TypeColorSet    = "color.set"
	TypeOptionsSet  = "options.set"
	TypeViewportSet = "viewport.set"

	// Scene interchange
	TypeSceneLoad = "scene.load"
	TypeSceneGet  = "scene.get"
	TypeScene     = "scene"

	// Server → client redraw
	TypeFrame = "frame"
)

type PointerPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type TextPayload struct {
	Text string `json:"text"`
}

type ToolPayload struct {
	Tool string `json:"tool"`
}

type ColorPayload struct {
	Color string `json:"color"`
}

type OptionsPayload struct {
	Kind    string          `json:"kind"`
	Options element.Options `json:"options"`
}

type DeletePayload struct {
	ID string `json:"id"`
}

type ImagePlacePayload struct {
	AssetID string `json:"assetId"`
}

type WelcomePayload struct {
	SessionID string                           `json:"sessionId"`
	ClientID  string                           `json:"clientId"`
	Width     float64                          `json:"width"`
	Height    float64                          `json:"height"`
	Tools     []string                         `json:"tools"`
	Options   map[element.Kind][]element.Field `json:"options"`
}

// FramePayload is everything a client needs to repaint after an input.
type FramePayload struct {
	Seq      int64                `json:"seq,omitempty"` // input message this frame answers
	Commands []record.DrawCommand `json:"commands"`
	Cursor   string               `json:"cursor"`
	Tool     board.Tool           `json:"tool"`
	Color    string               `json:"color"`
	Action   board.Action         `json:"action"`
	History  board.HistoryState   `json:"history"`
	Editing  *element.Element     `json:"editing,omitempty"` // text shown in the editor overlay
	Viewport geom.Viewport        `json:"viewport"`
}

type ErrorPayload struct {
	Seq     int64  `json:"seq,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
