// Package board is the interactive whiteboard controller. It owns the
// element history, the current tool and color, and turns pointer gestures
// into element patches.
package board

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/inkboard/inkboard/internal/element"
	"github.com/inkboard/inkboard/internal/geom"
	"github.com/inkboard/inkboard/internal/history"
	"github.com/inkboard/inkboard/internal/render"
)

var (
	ErrElementNotFound = errors.New("board: element not found")
	ErrUnknownTool     = errors.New("board: unknown tool")
)

// Tool is what a pointer press does: select an existing element, or create
// a new one of the tool's kind.
type Tool string

const ToolSelection Tool = "selection"

// ParseTool accepts "selection" or any element kind.
func ParseTool(s string) (Tool, error) {
	if Tool(s) == ToolSelection {
		return ToolSelection, nil
	}
	if _, err := element.ParseKind(s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownTool, s)
	}
	return Tool(s), nil
}

// Kind returns the element kind a drawing tool creates.
func (t Tool) Kind() (element.Kind, bool) {
	k := element.Kind(t)
	return k, k.Valid()
}

// Action is the gesture in progress.
type Action string

const (
	ActionNone     Action = "none"
	ActionDrawing  Action = "drawing"
	ActionWriting  Action = "writing"
	ActionMoving   Action = "moving"
	ActionResizing Action = "resizing"
)

// DefaultImageSize is the box a placed image gets before any resize.
var DefaultImageSize = geom.Size{Width: 200, Height: 100}

// Config holds the board settings that come from the environment.
type Config struct {
	Width        float64
	Height       float64
	Color        string
	HistoryLimit int
}

// DefaultConfig is an 800x600 board drawing in black.
func DefaultConfig() Config {
	return Config{Width: 800, Height: 600, Color: "#000000"}
}

// selection is the element a gesture works on.
type selection struct {
	id      string
	handle  element.Handle
	grab    element.Grab
	press   geom.Point
	created bool // the gesture committed the element itself
	before  *element.Element
}

// Board is not safe for concurrent use.
type Board struct {
	history     *history.History[element.Collection]
	kit         element.Toolkit
	size        geom.Size
	viewport    geom.Viewport
	tool        Tool
	color       string
	toolOptions map[element.Kind]element.Options

	action   Action
	selected *selection
	cursor   string
	logger   *slog.Logger
}

// Option configures a Board.
type Option func(*Board)

// WithToolkit sets the sketch generator and text measurer.
func WithToolkit(kit element.Toolkit) Option {
	return func(b *Board) { b.kit = kit }
}

// WithLogger replaces slog.Default for rejected operations.
func WithLogger(l *slog.Logger) Option {
	return func(b *Board) { b.logger = l }
}

// New returns an empty board with the selection tool active.
func New(cfg Config, opts ...Option) *Board {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		d := DefaultConfig()
		cfg.Width, cfg.Height = d.Width, d.Height
	}
	if cfg.Color == "" {
		cfg.Color = DefaultConfig().Color
	}

	b := &Board{
		history:     history.New(element.Collection{}, history.WithLimit(cfg.HistoryLimit)),
		kit:         element.DefaultToolkit(),
		size:        geom.Size{Width: cfg.Width, Height: cfg.Height},
		tool:        ToolSelection,
		color:       cfg.Color,
		toolOptions: make(map[element.Kind]element.Options, len(element.Kinds)),
		action:      ActionNone,
		cursor:      element.HandleNone.Cursor(),
		logger:      slog.Default(),
	}
	for _, k := range element.Kinds {
		b.toolOptions[k] = element.DefaultOptions(k)
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// --- Commands ---

// SetTool switches the active tool. A gesture in progress is dropped.
func (b *Board) SetTool(t Tool) error {
	if _, err := ParseTool(string(t)); err != nil {
		return b.reject("set tool", err)
	}
	b.cancel()
	b.tool = t
	return nil
}

// SetColor sets the color of elements created from now on.
func (b *Board) SetColor(c string) error {
	if _, err := render.ParseColor(c); err != nil {
		return b.reject("set color", fmt.Errorf("%w: %v", element.ErrMalformedUpdate, err))
	}
	b.color = c
	return nil
}

// SetToolOptions merges patch into the options new elements of kind k get.
func (b *Board) SetToolOptions(k element.Kind, patch element.Options) error {
	if !k.Valid() {
		return b.reject("set tool options", fmt.Errorf("%w: %q", element.ErrUnknownVariant, k))
	}
	merged := b.toolOptions[k].Merge(patch)
	if err := element.ValidateOptions(k, merged); err != nil {
		return b.reject("set tool options", err)
	}
	b.toolOptions[k] = merged
	return nil
}

// SetViewport sets how client coordinates map onto the canvas.
func (b *Board) SetViewport(v geom.Viewport) { b.viewport = v }

// Update applies a patch to element id as one undo step.
func (b *Board) Update(id string, p element.Patch) error {
	elements := b.Elements()
	e, ok := elements.Get(id)
	if !ok {
		return b.reject("update", fmt.Errorf("%w: %s", ErrElementNotFound, id))
	}
	next, err := element.ApplyPatch(e, p, b.kit)
	if err != nil {
		return b.reject("update", err)
	}
	b.cancel()
	b.history.Commit(elements.Replace(next))
	return nil
}

// Delete removes element id as one undo step.
func (b *Board) Delete(id string) error {
	elements := b.Elements()
	if _, ok := elements.Get(id); !ok {
		return b.reject("delete", fmt.Errorf("%w: %s", ErrElementNotFound, id))
	}
	b.cancel()
	b.history.Commit(elements.Without(id))
	return nil
}

// PlaceImage adds an image centered on the canvas.
func (b *Board) PlaceImage(payload []byte) (*element.Element, error) {
	elements := b.Elements()
	rect := geom.CenterIn(DefaultImageSize, geom.Rect{Width: b.size.Width, Height: b.size.Height})
	e, err := element.Create(element.KindImage, element.Params{
		Name:    element.GenerateName(elements, element.KindImage),
		Rect:    rect,
		Color:   b.color,
		Options: b.toolOptions[element.KindImage],
		Image:   payload,
	}, b.kit)
	if err != nil {
		return nil, b.reject("place image", err)
	}
	b.cancel()
	b.history.Commit(with(elements, e))
	return e, nil
}

// Load replaces the board content and forgets all history.
func (b *Board) Load(elements element.Collection) {
	b.cancel()
	b.history.Reset(elements)
}

// Undo steps back one state. A gesture in progress is dropped first.
func (b *Board) Undo() {
	b.cancel()
	b.history.Undo()
}

// Redo steps forward one state. A gesture in progress is dropped first.
func (b *Board) Redo() {
	b.cancel()
	b.history.Redo()
}

// --- Queries ---

// Elements returns the visible collection. It must not be modified.
func (b *Board) Elements() element.Collection { return b.history.Current() }

// Element returns element id, or nil.
func (b *Board) Element(id string) *element.Element {
	e, _ := b.Elements().Get(id)
	return e
}

// HitTest returns the topmost element under the canvas point p.
func (b *Board) HitTest(p geom.Point) (element.Hit, bool) {
	return element.ElementAtPosition(p, b.Elements())
}

func (b *Board) Tool() Tool               { return b.tool }
func (b *Board) Color() string            { return b.color }
func (b *Board) Action() Action           { return b.action }
func (b *Board) Cursor() string           { return b.cursor }
func (b *Board) Size() geom.Size          { return b.size }
func (b *Board) Toolkit() element.Toolkit { return b.kit }
func (b *Board) Viewport() geom.Viewport  { return b.viewport }

// ToolOptions returns the options new elements of kind k start with.
func (b *Board) ToolOptions(k element.Kind) element.Options {
	return element.Options{}.Merge(b.toolOptions[k])
}

// Editing returns the text element being written, or nil.
func (b *Board) Editing() *element.Element {
	if b.action != ActionWriting || b.selected == nil {
		return nil
	}
	return b.Element(b.selected.id)
}

// HistoryState summarizes the undo log for a UI.
type HistoryState struct {
	Index   int  `json:"index"`
	Len     int  `json:"len"`
	CanUndo bool `json:"canUndo"`
	CanRedo bool `json:"canRedo"`
}

func (b *Board) History() HistoryState {
	return HistoryState{
		Index:   b.history.Index(),
		Len:     b.history.Len(),
		CanUndo: b.history.CanUndo(),
		CanRedo: b.history.CanRedo(),
	}
}

// Render draws the board onto c. The text element being written is left
// out; its editor overlay shows it instead.
func (b *Board) Render(c render.Canvas, res render.Resolver) error {
	opts := render.FrameOptions{Resolver: res}
	if e := b.Editing(); e != nil {
		opts.Skip = e.ID
	}
	return render.Frame(b.Elements(), c, opts)
}

// with returns a new collection with e appended. Snapshots already in
// history keep their backing array.
func with(elements element.Collection, e *element.Element) element.Collection {
	out := make(element.Collection, len(elements), len(elements)+1)
	copy(out, elements)
	return append(out, e)
}

// reject logs an operation the board refused and returns err.
func (b *Board) reject(op string, err error) error {
	b.logger.Warn("board operation rejected", "op", op, "error", err)
	return err
}
