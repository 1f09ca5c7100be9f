//go:build js && wasm

package main

import (
	"encoding/json"
	"image"
	"syscall/js"

	"github.com/inkboard/inkboard/internal/asset"
	"github.com/inkboard/inkboard/internal/board"
	"github.com/inkboard/inkboard/internal/document"
	"github.com/inkboard/inkboard/internal/element"
	"github.com/inkboard/inkboard/internal/geom"
	"github.com/inkboard/inkboard/internal/render"
	"github.com/inkboard/inkboard/internal/render/record"
)

var b *board.Board

// There is no asset store in the browser; only inline payloads resolve.
var resolver = render.ResolverFunc(func(id string) (image.Image, error) {
	e := b.Element(id)
	if e == nil || e.Kind != element.KindImage {
		return nil, render.ErrResourceNotFound
	}
	return asset.DecodePayload(e.Image)
})

func main() {
	b = board.New(board.DefaultConfig())

	api := js.Global().Get("Object").New()

	// --- Input (frontend → board) ---
	api.Set("pointerDown", js.FuncOf(pointer(b.PointerDown)))
	api.Set("pointerMove", js.FuncOf(pointer(b.PointerMove)))
	api.Set("pointerUp", js.FuncOf(pointer(b.PointerUp)))
	api.Set("commitText", js.FuncOf(commitText))
	api.Set("undo", js.FuncOf(undo))
	api.Set("redo", js.FuncOf(redo))
	api.Set("deleteElement", js.FuncOf(deleteElement))
	api.Set("placeImage", js.FuncOf(placeImage))

	// --- Settings ---
	api.Set("setTool", js.FuncOf(setTool))
	api.Set("setColor", js.FuncOf(setColor))
	api.Set("setToolOptions", js.FuncOf(setToolOptions))
	api.Set("setViewport", js.FuncOf(setViewport))

	// --- Documents ---
	api.Set("loadScene", js.FuncOf(loadScene))
	api.Set("loadSampleScene", js.FuncOf(loadSampleScene))
	api.Set("getScene", js.FuncOf(getScene))

	// --- Queries (frontend ← board) ---
	api.Set("render", js.FuncOf(renderFrame))
	api.Set("getState", js.FuncOf(getState))
	api.Set("hitTest", js.FuncOf(hitTest))

	js.Global().Set("inkboard", api)
	js.Global().Set("inkboardWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func result(err error) any {
	if err != nil {
		return js.ValueOf(map[string]any{"error": err.Error()})
	}
	return js.ValueOf(map[string]any{"ok": true})
}

func missing(what string) any {
	return js.ValueOf(map[string]any{"error": "missing " + what})
}

// --- Input Handlers ---

func pointer(fn func(geom.Point) error) func(js.Value, []js.Value) any {
	return func(this js.Value, args []js.Value) any {
		if len(args) < 2 {
			return missing("x, y")
		}
		return result(fn(geom.Point{X: args[0].Float(), Y: args[1].Float()}))
	}
}

func commitText(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return missing("text")
	}
	return result(b.Blur(args[0].String()))
}

func undo(this js.Value, args []js.Value) any {
	b.Undo()
	return nil
}

func redo(this js.Value, args []js.Value) any {
	b.Redo()
	return nil
}

func deleteElement(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return missing("element id")
	}
	return result(b.Delete(args[0].String()))
}

// placeImage takes the image as a data URL.
func placeImage(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return missing("data URL")
	}
	payload := []byte(args[0].String())
	if _, err := asset.DecodePayload(payload); err != nil {
		return result(err)
	}
	e, err := b.PlaceImage(payload)
	if err != nil {
		return result(err)
	}
	return js.ValueOf(e.ID)
}

// --- Settings Handlers ---

func setTool(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return missing("tool")
	}
	return result(b.SetTool(board.Tool(args[0].String())))
}

func setColor(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return missing("color")
	}
	return result(b.SetColor(args[0].String()))
}

func setToolOptions(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return missing("kind, options JSON")
	}
	k, err := element.ParseKind(args[0].String())
	if err != nil {
		return result(err)
	}
	var opts element.Options
	if err := json.Unmarshal([]byte(args[1].String()), &opts); err != nil {
		return result(err)
	}
	return result(b.SetToolOptions(k, opts))
}

func setViewport(this js.Value, args []js.Value) any {
	if len(args) < 3 {
		return missing("offsetX, offsetY, zoom")
	}
	b.SetViewport(geom.Viewport{
		Offset: geom.Point{X: args[0].Float(), Y: args[1].Float()},
		Zoom:   args[2].Float(),
	})
	return nil
}

// --- Document Handlers ---

func loadScene(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return missing("scene JSON")
	}
	scene, err := document.Parse([]byte(args[0].String()), b.Toolkit())
	if err != nil {
		return result(err)
	}
	b.Load(scene.Elements)
	return result(nil)
}

func loadSampleScene(this js.Value, args []js.Value) any {
	scene, err := document.NewSample(b.Toolkit())
	if err != nil {
		return result(err)
	}
	b.Load(scene.Elements)
	return result(nil)
}

func getScene(this js.Value, args []js.Value) any {
	data, err := document.New(b.Size(), b.Elements()).JSON()
	if err != nil {
		return js.ValueOf("{}")
	}
	return js.ValueOf(string(data))
}

// --- Query Handlers ---

// renderFrame returns the draw commands for the current board as JSON.
func renderFrame(this js.Value, args []js.Value) any {
	rec := record.New()
	_ = b.Render(rec, resolver)
	out, _ := record.DrawCommandsToJSON(rec.Commands())
	return js.ValueOf(out)
}

func getState(this js.Value, args []js.Value) any {
	state := map[string]any{
		"tool":     b.Tool(),
		"color":    b.Color(),
		"action":   b.Action(),
		"cursor":   b.Cursor(),
		"history":  b.History(),
		"editing":  b.Editing(),
		"viewport": b.Viewport(),
	}
	data, err := json.Marshal(state)
	if err != nil {
		return js.ValueOf("{}")
	}
	return js.ValueOf(string(data))
}

func hitTest(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	p := b.Viewport().ClientToCanvas(geom.Point{X: args[0].Float(), Y: args[1].Float()})
	hit, ok := b.HitTest(p)
	if !ok {
		return js.ValueOf("")
	}
	return js.ValueOf(hit.Element.ID)
}
