// Package session runs an interactive board over a websocket. Each
// connection gets its own board; every input message is answered with a
// frame to repaint or an error.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/coder/websocket"

	"github.com/inkboard/inkboard/internal/asset"
	"github.com/inkboard/inkboard/internal/board"
	"github.com/inkboard/inkboard/internal/document"
	"github.com/inkboard/inkboard/internal/element"
	"github.com/inkboard/inkboard/internal/geom"
	"github.com/inkboard/inkboard/internal/render"
	"github.com/inkboard/inkboard/internal/render/record"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 4 << 20 // scene.load carries whole documents
)

var errUnknownType = errors.New("session: unknown message type")

type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	board     *board.Board
	store     *asset.Store
	resolver  render.Resolver
	SessionID string
	ClientID  string
}

func NewClient(hub *Hub, conn *websocket.Conn, b *board.Board, store *asset.Store, sessionID, clientID string) *Client {
	return &Client{
		hub:       hub,
		conn:      conn,
		send:      make(chan []byte, 256),
		board:     b,
		store:     store,
		resolver:  asset.NewResolver(store, b.Element),
		SessionID: sessionID,
		ClientID:  clientID,
	}
}

func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			slog.Debug("read error", "error", err, "session", c.SessionID)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("invalid message", "error", err, "session", c.SessionID)
			c.sendError(0, fmt.Errorf("%w: %v", element.ErrMalformedUpdate, err))
			continue
		}

		c.handleMessage(&msg)
	}
}

func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				slog.Debug("write error", "error", err, "session", c.SessionID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "error", err)
		return
	}

	select {
	case c.send <- data:
	default:
		slog.Warn("client send buffer full, dropping message", "session", c.SessionID)
	}
}

func (c *Client) sendPayload(typ string, seq int64, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal payload", "type", typ, "error", err)
		return
	}
	c.Send(&Message{Type: typ, Seq: seq, Payload: data})
}

func (c *Client) sendWelcome() {
	size := c.board.Size()
	tools := []string{string(board.ToolSelection)}
	fields := make(map[element.Kind][]element.Field, len(element.Kinds))
	for _, k := range element.Kinds {
		tools = append(tools, string(k))
		fields[k] = element.OptionFields(k)
	}
	c.sendPayload(TypeWelcome, 0, WelcomePayload{
		SessionID: c.SessionID,
		ClientID:  c.ClientID,
		Width:     size.Width,
		Height:    size.Height,
		Tools:     tools,
		Options:   fields,
	})
}

func (c *Client) sendError(seq int64, err error) {
	c.sendPayload(TypeError, seq, ErrorPayload{Seq: seq, Code: errorCode(err), Message: err.Error()})
}

func (c *Client) sendFrame(seq int64) {
	rec := record.New()
	// Per-element failures are logged by render; the rest still repaints.
	_ = c.board.Render(rec, c.resolver)

	commands := rec.Commands()
	if commands == nil {
		commands = []record.DrawCommand{}
	}
	c.sendPayload(TypeFrame, seq, FramePayload{
		Seq:      seq,
		Commands: commands,
		Cursor:   c.board.Cursor(),
		Tool:     c.board.Tool(),
		Color:    c.board.Color(),
		Action:   c.board.Action(),
		History:  c.board.History(),
		Editing:  c.board.Editing(),
		Viewport: c.board.Viewport(),
	})
}

func (c *Client) handleMessage(msg *Message) {
	err := c.apply(msg)
	if err != nil {
		slog.Warn("message rejected", "type", msg.Type, "error", err, "session", c.SessionID)
		c.sendError(msg.Seq, err)
		return
	}
	if msg.Type == TypeSceneGet {
		return
	}
	c.sendFrame(msg.Seq)
}

func (c *Client) apply(msg *Message) error {
	b := c.board
	switch msg.Type {
	case TypePointerDown, TypePointerMove, TypePointerUp:
		var p PointerPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		pt := geom.Point{X: p.X, Y: p.Y}
		switch msg.Type {
		case TypePointerDown:
			return b.PointerDown(pt)
		case TypePointerMove:
			return b.PointerMove(pt)
		default:
			return b.PointerUp(pt)
		}

	case TypeTextCommit:
		var p TextPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		return b.Blur(p.Text)

	case TypeUndo:
		b.Undo()
		return nil

	case TypeRedo:
		b.Redo()
		return nil

	case TypeDelete:
		var p DeletePayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		return b.Delete(p.ID)

	case TypeImagePlace:
		var p ImagePlacePayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		if _, err := c.store.Load(p.AssetID); err != nil {
			return err
		}
		_, err := b.PlaceImage([]byte(p.AssetID))
		return err

	case TypeToolSet:
		var p ToolPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		return b.SetTool(board.Tool(p.Tool))

	case TypeColorSet:
		var p ColorPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		return b.SetColor(p.Color)

	case TypeOptionsSet:
		var p OptionsPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		k, err := element.ParseKind(p.Kind)
		if err != nil {
			return err
		}
		return b.SetToolOptions(k, p.Options)

	case TypeViewportSet:
		var v geom.Viewport
		if err := decode(msg, &v); err != nil {
			return err
		}
		b.SetViewport(v)
		return nil

	case TypeSceneLoad:
		scene, err := document.Parse(msg.Payload, b.Toolkit())
		if err != nil {
			return err
		}
		b.Load(scene.Elements)
		return nil

	case TypeSceneGet:
		c.sendPayload(TypeScene, msg.Seq, document.New(b.Size(), b.Elements()))
		return nil
	}
	return fmt.Errorf("%w: %q", errUnknownType, msg.Type)
}

func decode(msg *Message, v any) error {
	if len(msg.Payload) == 0 {
		return fmt.Errorf("%w: %s without payload", element.ErrMalformedUpdate, msg.Type)
	}
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return fmt.Errorf("%w: %s payload: %v", element.ErrMalformedUpdate, msg.Type, err)
	}
	return nil
}

// errorCode names the error class for clients.
func errorCode(err error) string {
	switch {
	case errors.Is(err, element.ErrUnknownVariant), errors.Is(err, board.ErrUnknownTool):
		return "unknown_variant"
	case errors.Is(err, element.ErrInvalidGeometry):
		return "invalid_geometry"
	case errors.Is(err, element.ErrMalformedUpdate):
		return "malformed_update"
	case errors.Is(err, render.ErrResourceNotFound), errors.Is(err, board.ErrElementNotFound):
		return "not_found"
	case errors.Is(err, errUnknownType):
		return "unknown_type"
	}
	return "internal"
}
