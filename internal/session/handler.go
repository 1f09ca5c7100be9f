package session

import (
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/inkboard/inkboard/internal/asset"
	"github.com/inkboard/inkboard/internal/board"
	"github.com/inkboard/inkboard/internal/element"
	"github.com/inkboard/inkboard/internal/typeid"
)

// Handler upgrades GET /ws/board and runs one board per connection.
type Handler struct {
	hub            *Hub
	store          *asset.Store
	kit            element.Toolkit
	board          board.Config
	originPatterns []string
}

func NewHandler(hub *Hub, store *asset.Store, kit element.Toolkit, cfg board.Config, originPatterns []string) *Handler {
	return &Handler{
		hub:            hub,
		store:          store,
		kit:            kit,
		board:          cfg,
		originPatterns: originPatterns,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	sessionID := typeid.NewSessionID()
	b := board.New(h.board,
		board.WithToolkit(h.kit),
		board.WithLogger(slog.Default().With("session", sessionID)),
	)
	client := NewClient(h.hub, conn, b, h.store, sessionID, uuid.New().String())

	// Queued before any frame so the welcome is always the first message.
	client.sendWelcome()
	h.hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}
