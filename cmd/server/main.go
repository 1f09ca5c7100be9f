package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/inkboard/inkboard/internal/asset"
	"github.com/inkboard/inkboard/internal/config"
	"github.com/inkboard/inkboard/internal/element"
	"github.com/inkboard/inkboard/internal/export"
	mw "github.com/inkboard/inkboard/internal/middleware"
	"github.com/inkboard/inkboard/internal/render"
	"github.com/inkboard/inkboard/internal/render/raster"
	"github.com/inkboard/inkboard/internal/rough"
	"github.com/inkboard/inkboard/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)
	render.SetLogger(logger)

	// Text boxes are measured with the fonts the exporter draws with.
	kit := element.Toolkit{Generator: rough.NewGenerator(), Measurer: raster.DefaultFonts()}

	store := asset.NewStore(cfg.AssetDir)
	assetHandler := asset.NewHandler(store)
	exportHandler := export.NewHandler(store, kit)

	hub := session.NewHub()
	go hub.Run()
	sessionHandler := session.NewHandler(hub, store, kit, cfg.Board(), mw.OriginPatterns(cfg.Origins()))

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","sessions":%d}`, hub.Count())
	}).Methods("GET")

	// Image assets
	r.HandleFunc("/assets/upload", assetHandler.Upload).Methods("POST", "OPTIONS")
	r.HandleFunc("/assets/{id}", assetHandler.Get).Methods("GET")
	r.HandleFunc("/assets/{id}", assetHandler.Delete).Methods("DELETE", "OPTIONS")

	// PNG and PDF export of a scene document
	r.HandleFunc("/export/{format}", exportHandler.Export).Methods("POST", "OPTIONS")

	// WebSocket endpoint, one board per connection
	r.Handle("/ws/board", sessionHandler)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server", "sessions", hub.Count())
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
