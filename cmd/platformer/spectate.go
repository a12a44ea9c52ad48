package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/platform/spectate"
)

// startSpectator serves a websocket spectator stream on addr and attaches it
// to every engine. An empty addr disables it. The returned func stops it.
func startSpectator(addr string) func() {
	if addr == "" {
		return func() {}
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Warn("cannot start spectator stream", "address", addr, "error", err)
		return func() {}
	}

	hub := spectate.NewHub(spectate.WithLogger(logger.WithPrefix("spectate")))
	srv := &http.Server{
		Handler:           hub,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("spectator server error", "error", err)
		}
	}()

	platformer.SetSpectator(hub)
	logger.Info("spectator stream listening", "address", "ws://"+ln.Addr().String())

	return func() {
		platformer.SetSpectator(nil)
		hub.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		//nolint:errcheck // Best-effort shutdown on exit
		srv.Shutdown(ctx)
	}
}
