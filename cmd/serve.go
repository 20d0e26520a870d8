package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/lepinkainen/coelho/internal/config"
	"github.com/lepinkainen/coelho/internal/server"
)

var runServer = server.Run

// ServeCmd runs the HTTP surface
type ServeCmd struct {
	Addr string `help:"Listen address (default from server.addr)"`
}

func (s *ServeCmd) Run() error {
	settings := config.Load()
	addr := s.Addr
	if addr == "" {
		addr = settings.ServerAddr
	}

	r, gateway, err := newResolver(settings)
	if err != nil {
		return err
	}
	defer closeGateway(gateway)

	if parseLevel(settings.LogLevel) != slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runServer(ctx, addr, server.NewRouter(r))
}
