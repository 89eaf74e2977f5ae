package system

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/homeplan/internal/cli"
	"github.com/julianstephens/homeplan/internal/constants"
	"github.com/julianstephens/homeplan/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Address to listen on." default:"${listen_addr}"`
}

func (cmd *ServeCmd) Run(ctx *cli.Context) error {
	gin.SetMode(gin.ReleaseMode)
	addr := cmd.Addr
	if addr == "" {
		addr = constants.DefaultListenAddr
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.Printf("Serving homeplan API on http://%s (Ctrl+C to stop)\n", addr)
	return server.Run(sigCtx, ctx.Store, addr)
}
