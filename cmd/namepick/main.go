package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/conorfennell/namepick/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.Exit(NewRootCommand().ExecuteContext(ctx))
}
