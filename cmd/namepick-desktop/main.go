package main

import (
	"context"
	"os"

	"github.com/spf13/pflag"

	"github.com/conorfennell/namepick/internal/app"
	"github.com/conorfennell/namepick/internal/config"
	"github.com/conorfennell/namepick/internal/desktop"
)

func main() {
	fs := pflag.NewFlagSet("namepick-desktop", pflag.ExitOnError)
	configPath := fs.StringP("config", "c", "namepick.yaml", "Config file path")
	config.RegisterFlags(fs)
	fs.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath, fs)
	app.Exit(err)
	app.Exit(app.SetupLogging(cfg.Log, os.Stderr))

	ctx := context.Background()
	sess, closeStore, err := app.OpenSession(ctx, cfg)
	app.Exit(err)
	defer closeStore()

	app.Exit(desktop.Run(ctx, sess))
	app.WarnUnsaved(sess)
}
