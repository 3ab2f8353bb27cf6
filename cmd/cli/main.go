package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/aymenbt/sportera/internal/buildinfo"
	"github.com/aymenbt/sportera/internal/client/cli"
	"github.com/aymenbt/sportera/internal/client/config"
	"github.com/aymenbt/sportera/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
