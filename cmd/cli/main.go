package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/mcom-mall/mallcli/internal/client/cli"
	"github.com/mcom-mall/mallcli/internal/client/config"
	"github.com/mcom-mall/mallcli/internal/logging"
)

func main() {
	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() { _ = logger.Sync() }()

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.Run(ctx)
}
