package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Fardeen26/flashfeed/internal/app"
	"github.com/Fardeen26/flashfeed/pkg/config"
	"github.com/Fardeen26/flashfeed/pkg/logger"
	"go.uber.org/fx"
)

func main() {
	log := logger.New(logger.Opts{})

	cfg, err := config.New()
	if err != nil {
		log.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	application := fx.New(
		fx.Logger(log),
		app.Module(cfg),
	)

	if err := application.Start(context.Background()); err != nil {
		log.Error("Failed to start application", "error", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	if err := application.Stop(context.Background()); err != nil {
		log.Error("Failed to stop application", "error", err)
		os.Exit(1)
	}
}
