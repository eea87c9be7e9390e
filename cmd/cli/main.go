package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/dmitrival/quickvault/internal/cli"
	"github.com/dmitrival/quickvault/internal/config"
	"github.com/dmitrival/quickvault/internal/logging"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	zl, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() { _ = zl.Sync() }()

	app, err := cli.NewApp(cfg, logging.NewZapLogger(zl))
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(context.Background())
}
