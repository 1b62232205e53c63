package main

import (
	"context"
	"log"
	"os"

	"github.com/example/reserva/internal/buildinfo"
	"github.com/example/reserva/internal/client/cli"
	"github.com/example/reserva/internal/client/config"
	"github.com/example/reserva/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
