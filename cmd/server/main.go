package main

import (
	"context"
	"log"
	"os"

	"github.com/example/reserva/internal/buildinfo"
	"github.com/example/reserva/internal/logging"
	"github.com/example/reserva/internal/server"
	"github.com/example/reserva/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stdout)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
