package main

import (
	"context"
	"log"
	"os"

	"github.com/visitdesk/authcore/internal/buildinfo"
	"github.com/visitdesk/authcore/internal/cli"
	"github.com/visitdesk/authcore/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
