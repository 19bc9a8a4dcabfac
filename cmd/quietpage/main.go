package main

import (
	"context"
	"log"
	"os"

	"github.com/quietpage/quietpage/internal/app/config"
	"github.com/quietpage/quietpage/internal/buildinfo"
	"github.com/quietpage/quietpage/internal/cli"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
