package main

import (
	"context"
	"log"
	"os"

	"offstash/internal/buildinfo"
	"offstash/internal/cli"
	"offstash/internal/config"
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

	app.Run(ctx)

}
