package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/avelichko/petbook/internal/buildinfo"
	"github.com/avelichko/petbook/internal/client/cli"
	"github.com/avelichko/petbook/internal/client/config"
	"github.com/avelichko/petbook/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewZerologLogger(cfg.LogLevel)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	fmt.Println("Petbook CLI (type 'help' for commands)")
	app.Run(ctx)
}
