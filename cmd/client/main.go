package main

import (
	"context"

	"github.com/shopkart-io/shopkart/internal/client/cli"
	"github.com/shopkart-io/shopkart/internal/client/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)
	app.Run(ctx)
}
