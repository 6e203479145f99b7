package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/idilsaglam/matters/internal/cli"
	"github.com/idilsaglam/matters/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		ui.Fail(os.Stderr, err.Error())
		stop()
		os.Exit(1)
	}
}
