package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd(version, newApp())
	if err := fang.Execute(ctx, rootCmd, fang.WithErrorHandler(jsonErrorHandler)); err != nil {
		stop()
		os.Exit(1)
	}
}
