package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"crontab/internal/app"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := app.New(os.Stdout, os.Stderr).Run(ctx, os.Args[1:])
	if err == nil {
		return
	}
	cancel()
	// commands that already printed their outcome only set the status
	if coder, ok := err.(interface{ ExitCode() int }); ok {
		os.Exit(coder.ExitCode())
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
