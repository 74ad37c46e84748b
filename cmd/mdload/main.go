// Package main is the entrypoint of mdload.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"mdload/internal/cfg"
	"mdload/internal/domain/errconsts"
	"mdload/internal/utils/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cfg.Execute(ctx)
	cancel()

	switch {
	case err == nil:
		return
	case errors.Is(err, errconsts.ErrEntriesFailed):
		// Per-entry errors were already reported in the summary.
	case errors.Is(err, context.Canceled):
		logging.W("Interrupted")
	default:
		logging.E("Error: %v", err)
	}
	os.Exit(1)
}
