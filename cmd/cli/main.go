// Package main is the entry point for travel-reimbursement CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"travel-reimbursement/cmd/cli/cmd"
	"travel-reimbursement/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cmd.Execute(ctx)
	stop()
	logging.Sync()

	if err != nil {
		os.Exit(1)
	}
}
