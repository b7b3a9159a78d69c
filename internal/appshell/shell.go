package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Main runs a command-line entrypoint with SIGINT/SIGTERM bound to ctx and
// exits with its status.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	// Normalize cancellation exit code.
	if ctx.Err() != nil && code == 0 {
		code = ExitInterrupted
	}

	stop()
	os.Exit(code)
}

// ExitInterrupted is the conventional status for a run stopped by SIGINT.
const ExitInterrupted = 130
