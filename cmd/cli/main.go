package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/specialistvlad/nodebridge/internal/app"
	"github.com/specialistvlad/nodebridge/internal/cli"
)

// main is the entrypoint for the nodebridge application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The real main function handles errors and exit codes.
	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:], nil); err != nil {
		stop()
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Documents go to outW; usage text and logs go to errW.
func run(ctx context.Context, outW, errW io.Writer, args []string, environ map[string]string) error {
	appConfig, shouldExit, err := cli.Parse(args, errW, environ)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	nodebridgeApp, err := app.NewApp(outW, errW, appConfig)
	if err != nil {
		return fmt.Errorf("application startup failed: %w", err)
	}

	return nodebridgeApp.Run(ctx)
}
