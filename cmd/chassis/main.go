package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/skyrig/chassis/internal/app"
	"github.com/skyrig/chassis/internal/cli"
	"github.com/skyrig/chassis/internal/conftree"
)

// main is the entrypoint for the chassis tool.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) error {
	opts, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	a, err := app.Init(context.Background(), os.Stderr, opts.App)
	if err != nil {
		return err
	}
	defer a.Close()

	if opts.Query != "" {
		node, err := a.Tree().Navigate(opts.Query)
		if err != nil {
			return err
		}
		if !node.Exists() {
			return fmt.Errorf("no node at path %q", opts.Query)
		}
		fmt.Fprintln(outW, node.Value())
		return nil
	}

	switch opts.Print {
	case "tree":
		return conftree.Dump(outW, a.Tree())
	default:
		fmt.Fprintln(outW, a.Resolved().Text)
	}
	return nil
}
