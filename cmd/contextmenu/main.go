// cmd/contextmenu/main.go
//
// This is the entry point for the contextmenu demo.
// Running `contextmenu` (or `contextmenu run`) in a directory loads
// .contextmenu/config.yaml from it and opens the panel TUI.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	return newRootCmd().ExecuteContext(ctx)
}
