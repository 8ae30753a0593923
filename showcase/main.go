package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-drift/dwidget/pkg/errors"
	"github.com/go-drift/dwidget/pkg/platform"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host := platform.NewHost(platform.Options{Title: "Demo App", Width: 480, Height: 320})
	win := host.Window()
	defer win.Destroy()

	app := newDemoApp(win.Close)
	win.SetRoot(app.Root())

	// DWIDGET_INSPECT=localhost:9273 serves the tree to dwidget inspect.
	if addr := os.Getenv("DWIDGET_INSPECT"); addr != "" {
		if _, err := win.StartDebugServer(addr); err != nil {
			return err
		}
	}
	if os.Getenv("DWIDGET_DEBUG") == "1" {
		win.SetDebug(true)
	}

	host.Lifecycle().AddHandler(func(state platform.LifecycleState) {
		errors.Logger().Debug("lifecycle", "state", state)
	})
	return host.Run(ctx)
}
