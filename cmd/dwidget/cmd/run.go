package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/go-drift/dwidget/cmd/dwidget/internal/config"
	"github.com/go-drift/dwidget/cmd/dwidget/internal/watch"
	"github.com/go-drift/dwidget/pkg/errors"
	"github.com/go-drift/dwidget/pkg/platform"
	"github.com/go-drift/dwidget/pkg/script"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Open a scene in a native window",
		Long: `Open a scene file in a native window.

The scene defaults to the scene entry of dwidget.yaml. Click handlers run as
Lua; quit() closes the window. The scene is reloaded when the file changes
unless watching is disabled.

Flags:
  --debug            Draw layout and render bounds of every widget
  --inspect ADDR     Serve the widget tree on ADDR (see dwidget inspect)
  --no-watch         Do not reload the scene when the file changes
  --size WxH         Initial window size in points`,
		Usage: "dwidget run [scene.yaml] [--debug] [--inspect ADDR] [--no-watch] [--size WxH]",
		Run:   runRun,
	})
}

type runOptions struct {
	scene   string
	debug   bool
	inspect string
	noWatch bool
	width   int
	height  int
}

func runRun(args []string) error {
	opts, err := parseRunArgs(args)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(cwd)
	if err != nil {
		return err
	}
	applyRunOptions(cfg, opts)
	if cfg.ScenePath == "" {
		return fmt.Errorf("scene is required\n\nUsage: dwidget run <scene.yaml>")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host := platform.NewHost(platform.Options{Title: cfg.Title, Width: cfg.Width, Height: cfg.Height})
	win := host.Window()
	defer win.Destroy()
	win.SetDebug(cfg.Debug)

	engine := script.New(script.DefaultConfig())
	defer engine.Close()
	engine.OnQuit(win.Close)

	sess := newSession(win, engine, cfg.ScenePath, cfg.Title)
	if err := sess.load(); err != nil {
		return err
	}

	if cfg.InspectAddr != "" {
		addr, err := win.StartDebugServer(cfg.InspectAddr)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Inspect with: dwidget inspect %s\n", addr)
	}

	if cfg.Watch {
		w, err := watch.New(watch.Options{
			OnChange: func(string) { sess.scheduleReload() },
			OnError: func(err error) {
				errors.ReportErr("dwidget.watch", errors.KindConfig, err)
			},
		}, cfg.ScenePath)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", cfg.ScenePath, err)
		}
		defer w.Close()
		go w.Run(ctx)
	}

	return host.Run(ctx)
}

func parseRunArgs(args []string) (runOptions, error) {
	var opts runOptions
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "--debug":
			opts.debug = true
		case "--no-watch":
			opts.noWatch = true
		case "--inspect":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("--inspect requires an address")
			}
			opts.inspect = args[i+1]
			i++
		case "--size":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("--size requires WxH")
			}
			w, h, err := parseSize(args[i+1])
			if err != nil {
				return opts, err
			}
			opts.width, opts.height = w, h
			i++
		default:
			if strings.HasPrefix(arg, "-") {
				return opts, fmt.Errorf("unknown flag %s", arg)
			}
			if opts.scene != "" {
				return opts, fmt.Errorf("only one scene can be run (got %s and %s)", opts.scene, arg)
			}
			opts.scene = arg
		}
	}
	return opts, nil
}

func applyRunOptions(cfg *config.Resolved, opts runOptions) {
	if opts.scene != "" {
		cfg.ScenePath = absPath(opts.scene)
	}
	if opts.debug {
		cfg.Debug = true
	}
	if opts.inspect != "" {
		cfg.InspectAddr = opts.inspect
	}
	if opts.noWatch {
		cfg.Watch = false
	}
	if opts.width > 0 {
		cfg.Width, cfg.Height = opts.width, opts.height
	}
}

// parseSize parses WxH with positive integers.
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if ok {
		w, errW := strconv.Atoi(ws)
		h, errH := strconv.Atoi(hs)
		if errW == nil && errH == nil && w > 0 && h > 0 {
			return w, h, nil
		}
	}
	return 0, 0, fmt.Errorf("invalid size %q (want WxH, e.g. 640x480)", s)
}
