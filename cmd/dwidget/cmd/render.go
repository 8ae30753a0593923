package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-drift/dwidget/pkg/errors"
	"github.com/go-drift/dwidget/pkg/rendering/raster"
	"github.com/go-drift/dwidget/pkg/window"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render a scene to a PNG image",
		Long: `Render a scene file with the software rasterizer and write a PNG.

No window is opened and click handlers are not run.

Flags:
  -o, --output FILE  Output file (default: the scene name with .png)
  --size WxH         Image size in points (default from dwidget.yaml)
  --scale S          Pixels per point (default 1)
  --debug            Draw layout and render bounds of every widget`,
		Usage: "dwidget render [scene.yaml] [-o out.png] [--size WxH] [--scale S] [--debug]",
		Run:   runRender,
	})
}

type renderOptions struct {
	scene  string
	output string
	width  int
	height int
	scale  float32
	debug  bool
}

func runRender(args []string) error {
	opts, err := parseRenderArgs(args)
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

	path := cfg.ScenePath
	if opts.scene != "" {
		path = absPath(opts.scene)
	}
	if path == "" {
		return fmt.Errorf("scene is required\n\nUsage: dwidget render <scene.yaml> [-o out.png]")
	}
	if opts.output == "" {
		opts.output = strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	}
	if opts.width == 0 {
		opts.width, opts.height = cfg.Width, cfg.Height
	}
	opts.debug = opts.debug || cfg.Debug

	if err := renderScene(path, opts); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s\n", opts.output)
	return nil
}

// renderScene paints one frame of the scene at path into opts.output.
func renderScene(path string, opts renderOptions) error {
	scale := opts.scale
	if scale <= 0 {
		scale = 1
	}
	surface := window.NewHeadless(raster.NewDevice(nil),
		int(float32(opts.width)*scale), int(float32(opts.height)*scale))
	surface.SetDPI(scale * window.DefaultDPI)

	win := window.New(surface)
	defer win.Destroy()
	win.SetDebug(opts.debug)

	sess := newSession(win, nil, path, "")
	if err := sess.load(); err != nil {
		return err
	}
	if err := win.Paint(); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	target, ok := win.Target().(*raster.Target)
	if !ok {
		return errors.New("render: no raster target")
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return err
	}
	if err := target.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", opts.output, err)
	}
	return f.Close()
}

func parseRenderArgs(args []string) (renderOptions, error) {
	var opts renderOptions
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--debug":
			opts.debug = true
			continue
		case "-o", "--output", "--size", "--scale":
		default:
			if strings.HasPrefix(arg, "-") {
				return opts, fmt.Errorf("unknown flag %s", arg)
			}
			if opts.scene != "" {
				return opts, fmt.Errorf("only one scene can be rendered (got %s and %s)", opts.scene, arg)
			}
			opts.scene = arg
			continue
		}

		if i+1 >= len(args) {
			return opts, fmt.Errorf("%s requires a value", arg)
		}
		value := args[i+1]
		i++
		switch arg {
		case "-o", "--output":
			opts.output = value
		case "--size":
			w, h, err := parseSize(value)
			if err != nil {
				return opts, err
			}
			opts.width, opts.height = w, h
		case "--scale":
			s, err := strconv.ParseFloat(value, 32)
			if err != nil || s <= 0 {
				return opts, fmt.Errorf("invalid scale %q", value)
			}
			opts.scale = float32(s)
		}
	}
	return opts, nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
