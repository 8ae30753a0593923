package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-drift/dwidget/pkg/window"
)

// DefaultInspectAddr is used when neither the command line nor dwidget.yaml
// names an address.
const DefaultInspectAddr = "localhost:9273"

var inspectClient = &http.Client{Timeout: 5 * time.Second}

func init() {
	RegisterCommand(&Command{
		Name:  "inspect",
		Short: "Print the widget tree of a running window",
		Long: `Print the widget tree of a window started with "dwidget run --inspect ADDR".

Each line shows the widget type, its id, and its layout bounds in points.
Widgets that are hidden or wait for a pipeline pass are marked.

Flags:
  --window   Print the window state instead of the tree
  --json     Print the raw JSON response`,
		Usage: "dwidget inspect [ADDR] [--window] [--json]",
		Run:   runInspect,
	})
}

type inspectOptions struct {
	addr   string
	window bool
	json   bool
}

func runInspect(args []string) error {
	var opts inspectOptions
	for _, arg := range args {
		switch arg {
		case "--window":
			opts.window = true
		case "--json":
			opts.json = true
		default:
			if strings.HasPrefix(arg, "-") {
				return fmt.Errorf("unknown flag %s", arg)
			}
			opts.addr = arg
		}
	}
	if opts.addr == "" {
		if cwd, err := os.Getwd(); err == nil {
			if cfg, err := resolveConfig(cwd); err == nil {
				opts.addr = cfg.InspectAddr
			}
		}
	}
	if opts.addr == "" {
		opts.addr = DefaultInspectAddr
	}
	return inspect(stdout, opts)
}

func inspect(w io.Writer, opts inspectOptions) error {
	path := "/widget-tree"
	if opts.window {
		path = "/window"
	}
	data, err := fetch(opts.addr, path)
	if err != nil {
		return err
	}
	if opts.json {
		_, err := w.Write(data)
		return err
	}

	if opts.window {
		var info window.Info
		if err := json.Unmarshal(data, &info); err != nil {
			return fmt.Errorf("invalid window response: %w", err)
		}
		printInfo(w, info)
		return nil
	}
	var tree window.WidgetNode
	if err := json.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("invalid widget tree response: %w", err)
	}
	printTree(w, tree)
	return nil
}

func fetch(addr, path string) ([]byte, error) {
	base := addr
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	resp, err := inspectClient.Get(strings.TrimSuffix(base, "/") + path)
	if err != nil {
		return nil, fmt.Errorf("failed to reach %s: %w", addr, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s%s: %s: %s", addr, path, resp.Status, strings.TrimSpace(string(data)))
	}
	return data, nil
}

func printInfo(w io.Writer, info window.Info) {
	fmt.Fprintf(w, "Title:   %s\n", info.Title)
	fmt.Fprintf(w, "Size:    %gx%g px\n", info.ClientSize.Width, info.ClientSize.Height)
	fmt.Fprintf(w, "Scale:   %g\n", info.Scale)
	fmt.Fprintf(w, "Debug:   %t\n", info.Debug)
	root := "none"
	if info.HasRoot {
		root = info.RootType
	}
	fmt.Fprintf(w, "Root:    %s\n", root)
	fmt.Fprintf(w, "Target:  %t\n", info.HasTarget)
	fmt.Fprintf(w, "Closed:  %t\n", info.Closed)
}

func printTree(w io.Writer, n window.WidgetNode) {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", n.Depth))
	b.WriteString(n.Type)
	if n.ID != "" {
		fmt.Fprintf(&b, " #%s", n.ID)
	}
	if lb := n.LayoutBounds; lb != nil {
		fmt.Fprintf(&b, " [%g,%g %gx%g]", lb.Left, lb.Top, lb.Right-lb.Left, lb.Bottom-lb.Top)
	}
	var marks []string
	if !n.Visible {
		marks = append(marks, "hidden")
	}
	if n.NeedsLayout {
		marks = append(marks, "needs layout")
	}
	if n.NeedsPaint {
		marks = append(marks, "needs paint")
	}
	if len(marks) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(marks, ", "))
	}
	fmt.Fprintln(w, b.String())
	for _, c := range n.Children {
		printTree(w, c)
	}
}
