package window

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"reflect"
	"sync"
	"time"

	"github.com/go-drift/dwidget/pkg/errors"
	"github.com/go-drift/dwidget/pkg/graphics"
	"github.com/go-drift/dwidget/pkg/widgets"
)

// debugServer serves the widget tree of a window over HTTP.
type debugServer struct {
	server   *http.Server
	listener net.Listener
	mu       sync.Mutex
}

// snapshotTimeout bounds how long a request waits for the UI goroutine.
const snapshotTimeout = 2 * time.Second

// maxTreeDepth limits recursion depth to prevent stack overflow from malformed trees.
const maxTreeDepth = 500

// WidgetNode is a node of the serialized widget tree.
//
// Measured and bounds are only present when the corresponding resource is
// valid; inspecting a window never runs the pipeline.
type WidgetNode struct {
	Type         string       `json:"type"`
	ID           string       `json:"id,omitempty"`
	Depth        int          `json:"depth"`
	Visible      bool         `json:"visible"`
	Measured     *NodeSize    `json:"measured,omitempty"`
	LayoutBounds *NodeBounds  `json:"layoutBounds,omitempty"`
	RenderBounds *NodeBounds  `json:"renderBounds,omitempty"`
	NeedsMeasure bool         `json:"needsMeasure"`
	NeedsLayout  bool         `json:"needsLayout"`
	NeedsPaint   bool         `json:"needsPaint"`
	Children     []WidgetNode `json:"children,omitempty"`
}

// NodeSize is a JSON form of graphics.Size.
type NodeSize struct {
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

// NodeBounds is a JSON form of graphics.Bounds.
type NodeBounds struct {
	Left   float32 `json:"left"`
	Top    float32 `json:"top"`
	Right  float32 `json:"right"`
	Bottom float32 `json:"bottom"`
}

// Info describes the window state.
type Info struct {
	Title      string   `json:"title"`
	ClientSize NodeSize `json:"clientSize"`
	Scale      float32  `json:"scale"`
	Debug      bool     `json:"debug"`
	HasRoot    bool     `json:"hasRoot"`
	RootType   string   `json:"rootType,omitempty"`
	HasTarget  bool     `json:"hasTarget"`
	Closed     bool     `json:"closed"`
}

// Snapshot serializes the widget tree. It must run on the UI goroutine.
func (w *Window) Snapshot() (WidgetNode, bool) {
	root := w.Root()
	if root == nil {
		return WidgetNode{}, false
	}
	return serializeWidgetTree(root, 0), true
}

// Info returns the window state. It must run on the UI goroutine.
func (w *Window) Info() Info {
	info := Info{
		Title:     w.Title(),
		Scale:     w.Scale(),
		Debug:     w.Debug(),
		HasTarget: w.Target() != nil,
		Closed:    w.closed,
	}
	size := w.surface.ClientSize()
	info.ClientSize = NodeSize{Width: size.Width, Height: size.Height}
	if root := w.Root(); root != nil {
		info.HasRoot = true
		info.RootType = reflect.TypeOf(root).String()
	}
	return info
}

// StartDebugServer serves the widget tree on addr (host:port). It returns the
// bound address, which differs from addr when the port is 0. Starting an
// already running server returns its address.
func (w *Window) StartDebugServer(addr string) (string, error) {
	s := &w.debug
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return s.listener.Addr().String(), nil
	}

	// Bind listener first to fail fast on port conflicts
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("debug server listen: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/widget-tree", w.handleWidgetTree)
	mux.HandleFunc("/window", w.handleWindow)
	mux.HandleFunc("/health", handleHealth)

	server := &http.Server{Handler: mux}
	s.server = server
	s.listener = listener

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			// Server failed - clear state so it can be restarted
			s.mu.Lock()
			s.server = nil
			s.listener = nil
			s.mu.Unlock()
			errors.Logger().Error("debug server stopped", "err", err)
		}
	}()

	errors.Logger().Info("debug server listening", "addr", listener.Addr().String())
	return listener.Addr().String(), nil
}

// StopDebugServer gracefully shuts down the debug server.
func (w *Window) StopDebugServer() {
	s := &w.debug
	s.mu.Lock()
	server := s.server
	s.server = nil
	s.listener = nil
	s.mu.Unlock()

	if server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()
	server.Shutdown(ctx)
}

// onUIGoroutine runs fn through the dispatch queue and waits for it.
func (w *Window) onUIGoroutine(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	w.Dispatch(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Window) handleWidgetTree(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(rw, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), snapshotTimeout)
	defer cancel()

	var (
		tree WidgetNode
		ok   bool
	)
	if err := w.onUIGoroutine(ctx, func() { tree, ok = w.Snapshot() }); err != nil {
		http.Error(rw, fmt.Sprintf("snapshot: %v", err), http.StatusGatewayTimeout)
		return
	}
	if !ok {
		http.Error(rw, "no widget tree", http.StatusServiceUnavailable)
		return
	}
	writeJSON(rw, tree)
}

func (w *Window) handleWindow(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(rw, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), snapshotTimeout)
	defer cancel()

	var info Info
	if err := w.onUIGoroutine(ctx, func() { info = w.Info() }); err != nil {
		http.Error(rw, fmt.Sprintf("snapshot: %v", err), http.StatusGatewayTimeout)
		return
	}
	writeJSON(rw, info)
}

// handleHealth returns a simple health check response.
func handleHealth(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(rw, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rw.Header().Set("Content-Type", "application/json")
	rw.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(rw http.ResponseWriter, v any) {
	// Encode to buffer first so we can catch errors
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(rw, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}

	rw.Header().Set("Content-Type", "application/json")
	rw.Write(data)
}

// serializeWidgetTree recursively converts a widget tree to JSON-serializable form.
func serializeWidgetTree(wd widgets.Widget, depth int) WidgetNode {
	b := wd.WidgetBase()
	t := reflect.TypeOf(wd)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	node := WidgetNode{
		Type:         t.Name(),
		ID:           b.ID(),
		Depth:        depth,
		Visible:      b.Visible(),
		NeedsMeasure: !widgets.MeasureResource.IsValid(wd),
		NeedsLayout:  !widgets.LayoutResource.IsValid(wd),
		NeedsPaint:   !widgets.RenderContentResource.IsValid(wd),
	}
	if m, ok := widgets.MeasureResource.Peek(wd); ok {
		node.Measured = &NodeSize{Width: m.Width, Height: m.Height}
	}
	if lc, ok := widgets.LayoutResource.Peek(wd); ok {
		node.LayoutBounds = nodeBounds(lc.LayoutBounds)
	}
	if rb, ok := widgets.RenderBoundsResource.Peek(wd); ok {
		node.RenderBounds = nodeBounds(rb)
	}

	if depth < maxTreeDepth {
		for _, c := range b.ChildWidgets() {
			node.Children = append(node.Children, serializeWidgetTree(c, depth+1))
		}
	}
	return node
}

func nodeBounds(b graphics.Bounds) *NodeBounds {
	return &NodeBounds{Left: b.Left, Top: b.Top, Right: b.Right, Bottom: b.Bottom}
}
