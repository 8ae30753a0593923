package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-drift/dwidget/pkg/graphics"
	"github.com/go-drift/dwidget/pkg/widgets"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the widget tree structure and the drawing operations of
// the last frame.
type Snapshot struct {
	WidgetTree *WidgetNode `json:"widgetTree"`
	DisplayOps []DisplayOp `json:"displayOps,omitempty"`
}

// WidgetNode represents a node in the serialized widget tree.
type WidgetNode struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Bounds     [4]float64     `json:"bounds"`
	Properties map[string]any `json:"props,omitempty"`
	Children   []*WidgetNode  `json:"children,omitempty"`
}

// CaptureSnapshot captures the current tree and the last frame. Pump first
// so that layout is current.
func (t *WidgetTester) CaptureSnapshot() *Snapshot {
	snap := &Snapshot{DisplayOps: t.FrameOps()}
	if root := t.window.Root(); root != nil {
		snap.WidgetTree = captureWidgetNode(root, &typeCounter{})
	}
	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When
// DWIDGET_UPDATE_SNAPSHOTS=1 is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("DWIDGET_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: DWIDGET_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: DWIDGET_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this snapshot and other. Returns
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

// --- Internal ---

// typeCounter assigns stable IDs like "Box#0", "Box#1".
type typeCounter struct {
	counts map[string]int
}

func (c *typeCounter) next(typeName string) string {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	n := c.counts[typeName]
	c.counts[typeName] = n + 1
	return fmt.Sprintf("%s#%d", typeName, n)
}

func captureWidgetNode(w widgets.Widget, counter *typeCounter) *WidgetNode {
	typeName := widgetTypeName(w)
	b := w.WidgetBase().LayoutBounds()
	node := &WidgetNode{
		ID:     counter.next(typeName),
		Type:   typeName,
		Bounds: [4]float64{round2(b.Left), round2(b.Top), round2(b.Right), round2(b.Bottom)},
	}
	if props := captureProperties(w); len(props) > 0 {
		node.Properties = props
	}
	for _, child := range w.WidgetBase().ChildWidgets() {
		node.Children = append(node.Children, captureWidgetNode(child, counter))
	}
	return node
}

func widgetTypeName(w widgets.Widget) string {
	t := reflect.TypeOf(w)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// captureProperties serializes the properties that identify a widget in a
// diff. Colors of button parts follow hover state and are left out.
func captureProperties(w widgets.Widget) map[string]any {
	props := make(map[string]any)
	if id := w.WidgetBase().ID(); id != "" {
		props["id"] = id
	}
	if !w.WidgetBase().Visible() {
		props["visible"] = false
	}
	switch w := w.(type) {
	case *widgets.Text:
		props["text"] = w.Text()
		props["fontSize"] = round2(w.FontSize())
		props["color"] = serializeColor(w.Color())
	case *widgets.Button:
		props["text"] = w.Text()
	case *widgets.Stack:
		props["orientation"] = w.Orientation().String()
	case *widgets.Box:
		props["background"] = serializeColor(w.BackgroundColor())
	}
	return props
}

func serializeColor(c graphics.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

func round2(v float32) float64 {
	return math.Round(float64(v)*100) / 100
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	maxLen := len(expectedLines)
	if len(actualLines) > maxLen {
		maxLen = len(actualLines)
	}

	for i := 0; i < maxLen; i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
