// Package recording provides a rendering backend that records drawing
// operations instead of rasterizing them. Text metrics are synthetic and
// deterministic, which makes layouts reproducible in tests.
package recording

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/chewxy/math32"

	"github.com/go-drift/dwidget/pkg/graphics"
	"github.com/go-drift/dwidget/pkg/rendering"
)

const (
	// AdvanceFactor is the width of one rune relative to the font size.
	AdvanceFactor = 0.5
	// LineFactor is the line height relative to the font size.
	LineFactor = 1.25
)

// DisplayOp is one recorded drawing operation.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

func (o DisplayOp) String() string {
	if len(o.Params) == 0 {
		return o.Op
	}
	parts := make([]string, 0, len(o.Params))
	for _, k := range sortedKeys(o.Params) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, o.Params[k]))
	}
	return o.Op + "(" + strings.Join(parts, " ") + ")"
}

// Factory creates recording geometries, text formats and text layouts and
// counts how many of each were created.
type Factory struct {
	Geometries  int
	TextFormats int
	TextLayouts int
	Measures    int

	// FailTextFormat, when set, is returned by CreateTextFormat.
	FailTextFormat error
}

// NewFactory returns an empty recording factory.
func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) CreateRectangleGeometry(b graphics.Bounds) (rendering.Geometry, error) {
	f.Geometries++
	return rendering.RectGeometry{Rect: b}, nil
}

func (f *Factory) CreateTextFormat(spec rendering.TextFormatSpec) (rendering.TextFormat, error) {
	if f.FailTextFormat != nil {
		return nil, f.FailTextFormat
	}
	if spec.Size <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %g", spec.Size)
	}
	f.TextFormats++
	return textFormat{spec: spec}, nil
}

func (f *Factory) CreateTextLayout(text string, format rendering.TextFormat, maxSize graphics.Size) (rendering.TextLayout, error) {
	f.TextLayouts++
	return &TextLayout{text: text, format: format.Spec(), maxSize: maxSize, size: measure(text, format.Spec(), maxSize)}, nil
}

func (f *Factory) MeasureText(text string, format rendering.TextFormat, maxSize graphics.Size) (graphics.Size, error) {
	f.Measures++
	return measure(text, format.Spec(), maxSize), nil
}

// measure lays text out on one line per '\n', wraps lines wider than
// maxSize at spaces and clamps the result to maxSize.
func measure(text string, spec rendering.TextFormatSpec, maxSize graphics.Size) graphics.Size {
	if text == "" {
		return graphics.Size{}
	}
	advance := func(s string) float32 {
		return float32(utf8.RuneCountInString(s)) * spec.Size * AdvanceFactor
	}
	var width float32
	lines := rendering.WrapLines(text, maxSize.Width, advance)
	for _, l := range lines {
		width = math32.Max(width, advance(l))
	}
	height := float32(len(lines)) * spec.Size * LineFactor
	return graphics.Size{Width: math32.Min(width, maxSize.Width), Height: math32.Min(height, maxSize.Height)}
}

type textFormat struct {
	spec rendering.TextFormatSpec
}

func (f textFormat) Spec() rendering.TextFormatSpec {
	return f.spec
}

// TextLayout is a recorded text layout.
type TextLayout struct {
	text    string
	format  rendering.TextFormatSpec
	maxSize graphics.Size
	size    graphics.Size
}

func (l *TextLayout) Text() string                     { return l.text }
func (l *TextLayout) Size() graphics.Size              { return l.size }
func (l *TextLayout) MaxSize() graphics.Size           { return l.maxSize }
func (l *TextLayout) Format() rendering.TextFormatSpec { return l.format }

// Target records every call made on it.
type Target struct {
	factory *Factory
	ops     []DisplayOp
	size    graphics.Size
	scale   float32
	clips   []graphics.Bounds
	drawing bool

	// Frames counts completed EndDraw calls.
	Frames int
	// Brushes counts created brushes.
	Brushes int

	// FailEndDraw, when set, is returned by the next EndDraw and cleared.
	FailEndDraw error
	// FailFlush, when set, is returned by every Flush.
	FailFlush error
}

// NewTarget returns a target of the given pixel size drawing with factory.
// A nil factory gets a fresh one.
func NewTarget(pixels graphics.Size, factory *Factory) *Target {
	if factory == nil {
		factory = NewFactory()
	}
	return &Target{factory: factory, size: pixels, scale: 1}
}

// Ops returns the recorded operations.
func (t *Target) Ops() []DisplayOp {
	return t.ops
}

// OpNames returns the recorded operation names.
func (t *Target) OpNames() []string {
	names := make([]string, len(t.ops))
	for i, op := range t.ops {
		names[i] = op.Op
	}
	return names
}

// Count returns how many operations with the given name were recorded.
func (t *Target) Count(op string) int {
	n := 0
	for _, o := range t.ops {
		if o.Op == op {
			n++
		}
	}
	return n
}

// Reset clears the recorded operations.
func (t *Target) Reset() {
	t.ops = nil
}

// Drawing reports whether a frame is open.
func (t *Target) Drawing() bool {
	return t.drawing
}

// ClipDepth returns the number of pushed clips.
func (t *Target) ClipDepth() int {
	return len(t.clips)
}

// RecordingFactory returns the concrete factory.
func (t *Target) RecordingFactory() *Factory {
	return t.factory
}

func (t *Target) Factory() rendering.Factory {
	return t.factory
}

func (t *Target) CreateSolidBrush(c graphics.Color) (rendering.Brush, error) {
	t.Brushes++
	return rendering.SolidBrush{Fill: c}, nil
}

func (t *Target) BeginDraw() {
	t.drawing = true
	t.record("beginDraw")
}

func (t *Target) EndDraw() error {
	t.drawing = false
	t.record("endDraw")
	if err := t.FailEndDraw; err != nil {
		t.FailEndDraw = nil
		return err
	}
	t.Frames++
	return nil
}

func (t *Target) Flush() error {
	return t.FailFlush
}

func (t *Target) Resize(pixels graphics.Size) error {
	t.size = pixels
	t.record("resize", "width", round2(pixels.Width), "height", round2(pixels.Height))
	return nil
}

func (t *Target) SetScale(scale float32) {
	if scale <= 0 {
		scale = 1
	}
	t.scale = scale
}

// Scale returns the pixels per point.
func (t *Target) Scale() float32 {
	return t.scale
}

func (t *Target) Size() graphics.Size {
	return graphics.Size{Width: t.size.Width / t.scale, Height: t.size.Height / t.scale}
}

func (t *Target) PushClip(b graphics.Bounds) {
	t.clips = append(t.clips, b)
	t.record("pushClip", "rect", serializeBounds(b))
}

func (t *Target) PopClip() {
	if len(t.clips) > 0 {
		t.clips = t.clips[:len(t.clips)-1]
	}
	t.record("popClip")
}

func (t *Target) Clear(c graphics.Color) {
	t.record("clear", "color", serializeColor(c))
}

func (t *Target) FillRect(b graphics.Bounds, brush rendering.Brush) {
	t.record("fillRect", "rect", serializeBounds(b), "color", serializeColor(brush.Color()))
}

func (t *Target) DrawRect(b graphics.Bounds, brush rendering.Brush, strokeWidth float32) {
	t.record("drawRect", "rect", serializeBounds(b), "color", serializeColor(brush.Color()), "width", round2(strokeWidth))
}

func (t *Target) DrawTextLayout(origin graphics.Point, layout rendering.TextLayout, brush rendering.Brush) {
	t.record("drawText",
		"text", layout.Text(),
		"x", round2(origin.X),
		"y", round2(origin.Y),
		"color", serializeColor(brush.Color()),
	)
}

func (t *Target) record(op string, kvs ...any) {
	o := DisplayOp{Op: op}
	if len(kvs) > 0 {
		o.Params = sortedMap(kvs...)
	}
	t.ops = append(t.ops, o)
}

func serializeBounds(b graphics.Bounds) map[string]any {
	return sortedMap(
		"left", round2(b.Left),
		"top", round2(b.Top),
		"right", round2(b.Right),
		"bottom", round2(b.Bottom),
	)
}

func serializeColor(c graphics.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// round2 rounds to 2 decimal places.
func round2(f float32) float64 {
	return math.Round(float64(f)*100) / 100
}

// sortedMap creates a map from alternating key-value pairs.
func sortedMap(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		m[kvs[i].(string)] = kvs[i+1]
	}
	return m
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Device creates recording targets sharing one factory.
type Device struct {
	factory *Factory
	targets []*Target

	// FailCreate, when set, is returned by the next CreateTarget and cleared.
	FailCreate error
}

// NewDevice returns a device with a fresh factory.
func NewDevice() *Device {
	return &Device{factory: NewFactory()}
}

func (d *Device) Factory() rendering.Factory {
	return d.factory
}

// RecordingFactory returns the concrete factory.
func (d *Device) RecordingFactory() *Factory {
	return d.factory
}

func (d *Device) CreateTarget(pixels graphics.Size) (rendering.Target, error) {
	if err := d.FailCreate; err != nil {
		d.FailCreate = nil
		return nil, err
	}
	t := NewTarget(pixels, d.factory)
	d.targets = append(d.targets, t)
	return t, nil
}

// Targets returns every target created so far, oldest first.
func (d *Device) Targets() []*Target {
	return d.targets
}

// Last returns the most recently created target, or nil.
func (d *Device) Last() *Target {
	if len(d.targets) == 0 {
		return nil
	}
	return d.targets[len(d.targets)-1]
}
