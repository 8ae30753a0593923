// Package raster is a software rendering backend. Targets are RGBA images;
// text is shaped and drawn with golang.org/x/image/font using OpenType
// fonts. The Go font family is registered by default.
package raster

import (
	"fmt"
	"strings"
	"sync"

	"github.com/chewxy/math32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/dwidget/pkg/graphics"
	"github.com/go-drift/dwidget/pkg/rendering"
)

// Default font families.
const (
	FamilyGo     = "Go"
	FamilyGoMono = "Go Mono"
)

type faceKey struct {
	font *opentype.Font
	size float32
	dpi  float64
}

// Factory resolves fonts and creates text layouts. It is safe for
// concurrent use.
type Factory struct {
	mu       sync.Mutex
	families map[string]map[rendering.FontWeight]*opentype.Font
	faces    map[faceKey]font.Face
}

// NewFactory returns a factory with the Go font family registered.
func NewFactory() *Factory {
	f := &Factory{
		families: make(map[string]map[rendering.FontWeight]*opentype.Font),
		faces:    make(map[faceKey]font.Face),
	}
	builtin := []struct {
		family string
		weight rendering.FontWeight
		ttf    []byte
	}{
		{FamilyGo, rendering.FontWeightNormal, goregular.TTF},
		{FamilyGo, rendering.FontWeightMedium, gomedium.TTF},
		{FamilyGo, rendering.FontWeightBold, gobold.TTF},
		{FamilyGoMono, rendering.FontWeightNormal, gomono.TTF},
		{FamilyGoMono, rendering.FontWeightBold, gomonobold.TTF},
	}
	for _, b := range builtin {
		if err := f.RegisterFont(b.family, b.weight, b.ttf); err != nil {
			panic(fmt.Sprintf("raster: builtin font %s: %v", b.family, err))
		}
	}
	return f
}

// RegisterFont parses an OpenType or TrueType font and makes it available
// under family at the given weight.
func (f *Factory) RegisterFont(family string, weight rendering.FontWeight, data []byte) error {
	parsed, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("raster: failed to parse font: %w", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := strings.ToLower(family)
	if f.families[key] == nil {
		f.families[key] = make(map[rendering.FontWeight]*opentype.Font)
	}
	f.families[key][weight] = parsed
	return nil
}

// Families returns the number of registered families.
func (f *Factory) Families() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.families)
}

func (f *Factory) CreateRectangleGeometry(b graphics.Bounds) (rendering.Geometry, error) {
	return rendering.RectGeometry{Rect: b}, nil
}

// CreateTextFormat picks the registered weight closest to spec.Weight.
func (f *Factory) CreateTextFormat(spec rendering.TextFormatSpec) (rendering.TextFormat, error) {
	if spec.Size <= 0 {
		return nil, fmt.Errorf("raster: font size must be positive, got %g", spec.Size)
	}
	f.mu.Lock()
	weights, ok := f.families[strings.ToLower(spec.Family)]
	f.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("raster: unknown font family %q", spec.Family)
	}
	var (
		best     *opentype.Font
		bestDist = -1
	)
	for w, fnt := range weights {
		d := int(w - spec.Weight)
		if d < 0 {
			d = -d
		}
		// Prefer the heavier face on ties.
		if bestDist < 0 || d < bestDist || (d == bestDist && w > spec.Weight) {
			best, bestDist = fnt, d
		}
	}
	return &TextFormat{spec: spec, font: best}, nil
}

func (f *Factory) CreateTextLayout(text string, format rendering.TextFormat, maxSize graphics.Size) (rendering.TextLayout, error) {
	tf, err := f.format(format)
	if err != nil {
		return nil, err
	}
	face, err := f.face(tf.font, tf.spec.Size, 72)
	if err != nil {
		return nil, err
	}
	l := &TextLayout{text: text, format: tf, maxSize: maxSize}
	l.lines, l.widths = splitLines(face, text, maxSize.Width)
	l.lineHeight = fixedToFloat32(face.Metrics().Height)
	l.size = l.extent().Min(maxSize)
	return l, nil
}

func (f *Factory) MeasureText(text string, format rendering.TextFormat, maxSize graphics.Size) (graphics.Size, error) {
	l, err := f.CreateTextLayout(text, format, maxSize)
	if err != nil {
		return graphics.Size{}, err
	}
	return l.Size(), nil
}

func (f *Factory) format(format rendering.TextFormat) (*TextFormat, error) {
	tf, ok := format.(*TextFormat)
	if !ok || tf == nil {
		return nil, fmt.Errorf("raster: foreign text format %T", format)
	}
	return tf, nil
}

// face returns a cached face for fnt at size points and dpi.
func (f *Factory) face(fnt *opentype.Font, size float32, dpi float64) (font.Face, error) {
	key := faceKey{font: fnt, size: size, dpi: dpi}
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[key]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     dpi,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("raster: failed to create face: %w", err)
	}
	f.faces[key] = face
	return face, nil
}

// Close releases cached faces.
func (f *Factory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, face := range f.faces {
		_ = face.Close()
		delete(f.faces, k)
	}
	return nil
}

// TextFormat is a resolved font selection.
type TextFormat struct {
	spec rendering.TextFormatSpec
	font *opentype.Font
}

func (t *TextFormat) Spec() rendering.TextFormatSpec {
	return t.spec
}

// TextLayout is text split into lines with measured widths in points.
type TextLayout struct {
	text       string
	format     *TextFormat
	maxSize    graphics.Size
	size       graphics.Size
	lines      []string
	widths     []float32
	lineHeight float32
}

func (l *TextLayout) Text() string {
	return l.text
}

func (l *TextLayout) Size() graphics.Size {
	return l.size
}

func (l *TextLayout) MaxSize() graphics.Size {
	return l.maxSize
}

// Lines returns the laid out lines.
func (l *TextLayout) Lines() []string {
	return l.lines
}

func (l *TextLayout) extent() graphics.Size {
	if len(l.lines) == 0 {
		return graphics.Size{}
	}
	var w float32
	for _, lw := range l.widths {
		w = math32.Max(w, lw)
	}
	return graphics.Size{Width: w, Height: float32(len(l.lines)) * l.lineHeight}
}

// lineOrigin returns the top left of line i relative to the layout origin,
// honoring the format alignments.
func (l *TextLayout) lineOrigin(i int) graphics.Point {
	spec := l.format.spec
	var x float32
	switch spec.Alignment {
	case rendering.TextAlignTrailing:
		x = l.maxSize.Width - l.widths[i]
	case rendering.TextAlignCenter:
		x = (l.maxSize.Width - l.widths[i]) / 2
	}
	total := l.extent().Height
	var y float32
	switch spec.ParagraphAlignment {
	case rendering.ParagraphAlignFar:
		y = l.maxSize.Height - total
	case rendering.ParagraphAlignCenter:
		y = (l.maxSize.Height - total) / 2
	}
	return graphics.Point{X: x, Y: y + float32(i)*l.lineHeight}
}

// splitLines breaks text into lines no wider than maxWidth where word
// boundaries allow.
func splitLines(face font.Face, text string, maxWidth float32) ([]string, []float32) {
	measure := func(s string) float32 {
		return fixedToFloat32(font.MeasureString(face, s))
	}
	lines := rendering.WrapLines(text, maxWidth, measure)
	widths := make([]float32, len(lines))
	for i, line := range lines {
		widths[i] = measure(line)
	}
	return lines, widths
}

func fixedToFloat32(x fixed.Int26_6) float32 {
	return float32(x) / 64
}

func toFixed(x float32) fixed.Int26_6 {
	return fixed.Int26_6(math32.Round(x * 64))
}
