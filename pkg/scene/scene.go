// Package scene builds widget trees from YAML documents.
//
// A scene file names a root widget and its descendants:
//
//	title: Counter
//	root:
//	  type: stack
//	  orientation: vertical
//	  children:
//	    - type: text
//	      id: count
//	      text: "0"
//	      font_size: 32
//	    - type: button
//	      text: Increment
//	      background: "#ffe0e0e0"
//	      on_click: set_text("count", tostring(tonumber(get_text("count")) + 1))
//
// Colors must be quoted since YAML treats an unquoted '#' as a comment.
// Click handlers are kept as source; package script runs them.
package scene

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/dwidget/pkg/errors"
	"github.com/go-drift/dwidget/pkg/graphics"
	"github.com/go-drift/dwidget/pkg/layout"
	"github.com/go-drift/dwidget/pkg/rendering"
	"github.com/go-drift/dwidget/pkg/theme"
	"github.com/go-drift/dwidget/pkg/widgets"
)

// Widget types accepted in a node's type field.
const (
	TypeBox       = "box"
	TypeText      = "text"
	TypeButton    = "button"
	TypeStack     = "stack"
	TypeComposite = "composite"
)

// Handler is a click handler attached to a button.
type Handler struct {
	ID     string
	Source string
	Button *widgets.Button
}

// Scene is a built widget tree.
type Scene struct {
	Title      string
	Background graphics.Color
	// HasBackground is false when the document leaves the window color alone.
	HasBackground bool
	// Theme is nil unless the document names one.
	Theme    *theme.ThemeData
	Root     widgets.Widget
	ByID     map[string]widgets.Widget
	Handlers []Handler
	Path     string
}

// Text returns the Text widget with the given id.
func (s *Scene) Text(id string) (*widgets.Text, bool) {
	t, ok := s.ByID[id].(*widgets.Text)
	return t, ok
}

// Button returns the Button widget with the given id.
func (s *Scene) Button(id string) (*widgets.Button, bool) {
	b, ok := s.ByID[id].(*widgets.Button)
	return b, ok
}

// Destroy releases the widget tree.
func (s *Scene) Destroy() {
	if s.Root != nil {
		s.Root.WidgetBase().Destroy()
	}
}

// Parse decodes a document without building widgets. Unknown keys are
// errors.
func Parse(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("scene: empty document")
		}
		return nil, fmt.Errorf("scene: %w", err)
	}
	if doc.Root == nil {
		return nil, fmt.Errorf("scene: missing root")
	}
	return &doc, nil
}

// Load parses and builds a scene.
func Load(r io.Reader) (*Scene, error) {
	doc, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return Build(doc)
}

// LoadFile loads the scene at path.
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: failed to read %s: %w", path, err)
	}
	s, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Path = path
	return s, nil
}

// Build creates the widgets of doc. Nothing is leaked on error.
func Build(doc *Document) (*Scene, error) {
	b := &builder{scene: &Scene{
		Title: doc.Title,
		ByID:  make(map[string]widgets.Widget),
	}}
	if doc.Theme != "" {
		t, err := theme.Named(doc.Theme)
		if err != nil {
			return nil, fmt.Errorf("scene: %w", err)
		}
		b.scene.Theme = t
		b.scene.Background = t.ColorScheme.Background
		b.scene.HasBackground = true
	}
	if doc.Background != nil {
		b.scene.Background = graphics.Color(*doc.Background)
		b.scene.HasBackground = true
	}
	root, err := b.build(doc.Root)
	if err != nil {
		for _, w := range b.built {
			if w.WidgetBase().Parent() == nil {
				w.WidgetBase().Destroy()
			}
		}
		return nil, err
	}
	b.scene.Root = root
	return b.scene, nil
}

type builder struct {
	scene *Scene
	built []widgets.Widget
}

func (b *builder) errorf(n *Node, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if n.line > 0 {
		return fmt.Errorf("scene: line %d: %s", n.line, msg)
	}
	return fmt.Errorf("scene: %s", msg)
}

func (b *builder) build(n *Node) (widgets.Widget, error) {
	if err := b.check(n); err != nil {
		return nil, err
	}
	var w widgets.Widget
	var err error
	switch strings.ToLower(n.Type) {
	case TypeBox:
		w = b.box(n)
	case TypeText:
		w, err = b.text(n)
	case TypeButton:
		w, err = b.button(n)
	case TypeStack, TypeComposite:
		w, err = b.container(n)
	default:
		return nil, b.errorf(n, "unknown widget type %q", n.Type)
	}
	if err != nil {
		return nil, err
	}
	b.built = append(b.built, w)
	if err := b.common(n, w); err != nil {
		return nil, err
	}
	return w, nil
}

// check rejects fields that the node type ignores.
func (b *builder) check(n *Node) error {
	typ := strings.ToLower(n.Type)
	isText := typ == TypeText || typ == TypeButton
	isContainer := typ == TypeStack || typ == TypeComposite
	switch {
	case len(n.Children) > 0 && !isContainer:
		return b.errorf(n, "%s cannot have children", n.Type)
	case n.OnClick != "" && typ != TypeButton:
		return b.errorf(n, "on_click is only valid on buttons")
	case n.Orientation != "" && typ != TypeStack:
		return b.errorf(n, "orientation is only valid on stacks")
	case (n.Text != "" || n.FontFamily != "" || n.FontSize != 0 || n.FontWeight != "" || n.Color != nil) && !isText:
		return b.errorf(n, "text attributes are only valid on text and buttons")
	case (n.Background != nil || n.Stroke != nil) && typ != TypeBox && typ != TypeButton:
		return b.errorf(n, "background and stroke are only valid on boxes and buttons")
	case (n.Hover != nil || n.Pressed != nil || n.Padding != nil) && typ != TypeButton:
		return b.errorf(n, "hover, pressed and padding are only valid on buttons")
	case n.StrokeWidth != nil && typ != TypeBox:
		return b.errorf(n, "stroke_width is only valid on boxes")
	case (n.TextAlign != "" || n.ParagraphAlign != "") && typ != TypeText:
		return b.errorf(n, "text_align and paragraph_align are only valid on text")
	}
	return nil
}

func (b *builder) common(n *Node, w widgets.Widget) error {
	base := w.WidgetBase()
	if n.ID != "" {
		if _, dup := b.scene.ByID[n.ID]; dup {
			return b.errorf(n, "duplicate id %q", n.ID)
		}
		base.SetID(n.ID)
		b.scene.ByID[n.ID] = w
	}
	if n.Visible != nil {
		base.SetVisible(*n.Visible)
	}
	if n.Size != nil {
		base.SetSize(graphics.Size(*n.Size))
	}
	if n.Margin != nil {
		base.SetMargin(graphics.Bounds(*n.Margin))
	}
	if n.HAlign != "" {
		a, err := layout.ParseAlignment(n.HAlign)
		if err != nil {
			return b.errorf(n, "%v", err)
		}
		base.SetHorizontalAlignment(a)
	}
	if n.VAlign != "" {
		a, err := layout.ParseAlignment(n.VAlign)
		if err != nil {
			return b.errorf(n, "%v", err)
		}
		base.SetVerticalAlignment(a)
	}
	return nil
}

func (b *builder) box(n *Node) *widgets.Box {
	box := widgets.NewBox()
	if n.Background != nil {
		box.SetBackgroundColor(graphics.Color(*n.Background))
	}
	if n.Stroke != nil {
		box.SetStrokeColor(graphics.Color(*n.Stroke))
	}
	if n.StrokeWidth != nil {
		box.SetStrokeWidth(*n.StrokeWidth)
	}
	return box
}

// font applies the font attributes shared by text and button captions.
func (b *builder) font(n *Node, t *widgets.Text) error {
	if n.FontFamily != "" {
		t.SetFontFamily(n.FontFamily)
	}
	if n.FontSize < 0 {
		return b.errorf(n, "font_size must be positive")
	}
	if n.FontSize > 0 {
		t.SetFontSize(n.FontSize)
	}
	if n.FontWeight != "" {
		wt, err := rendering.ParseFontWeight(n.FontWeight)
		if err != nil {
			return b.errorf(n, "%v", err)
		}
		t.SetFontWeight(wt)
	}
	return nil
}

func (b *builder) text(n *Node) (widgets.Widget, error) {
	t := widgets.NewText(n.Text)
	if th := b.scene.Theme; th != nil {
		theme.ApplyTextStyle(t, th.TextTheme.Body)
	}
	if err := b.font(n, t); err != nil {
		t.Destroy()
		return nil, err
	}
	if n.Color != nil {
		t.SetColor(graphics.Color(*n.Color))
	}
	if n.TextAlign != "" {
		a, err := rendering.ParseTextAlignment(n.TextAlign)
		if err != nil {
			t.Destroy()
			return nil, b.errorf(n, "%v", err)
		}
		t.SetTextAlignment(a)
	}
	if n.ParagraphAlign != "" {
		a, err := rendering.ParseParagraphAlignment(n.ParagraphAlign)
		if err != nil {
			t.Destroy()
			return nil, b.errorf(n, "%v", err)
		}
		t.SetParagraphAlignment(a)
	}
	return t, nil
}

func (b *builder) button(n *Node) (widgets.Widget, error) {
	btn := widgets.NewButton(n.Text)
	if th := b.scene.Theme; th != nil {
		theme.ApplyButtonTheme(btn, th.ButtonThemeOf())
	}
	if err := b.font(n, btn.Caption()); err != nil {
		btn.Destroy()
		return nil, err
	}
	if n.Color != nil {
		btn.SetForegroundColor(graphics.Color(*n.Color))
	}
	if n.Background != nil {
		btn.SetBackgroundColor(graphics.Color(*n.Background))
	}
	if n.Stroke != nil {
		btn.SetStrokeColor(graphics.Color(*n.Stroke))
	}
	if n.Hover != nil {
		btn.SetHoverColor(graphics.Color(*n.Hover))
	}
	if n.Pressed != nil {
		btn.SetPressedColor(graphics.Color(*n.Pressed))
	}
	if n.Padding != nil {
		btn.SetPadding(graphics.Bounds(*n.Padding))
	}
	if strings.TrimSpace(n.OnClick) != "" {
		b.scene.Handlers = append(b.scene.Handlers, Handler{ID: n.ID, Source: n.OnClick, Button: btn})
	}
	return btn, nil
}

func (b *builder) container(n *Node) (widgets.Widget, error) {
	children := make([]widgets.Widget, 0, len(n.Children))
	for _, c := range n.Children {
		if c == nil {
			return nil, b.errorf(n, "empty child")
		}
		w, err := b.build(c)
		if err != nil {
			return nil, err
		}
		children = append(children, w)
	}
	if strings.ToLower(n.Type) == TypeComposite {
		return widgets.NewComposite(children...), nil
	}
	o, err := layout.ParseOrientation(n.Orientation)
	if err != nil {
		return nil, b.errorf(n, "%v", err)
	}
	return widgets.NewStack(o, children...), nil
}
