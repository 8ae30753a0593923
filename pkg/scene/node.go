package scene

import (
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/dwidget/pkg/graphics"
)

// Document is the top level of a scene file.
type Document struct {
	Title      string `yaml:"title,omitempty"`
	Background *Color `yaml:"background,omitempty"`
	// Theme is light or dark. Explicit colors and fonts win over it.
	Theme string `yaml:"theme,omitempty"`
	Root  *Node  `yaml:"root"`
}

// Node describes one widget. Fields that do not apply to Type are rejected
// by Build.
type Node struct {
	Type    string   `yaml:"type"`
	ID      string   `yaml:"id,omitempty"`
	Visible *bool    `yaml:"visible,omitempty"`
	Size    *Size    `yaml:"size,omitempty"`
	Margin  *Spacing `yaml:"margin,omitempty"`
	HAlign  string   `yaml:"halign,omitempty"`
	VAlign  string   `yaml:"valign,omitempty"`

	// stack
	Orientation string `yaml:"orientation,omitempty"`

	// text and button
	Text           string   `yaml:"text,omitempty"`
	FontFamily     string   `yaml:"font_family,omitempty"`
	FontSize       float32  `yaml:"font_size,omitempty"`
	FontWeight     string   `yaml:"font_weight,omitempty"`
	TextAlign      string   `yaml:"text_align,omitempty"`
	ParagraphAlign string   `yaml:"paragraph_align,omitempty"`
	Color          *Color   `yaml:"color,omitempty"`
	Padding        *Spacing `yaml:"padding,omitempty"`

	// box and button
	Background  *Color   `yaml:"background,omitempty"`
	Stroke      *Color   `yaml:"stroke,omitempty"`
	StrokeWidth *float32 `yaml:"stroke_width,omitempty"`

	// button
	Hover   *Color `yaml:"hover,omitempty"`
	Pressed *Color `yaml:"pressed,omitempty"`
	OnClick string `yaml:"on_click,omitempty"`

	Children []*Node `yaml:"children,omitempty"`

	line int
}

var nodeKeys = yamlKeys(reflect.TypeOf(Node{}))

func yamlKeys(t reflect.Type) map[string]bool {
	keys := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ",")
		if name != "" && name != "-" {
			keys[name] = true
		}
	}
	return keys
}

// UnmarshalYAML rejects unknown keys and records the source line for error
// messages. Decoder.KnownFields does not reach custom unmarshalers.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(value.Content); i += 2 {
			k := value.Content[i]
			if !nodeKeys[k.Value] {
				return fmt.Errorf("line %d: unknown field %q", k.Line, k.Value)
			}
		}
	}
	type plain Node
	if err := value.Decode((*plain)(n)); err != nil {
		return err
	}
	n.line = value.Line
	return nil
}

// Line returns the line of the node in its source document, or 0.
func (n *Node) Line() int {
	return n.line
}

// Color is a "#rrggbb" or "#aarrggbb" string.
type Color graphics.Color

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := graphics.ParseHex(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = Color(parsed)
	return nil
}

func (c Color) MarshalYAML() (any, error) {
	return graphics.Color(c).String(), nil
}

// Size is written as [width, height].
type Size graphics.Size

func (s *Size) UnmarshalYAML(value *yaml.Node) error {
	var v []float32
	if err := value.Decode(&v); err != nil || len(v) != 2 {
		return fmt.Errorf("line %d: size must be [width, height]", value.Line)
	}
	*s = Size{Width: v[0], Height: v[1]}
	return nil
}

func (s Size) MarshalYAML() (any, error) {
	return []float32{s.Width, s.Height}, nil
}

// Spacing is a margin or padding written as one number for all sides,
// [horizontal, vertical] or [left, top, right, bottom].
type Spacing graphics.Bounds

func (s *Spacing) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var all float32
		if err := value.Decode(&all); err != nil {
			return fmt.Errorf("line %d: invalid spacing: %w", value.Line, err)
		}
		*s = Spacing{Left: all, Top: all, Right: all, Bottom: all}
		return nil
	}
	var v []float32
	if err := value.Decode(&v); err != nil {
		return fmt.Errorf("line %d: invalid spacing: %w", value.Line, err)
	}
	switch len(v) {
	case 2:
		*s = Spacing{Left: v[0], Top: v[1], Right: v[0], Bottom: v[1]}
	case 4:
		*s = Spacing{Left: v[0], Top: v[1], Right: v[2], Bottom: v[3]}
	default:
		return fmt.Errorf("line %d: spacing needs 1, 2 or 4 values, got %d", value.Line, len(v))
	}
	return nil
}

func (s Spacing) MarshalYAML() (any, error) {
	return []float32{s.Left, s.Top, s.Right, s.Bottom}, nil
}
