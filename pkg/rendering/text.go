package rendering

import (
	"fmt"
	"strconv"
	"strings"
)

// FontWeight is a CSS style font weight.
type FontWeight int

const (
	FontWeightLight    FontWeight = 300
	FontWeightNormal   FontWeight = 400
	FontWeightMedium   FontWeight = 500
	FontWeightSemiBold FontWeight = 600
	FontWeightBold     FontWeight = 700
)

// ParseFontWeight accepts a name ("bold") or a number ("700").
func ParseFontWeight(s string) (FontWeight, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal", "regular":
		return FontWeightNormal, nil
	case "light":
		return FontWeightLight, nil
	case "medium":
		return FontWeightMedium, nil
	case "semibold":
		return FontWeightSemiBold, nil
	case "bold":
		return FontWeightBold, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 1000 {
		return FontWeightNormal, fmt.Errorf("unknown font weight %q", s)
	}
	return FontWeight(n), nil
}

// TextAlignment aligns lines horizontally inside the layout box.
type TextAlignment int

const (
	TextAlignLeading TextAlignment = iota
	TextAlignTrailing
	TextAlignCenter
)

func (a TextAlignment) String() string {
	switch a {
	case TextAlignLeading:
		return "leading"
	case TextAlignTrailing:
		return "trailing"
	case TextAlignCenter:
		return "center"
	default:
		return fmt.Sprintf("TextAlignment(%d)", a)
	}
}

// ParseTextAlignment parses the String form of a TextAlignment. "left" and
// "right" are accepted for leading and trailing.
func ParseTextAlignment(s string) (TextAlignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "leading", "left", "":
		return TextAlignLeading, nil
	case "trailing", "right":
		return TextAlignTrailing, nil
	case "center":
		return TextAlignCenter, nil
	default:
		return TextAlignLeading, fmt.Errorf("unknown text alignment %q", s)
	}
}

// ParagraphAlignment aligns the text block vertically inside the layout box.
type ParagraphAlignment int

const (
	ParagraphAlignNear ParagraphAlignment = iota
	ParagraphAlignFar
	ParagraphAlignCenter
)

func (a ParagraphAlignment) String() string {
	switch a {
	case ParagraphAlignNear:
		return "near"
	case ParagraphAlignFar:
		return "far"
	case ParagraphAlignCenter:
		return "center"
	default:
		return fmt.Sprintf("ParagraphAlignment(%d)", a)
	}
}

// ParseParagraphAlignment parses the String form of a ParagraphAlignment.
// "top" and "bottom" are accepted for near and far.
func ParseParagraphAlignment(s string) (ParagraphAlignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "near", "top", "":
		return ParagraphAlignNear, nil
	case "far", "bottom":
		return ParagraphAlignFar, nil
	case "center":
		return ParagraphAlignCenter, nil
	default:
		return ParagraphAlignNear, fmt.Errorf("unknown paragraph alignment %q", s)
	}
}

// TextFormatSpec describes a font selection.
type TextFormatSpec struct {
	Family             string
	Size               float32
	Weight             FontWeight
	Alignment          TextAlignment
	ParagraphAlignment ParagraphAlignment
}

func (s TextFormatSpec) String() string {
	return fmt.Sprintf("%s %gpt w%d", s.Family, s.Size, s.Weight)
}

// WrapLines splits text into lines at '\n' and breaks lines wider than
// maxWidth at spaces. A single word wider than maxWidth keeps its own line.
// A maxWidth <= 0 disables wrapping.
func WrapLines(text string, maxWidth float32, width func(string) float32) []string {
	if text == "" {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		if maxWidth <= 0 || width(para) <= maxWidth {
			lines = append(lines, para)
			continue
		}
		line := ""
		for _, word := range strings.Fields(para) {
			if line == "" {
				line = word
				continue
			}
			next := line + " " + word
			if width(next) > maxWidth {
				lines = append(lines, line)
				line = word
				continue
			}
			line = next
		}
		lines = append(lines, line)
	}
	return lines
}
