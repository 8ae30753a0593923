// Package theme provides light and dark palettes for widget trees.
//
// A theme is applied once, either while building widgets ([TextOf],
// [ButtonOf]) or to a finished tree ([Apply]). Values set on a widget after
// that override the theme.
package theme

import (
	"fmt"
	"strings"

	"github.com/go-drift/dwidget/pkg/graphics"
)

// Brightness indicates if a theme is light or dark.
type Brightness int

const (
	BrightnessLight Brightness = iota
	BrightnessDark
)

func (b Brightness) String() string {
	if b == BrightnessDark {
		return "dark"
	}
	return "light"
}

// ColorScheme is the palette widgets draw with.
type ColorScheme struct {
	// Primary is the accent used for button frames.
	Primary   graphics.Color
	OnPrimary graphics.Color
	// Background clears the window.
	Background   graphics.Color
	OnBackground graphics.Color
	// Surface fills buttons at rest.
	Surface   graphics.Color
	OnSurface graphics.Color
	Outline   graphics.Color
}

// LightColorScheme returns the light palette.
func LightColorScheme() ColorScheme {
	return ColorScheme{
		Primary:      graphics.RGB(0x00, 0x67, 0xc0),
		OnPrimary:    graphics.ColorWhite,
		Background:   graphics.ColorWhite,
		OnBackground: graphics.RGB(0x1b, 0x1b, 0x1f),
		Surface:      graphics.RGB(0xf0, 0xf0, 0xf0),
		OnSurface:    graphics.RGB(0x1b, 0x1b, 0x1f),
		Outline:      graphics.RGB(0x8a, 0x8a, 0x8a),
	}
}

// DarkColorScheme returns the dark palette.
func DarkColorScheme() ColorScheme {
	return ColorScheme{
		Primary:      graphics.RGB(0x4c, 0xc2, 0xff),
		OnPrimary:    graphics.RGB(0x00, 0x1e, 0x33),
		Background:   graphics.RGB(0x20, 0x20, 0x20),
		OnBackground: graphics.RGB(0xe6, 0xe6, 0xe6),
		Surface:      graphics.RGB(0x2d, 0x2d, 0x2d),
		OnSurface:    graphics.RGB(0xe6, 0xe6, 0xe6),
		Outline:      graphics.RGB(0x60, 0x60, 0x60),
	}
}

// ThemeData contains the theme configuration of a window.
type ThemeData struct {
	// ColorScheme defines the color palette.
	ColorScheme ColorScheme

	// TextTheme defines text styles.
	TextTheme TextTheme

	// Brightness indicates if this is a light or dark theme.
	Brightness Brightness

	// ButtonTheme is derived from ColorScheme if nil.
	ButtonTheme *ButtonThemeData
}

// DefaultLightTheme returns the default light theme.
func DefaultLightTheme() *ThemeData {
	colors := LightColorScheme()
	return &ThemeData{
		ColorScheme: colors,
		TextTheme:   DefaultTextTheme(colors.OnBackground),
		Brightness:  BrightnessLight,
	}
}

// DefaultDarkTheme returns the default dark theme.
func DefaultDarkTheme() *ThemeData {
	colors := DarkColorScheme()
	return &ThemeData{
		ColorScheme: colors,
		TextTheme:   DefaultTextTheme(colors.OnBackground),
		Brightness:  BrightnessDark,
	}
}

// Named returns the default theme called light or dark.
func Named(name string) (*ThemeData, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "light":
		return DefaultLightTheme(), nil
	case "dark":
		return DefaultDarkTheme(), nil
	default:
		return nil, fmt.Errorf("unknown theme %q (want light or dark)", name)
	}
}

// CopyWith returns a new ThemeData with the specified fields overridden.
func (t *ThemeData) CopyWith(colorScheme *ColorScheme, textTheme *TextTheme, brightness *Brightness) *ThemeData {
	result := &ThemeData{
		ColorScheme: t.ColorScheme,
		TextTheme:   t.TextTheme,
		Brightness:  t.Brightness,
		ButtonTheme: t.ButtonTheme,
	}
	if colorScheme != nil {
		result.ColorScheme = *colorScheme
	}
	if textTheme != nil {
		result.TextTheme = *textTheme
	}
	if brightness != nil {
		result.Brightness = *brightness
	}
	return result
}

// ButtonThemeOf returns the button theme, deriving from ColorScheme if not set.
func (t *ThemeData) ButtonThemeOf() ButtonThemeData {
	if t.ButtonTheme != nil {
		return *t.ButtonTheme
	}
	return DefaultButtonTheme(t.ColorScheme)
}
