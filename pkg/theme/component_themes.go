package theme

import (
	"github.com/go-drift/dwidget/pkg/graphics"
	"github.com/go-drift/dwidget/pkg/rendering"
)

// ButtonThemeData defines default styling for Button widgets.
type ButtonThemeData struct {
	// BackgroundColor fills the button at rest.
	BackgroundColor graphics.Color
	// ForegroundColor is the caption color.
	ForegroundColor graphics.Color
	StrokeColor     graphics.Color
	HoverColor      graphics.Color
	PressedColor    graphics.Color
	// Padding is the space between frame and caption.
	Padding graphics.Bounds
	// FontSize is the caption size.
	FontSize float32
}

// DefaultButtonTheme returns button theme defaults derived from colors.
func DefaultButtonTheme(colors ColorScheme) ButtonThemeData {
	return ButtonThemeData{
		BackgroundColor: colors.Surface,
		ForegroundColor: colors.OnSurface,
		StrokeColor:     colors.Primary,
		HoverColor:      colors.Primary.WithAlpha(0.2),
		PressedColor:    colors.Primary.WithAlpha(0.4),
		Padding:         graphics.Bounds{Left: 12, Top: 6, Right: 12, Bottom: 6},
		FontSize:        14,
	}
}

// TextStyle is the font and color of a text role.
type TextStyle struct {
	FontFamily string
	FontSize   float32
	FontWeight rendering.FontWeight
	Color      graphics.Color
}

// TextTheme holds the text roles of a theme.
type TextTheme struct {
	Headline TextStyle
	Title    TextStyle
	Body     TextStyle
	Label    TextStyle
}

// DefaultTextTheme returns the default text roles drawn in color.
func DefaultTextTheme(color graphics.Color) TextTheme {
	style := func(size float32, weight rendering.FontWeight) TextStyle {
		return TextStyle{FontFamily: "Go", FontSize: size, FontWeight: weight, Color: color}
	}
	return TextTheme{
		Headline: style(24, rendering.FontWeightBold),
		Title:    style(18, rendering.FontWeightMedium),
		Body:     style(14, rendering.FontWeightNormal),
		Label:    style(12, rendering.FontWeightMedium),
	}
}
