package theme_test

import (
	"fmt"

	"github.com/go-drift/dwidget/pkg/graphics"
	"github.com/go-drift/dwidget/pkg/layout"
	"github.com/go-drift/dwidget/pkg/theme"
	"github.com/go-drift/dwidget/pkg/widgets"
)

// This example builds a small form with themed constructors.
func ExampleButtonOf() {
	t := theme.DefaultDarkTheme()
	title := theme.TextOf("Settings", t.TextTheme.Headline)
	save := theme.ButtonOf(t, "Save", func() { fmt.Println("saved") })
	_ = widgets.NewStack(layout.Vertical, title, save)

	fmt.Println(title.FontSize(), save.Caption().Color() == t.ColorScheme.OnSurface)
	save.Click()
	// Output:
	// 24 true
	// saved
}

// This example shows how to customize a theme using CopyWith.
func ExampleThemeData_CopyWith() {
	base := theme.DefaultLightTheme()

	colors := theme.LightColorScheme()
	colors.Primary = graphics.RGB(0, 150, 136)

	custom := base.CopyWith(&colors, nil, nil)
	fmt.Println(custom.ButtonThemeOf().StrokeColor == colors.Primary, custom.Brightness)
	// Output: true light
}
