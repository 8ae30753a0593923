package core_test

import (
	"fmt"

	"github.com/go-drift/dwidget/pkg/core"
)

type label struct {
	core.Element
}

func Example() {
	text := core.NewProperty("Text", "")
	width := core.NewResource("Width", func(o core.Owner) (int, error) {
		fmt.Println("measuring")
		return len(text.Value(o)) * 8, nil
	}).Bind(text)

	l := &label{}
	l.SetSelf(l)
	l.RegisterDependency(text, width)

	text.SetValue(l, "hello")
	fmt.Println(width.Value(l))
	fmt.Println(width.Value(l))
	text.SetValue(l, "hi")
	fmt.Println(width.Value(l))
	// Output:
	// measuring
	// 40
	// 40
	// measuring
	// 16
}
