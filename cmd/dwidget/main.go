// Command dwidget runs, renders and inspects declarative widget scenes.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/dwidget/cmd/dwidget/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
