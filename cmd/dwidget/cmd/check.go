package cmd

import (
	"fmt"
	"os"

	"github.com/go-drift/dwidget/pkg/scene"
	"github.com/go-drift/dwidget/pkg/script"
	"github.com/go-drift/dwidget/pkg/widgets"
)

func init() {
	RegisterCommand(&Command{
		Name:  "check",
		Short: "Validate scene files and their scripts",
		Long: `Load each scene file, build its widgets and compile its click handlers
without opening a window. The first error of each file is printed with its
line number.`,
		Usage: "dwidget check [scene.yaml...]",
		Run:   runCheck,
	})
}

func runCheck(args []string) error {
	paths := args
	if len(paths) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		cfg, err := resolveConfig(cwd)
		if err != nil {
			return err
		}
		if cfg.ScenePath == "" {
			return fmt.Errorf("no scene given and none configured in dwidget.yaml")
		}
		paths = []string{cfg.ScenePath}
	}

	failed := 0
	for _, path := range paths {
		summary, err := checkScene(path)
		if err != nil {
			failed++
			fmt.Fprintf(stdout, "FAIL %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(stdout, "ok   %s: %s\n", path, summary)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenes failed", failed, len(paths))
	}
	return nil
}

func checkScene(path string) (string, error) {
	sc, err := scene.LoadFile(path)
	if err != nil {
		return "", err
	}
	defer sc.Destroy()

	engine := script.New(script.DefaultConfig())
	defer engine.Close()
	if err := engine.Attach(sc); err != nil {
		return "", err
	}
	return fmt.Sprintf("%d widgets, %d handlers", countWidgets(sc.Root), len(sc.Handlers)), nil
}

func countWidgets(w widgets.Widget) int {
	n := 1
	for _, c := range w.WidgetBase().ChildWidgets() {
		n += countWidgets(c)
	}
	return n
}
