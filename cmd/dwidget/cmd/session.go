package cmd

import (
	"github.com/go-drift/dwidget/pkg/errors"
	"github.com/go-drift/dwidget/pkg/graphics"
	"github.com/go-drift/dwidget/pkg/platform"
	"github.com/go-drift/dwidget/pkg/scene"
	"github.com/go-drift/dwidget/pkg/script"
	"github.com/go-drift/dwidget/pkg/window"
)

// session shows a scene file in a window and swaps it on reload.
type session struct {
	window *window.Window
	engine *script.Engine
	scene  *scene.Scene
	path   string
	// title is used when the scene has none.
	title string
}

func newSession(w *window.Window, engine *script.Engine, path, title string) *session {
	return &session{window: w, engine: engine, path: path, title: title}
}

// load builds the scene file and makes it the window root. On failure the
// current scene stays.
func (s *session) load() error {
	sc, err := scene.LoadFile(s.path)
	if err != nil {
		return err
	}
	if s.engine != nil {
		if err := s.engine.Attach(sc); err != nil {
			sc.Destroy()
			return err
		}
	}

	old := s.scene
	s.scene = sc
	s.window.SetRoot(sc.Root)

	title := s.title
	if sc.Title != "" {
		title = sc.Title
	}
	s.window.SetTitle(title)
	bg := graphics.ColorWhite
	if sc.HasBackground {
		bg = sc.Background
	}
	s.window.SetBackground(bg)

	if old != nil {
		old.Destroy()
	}
	return nil
}

// scheduleReload queues a reload on the UI goroutine. It may be called from
// any goroutine. Before the host runs, the window queue is used directly.
func (s *session) scheduleReload() {
	if !platform.Dispatch(s.reload) {
		s.window.Dispatch(s.reload)
	}
}

// reload runs on the UI goroutine after the scene file changed.
func (s *session) reload() {
	if err := s.load(); err != nil {
		errors.ReportErr("dwidget.reload", errors.KindConfig, err)
		return
	}
	errors.Logger().Info("scene reloaded", "path", s.path)
}
