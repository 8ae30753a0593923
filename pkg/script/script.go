// Package script runs Lua click handlers declared in scenes.
//
// Handlers see a small API over the widgets of the attached scene:
//
//	set_text(id, s)      set the text of a text or button
//	get_text(id)         read the text of a text or button
//	set_color(id, hex)   text color, or fill of a box or button
//	set_visible(id, b)   show or hide a widget
//	log(msg)             write to the toolkit logger
//	quit()               close the window
//
// Scripts run on the UI goroutine inside CPU and memory limits. Failures are
// reported with [errors.KindScript] and never reach the widget tree.
package script

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"

	"github.com/go-drift/dwidget/pkg/errors"
	"github.com/go-drift/dwidget/pkg/graphics"
	"github.com/go-drift/dwidget/pkg/scene"
	"github.com/go-drift/dwidget/pkg/widgets"
)

// Config contains the limits of an Engine.
type Config struct {
	// CPULimit is the instruction limit per run. 0 means unlimited.
	CPULimit uint64
	// MemoryLimit is the allocation limit per run in bytes. 0 means unlimited.
	MemoryLimit uint64
	// Stdout receives print output. Nil discards it.
	Stdout io.Writer
}

// DefaultConfig returns limits suitable for click handlers.
func DefaultConfig() Config {
	return Config{
		CPULimit:    10_000_000,
		MemoryLimit: 50 * 1024 * 1024,
		Stdout:      os.Stdout,
	}
}

// Engine is a Lua runtime bound to one scene at a time.
type Engine struct {
	mu      sync.Mutex
	config  Config
	runtime *rt.Runtime
	cleanup func()
	scene   *scene.Scene
	onQuit  func()
}

// New creates an engine with the Lua standard library and the widget API
// loaded.
func New(config Config) *Engine {
	stdout := config.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	r := rt.New(stdout)
	e := &Engine{
		config:  config,
		runtime: r,
		cleanup: lib.LoadAll(r),
	}
	e.register("set_text", e.setText, 2)
	e.register("get_text", e.getText, 1)
	e.register("set_color", e.setColor, 2)
	e.register("set_visible", e.setVisible, 2)
	e.register("log", e.log, 1)
	e.register("quit", e.quit, 0)
	return e
}

func (e *Engine) register(name string, fn rt.GoFunctionFunc, nArgs int) {
	goFunc := rt.NewGoFunction(fn, name, nArgs, false)
	rt.SolemnlyDeclareCompliance(rt.ComplyMemSafe|rt.ComplyCpuSafe, goFunc)
	e.runtime.GlobalEnv().Set(rt.StringValue(name), rt.FunctionValue(goFunc))
}

// OnQuit sets the function called by quit().
func (e *Engine) OnQuit(fn func()) {
	e.mu.Lock()
	e.onQuit = fn
	e.mu.Unlock()
}

// Attach compiles the click handlers of s and installs them on their
// buttons. The API then addresses the widgets of s. Nothing is installed if
// a handler fails to compile.
func (e *Engine) Attach(s *scene.Scene) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	closures := make([]*rt.Closure, len(s.Handlers))
	for i, h := range s.Handlers {
		c, err := e.compile(handlerName(i, h), h.Source)
		if err != nil {
			return err
		}
		closures[i] = c
	}
	e.scene = s
	for i, h := range s.Handlers {
		name, c := handlerName(i, h), closures[i]
		h.Button.OnClick(func() {
			if err := e.call(name, c); err != nil {
				errors.ReportErr("script."+name, errors.KindScript, err)
			}
		})
	}
	return nil
}

func handlerName(i int, h scene.Handler) string {
	if h.ID != "" {
		return "on_click:" + h.ID
	}
	return fmt.Sprintf("on_click#%d", i)
}

// Exec compiles and runs a chunk against the attached scene.
func (e *Engine) Exec(name, source string) error {
	e.mu.Lock()
	c, err := e.compile(name, source)
	e.mu.Unlock()
	if err != nil {
		return err
	}
	return e.call(name, c)
}

// Close releases the runtime. The engine cannot be used afterwards.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
	e.scene = nil
}

func (e *Engine) compile(name, source string) (*rt.Closure, error) {
	c, err := e.runtime.CompileAndLoadLuaChunk(name, []byte(source), rt.TableValue(e.runtime.GlobalEnv()))
	if err != nil {
		return nil, fmt.Errorf("script: failed to compile %s: %w", name, err)
	}
	return c, nil
}

// call runs c within the configured limits. golua panics when a limit is
// exceeded, as does a Go callback that fails; the panic is reported with its
// stack and returned as an error. The lock is released while the chunk runs
// so that callbacks such as quit() may re-enter the engine.
func (e *Engine) call(name string, c *rt.Closure) (err error) {
	e.mu.Lock()
	e.runtime.PushContext(rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    e.config.CPULimit,
			Memory: e.config.MemoryLimit,
		},
	})
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.runtime.PopContext()
		e.mu.Unlock()
	}()
	defer errors.RecoverWithCallback("script."+name, func(r any) {
		err = fmt.Errorf("script: %s: aborted: %v", name, r)
	})

	if _, err := rt.Call1(e.runtime.MainThread(), rt.FunctionValue(c)); err != nil {
		return fmt.Errorf("script: %s: %w", name, err)
	}
	return nil
}

func (e *Engine) widget(c *rt.GoCont) (widgets.Widget, string, error) {
	id, err := c.StringArg(0)
	if err != nil {
		return nil, "", err
	}
	e.mu.Lock()
	s := e.scene
	e.mu.Unlock()
	if s == nil {
		return nil, id, fmt.Errorf("no scene attached")
	}
	w, ok := s.ByID[id]
	if !ok {
		return nil, id, fmt.Errorf("no widget with id %q", id)
	}
	return w, id, nil
}

func (e *Engine) setText(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	w, id, err := e.widget(c)
	if err != nil {
		return nil, err
	}
	s, err := c.StringArg(1)
	if err != nil {
		return nil, err
	}
	switch w := w.(type) {
	case *widgets.Text:
		w.SetText(s)
	case *widgets.Button:
		w.SetText(s)
	default:
		return nil, fmt.Errorf("%q has no text", id)
	}
	return c.Next(), nil
}

func (e *Engine) getText(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	w, id, err := e.widget(c)
	if err != nil {
		return nil, err
	}
	var s string
	switch w := w.(type) {
	case *widgets.Text:
		s = w.Text()
	case *widgets.Button:
		s = w.Text()
	default:
		return nil, fmt.Errorf("%q has no text", id)
	}
	return c.PushingNext1(t.Runtime, rt.StringValue(s)), nil
}

func (e *Engine) setColor(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	w, id, err := e.widget(c)
	if err != nil {
		return nil, err
	}
	hex, err := c.StringArg(1)
	if err != nil {
		return nil, err
	}
	color, err := graphics.ParseHex(hex)
	if err != nil {
		return nil, err
	}
	switch w := w.(type) {
	case *widgets.Text:
		w.SetColor(color)
	case *widgets.Box:
		w.SetBackgroundColor(color)
	case *widgets.Button:
		w.SetBackgroundColor(color)
	default:
		return nil, fmt.Errorf("%q has no color", id)
	}
	return c.Next(), nil
}

func (e *Engine) setVisible(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	w, _, err := e.widget(c)
	if err != nil {
		return nil, err
	}
	if err := c.CheckNArgs(2); err != nil {
		return nil, err
	}
	w.WidgetBase().SetVisible(rt.Truth(c.Arg(1)))
	return c.Next(), nil
}

func (e *Engine) log(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	msg, err := c.StringArg(0)
	if err != nil {
		return nil, err
	}
	errors.Logger().Info(msg, "source", "script")
	return c.Next(), nil
}

func (e *Engine) quit(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	e.mu.Lock()
	fn := e.onQuit
	e.mu.Unlock()
	if fn != nil {
		fn()
	}
	return c.Next(), nil
}
