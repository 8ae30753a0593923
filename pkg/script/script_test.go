package script_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/dwidget/pkg/errors"
	"github.com/go-drift/dwidget/pkg/graphics"
	"github.com/go-drift/dwidget/pkg/scene"
	"github.com/go-drift/dwidget/pkg/script"
	"github.com/go-drift/dwidget/pkg/widgets"
)

const counter = `
root:
  type: stack
  orientation: vertical
  children:
    - type: text
      id: count
      text: "0"
    - type: box
      id: swatch
    - type: button
      id: inc
      text: Increment
      on_click: |
        local n = tonumber(get_text("count")) + 1
        set_text("count", tostring(n))
        if n >= 2 then set_color("swatch", "#ff0000") end
    - type: button
      id: bye
      text: Exit
      on_click: quit()
`

type reports struct {
	errs   []*errors.Error
	panics []*errors.PanicError
}

func (r *reports) HandleError(err *errors.Error)      { r.errs = append(r.errs, err) }
func (r *reports) HandlePanic(err *errors.PanicError) { r.panics = append(r.panics, err) }

func capture(t *testing.T) *reports {
	t.Helper()
	r := &reports{}
	errors.SetHandler(r)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return r
}

func newEngine(t *testing.T, src string) (*script.Engine, *scene.Scene) {
	t.Helper()
	s, err := scene.Load(strings.NewReader(src))
	require.NoError(t, err)
	t.Cleanup(s.Destroy)
	e := script.New(script.Config{CPULimit: 1_000_000, MemoryLimit: 10 * 1024 * 1024})
	t.Cleanup(e.Close)
	require.NoError(t, e.Attach(s))
	return e, s
}

func TestDefaultConfig(t *testing.T) {
	c := script.DefaultConfig()
	assert.Equal(t, uint64(10_000_000), c.CPULimit)
	assert.Equal(t, uint64(50*1024*1024), c.MemoryLimit)
}

func TestAttach_ClickRunsHandler(t *testing.T) {
	_, s := newEngine(t, counter)
	btn, _ := s.Button("inc")
	count, _ := s.Text("count")
	swatch := s.ByID["swatch"].(*widgets.Box)

	btn.Click()
	assert.Equal(t, "1", count.Text())
	assert.Equal(t, graphics.ColorWhite, swatch.BackgroundColor())

	btn.Click()
	assert.Equal(t, "2", count.Text())
	assert.Equal(t, graphics.ColorRed, swatch.BackgroundColor())
}

func TestAttach_Quit(t *testing.T) {
	e, s := newEngine(t, counter)
	quits := 0
	e.OnQuit(func() { quits++ })
	btn, _ := s.Button("bye")
	btn.Click()
	assert.Equal(t, 1, quits)
}

func TestAttach_CompileErrorInstallsNothing(t *testing.T) {
	s, err := scene.Load(strings.NewReader(`
root:
  type: stack
  children:
    - type: button
      id: ok
      on_click: set_text("ok", "clicked")
    - type: button
      id: broken
      on_click: "set_text(("
`))
	require.NoError(t, err)
	t.Cleanup(s.Destroy)

	e := script.New(script.Config{})
	t.Cleanup(e.Close)
	err = e.Attach(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "on_click:broken")

	btn, _ := s.Button("ok")
	btn.Click()
	assert.Equal(t, "", btn.Text())
}

func TestHandlerErrorsAreReported(t *testing.T) {
	r := capture(t)
	_, s := newEngine(t, `
root:
  type: button
  id: b
  on_click: set_text("missing", "x")
`)
	s.Root.(*widgets.Button).Click()
	require.Len(t, r.errs, 1)
	assert.Equal(t, errors.KindScript, r.errs[0].Kind)
	assert.Equal(t, "script.on_click:b", r.errs[0].Op)
	assert.Contains(t, r.errs[0].Error(), `no widget with id "missing"`)
}

func TestExec(t *testing.T) {
	e, s := newEngine(t, counter)

	require.NoError(t, e.Exec("hide", `set_visible("swatch", false)`))
	assert.False(t, s.ByID["swatch"].WidgetBase().Visible())

	err := e.Exec("bad color", `set_color("count", "blue")`)
	assert.ErrorContains(t, err, "invalid color")

	err = e.Exec("no text", `get_text("swatch")`)
	assert.ErrorContains(t, err, `"swatch" has no text`)

	require.NoError(t, e.Exec("button text", `set_text("inc", get_text("count") .. "!")`))
	btn, _ := s.Button("inc")
	assert.Equal(t, "0!", btn.Text())
}

func TestExec_CPULimit(t *testing.T) {
	r := capture(t)
	e := script.New(script.Config{CPULimit: 1000})
	t.Cleanup(e.Close)
	err := e.Exec("spin", `while true do end`)
	assert.ErrorContains(t, err, "script: spin: aborted")
	require.Len(t, r.panics, 1)
	assert.Equal(t, "script.spin", r.panics[0].Op)
	assert.NotEmpty(t, r.panics[0].StackTrace)
}

func TestExec_Print(t *testing.T) {
	var buf bytes.Buffer
	e := script.New(script.Config{Stdout: &buf})
	t.Cleanup(e.Close)
	require.NoError(t, e.Exec("print", `print("hello")`))
	assert.Equal(t, "hello\n", buf.String())

	err := e.Exec("no scene", `set_text("a", "b")`)
	assert.ErrorContains(t, err, "no scene attached")
}
