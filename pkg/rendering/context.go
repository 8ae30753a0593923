package rendering

import (
	"github.com/go-drift/dwidget/pkg/errors"
	"github.com/go-drift/dwidget/pkg/graphics"
)

// Context scopes drawing to a clip rectangle on a target. The root context
// owns the frame: Begin starts it and End finishes it. Child contexts only
// push a nested clip and flush on End.
type Context struct {
	target Target
	bounds graphics.Bounds
	root   bool
	ended  bool
}

// Begin starts a frame on target clipped to bounds.
func Begin(target Target, bounds graphics.Bounds) *Context {
	target.BeginDraw()
	target.PushClip(bounds)
	return &Context{target: target, bounds: bounds, root: true}
}

// Sub returns a child context clipped to bounds.
func (c *Context) Sub(bounds graphics.Bounds) *Context {
	c.target.PushClip(bounds)
	return &Context{target: c.target, bounds: bounds}
}

// Target returns the target drawn to.
func (c *Context) Target() Target {
	return c.target
}

// Bounds returns the clip bounds of the context.
func (c *Context) Bounds() graphics.Bounds {
	return c.bounds
}

// IsRoot reports whether the context owns the frame.
func (c *Context) IsRoot() bool {
	return c.root
}

// End pops the clip. A child context flushes and reports flush failures,
// which do not stop the frame. The root context ends the frame and returns
// its error.
func (c *Context) End() error {
	if c.ended {
		return nil
	}
	c.ended = true
	c.target.PopClip()
	if c.root {
		return c.target.EndDraw()
	}
	if err := c.target.Flush(); err != nil {
		errors.ReportErr("rendering.Flush", errors.KindRender, err)
	}
	return nil
}
