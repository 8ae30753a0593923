// Package widgets implements the widget pipeline on top of the core
// dependency engine, and the concrete widgets built with it.
//
// Every widget embeds [Base] and owns the same chain of resources:
//
//	Measure -> Layout -> RenderBounds -> RenderGeometry
//	                                  -> RenderContent
//
// Measure depends on the MaxSize, Size and Margin properties. Layout aligns
// the measured size inside the Constraints property. RenderContent paints the
// widget and then its children, so computing it for the root widget paints a
// frame. Mutating any property invalidates exactly the resources bound to it,
// and the next frame recomputes only what is stale.
//
// Invalidation also travels along the widget tree: a child whose Measure
// becomes invalid invalidates its parent's Measure, and any RenderContent
// invalidation repaints the whole tree it belongs to.
//
// # Construction
//
// Widgets are created with their constructor and configured with setters:
//
//	title := widgets.NewText()
//	title.SetText("Hello")
//	title.SetFontSize(24)
//
//	stack := widgets.NewStack()
//	stack.SetOrientation(layout.Vertical)
//	stack.AddChild(title)
//
// Custom widgets embed [Base], call [Base.Init] with themselves and override
// the hooks of [Widget] they need.
package widgets
