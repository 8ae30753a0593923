package widgets

import (
	"github.com/go-drift/dwidget/pkg/core"
)

// ChildrenProperty holds the children of a [Composite] in order. Adding a
// child makes it part of the element tree; removing it detaches it.
var ChildrenProperty = core.NewCollectionProperty[Widget]("Children")

type childRemover interface {
	RemoveChild(w Widget) bool
}

// Composite lays its children on top of each other inside its render bounds
// and measures to the largest child.
type Composite struct {
	Base
}

// NewComposite creates a composite with the given children.
func NewComposite(children ...Widget) *Composite {
	c := &Composite{}
	c.InitComposite(c)
	c.AddChild(children...)
	return c
}

// InitComposite initializes a type embedding Composite.
func (c *Composite) InitComposite(self Widget) {
	c.Init(self)
	c.RegisterDependency(ChildrenProperty)
}

// AddChild appends children. Nil widgets and widgets already in the
// composite are skipped, so each child is laid out once.
func (c *Composite) AddChild(children ...Widget) *Composite {
	for _, w := range children {
		if w == nil || ChildrenProperty.Contains(c.self, w) {
			continue
		}
		ChildrenProperty.Add(c.self, w)
	}
	return c
}

// RemoveChild removes w and reports whether it was a child.
func (c *Composite) RemoveChild(w Widget) bool {
	return ChildrenProperty.Remove(c.self, w)
}

// ClearChildren removes all children.
func (c *Composite) ClearChildren() {
	ChildrenProperty.Clear(c.self)
}

// ChildCount returns the number of children.
func (c *Composite) ChildCount() int {
	return ChildrenProperty.Len(c.self)
}

// Child returns the child at i, or nil when i is out of range.
func (c *Composite) Child(i int) Widget {
	children := ChildrenProperty.Values(c.self)
	if i < 0 || i >= len(children) {
		return nil
	}
	return children[i]
}

func init() {
	MeasureResource.Bind(ChildrenProperty)

	ChildrenProperty.AddListener(core.NewListener(func(n core.Notification) {
		parent, ok := n.Owner.(Widget)
		if !ok {
			return
		}
		child, ok := n.Value.(Widget)
		if !ok {
			return
		}
		pb, cb := parent.WidgetBase(), child.WidgetBase()
		switch n.Type {
		case core.ElementAdded:
			if old := cb.Parent(); old != nil && old != parent {
				if r, ok := old.(childRemover); ok {
					r.RemoveChild(child)
				}
			}
			pb.Element.RegisterChild(&cb.Element)
			if pb.target != nil {
				cb.AttachRenderTarget(pb.target)
			}
		case core.ElementRemoved:
			if cb.Element.Parent() != &pb.Element {
				return
			}
			if cb.target != nil {
				cb.DetachRenderTarget()
			}
			pb.Element.DetachChild(&cb.Element)
			RenderContentResource.Invalidate(parent)
		}
	}))
}
