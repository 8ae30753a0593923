package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInheritedPropertyResolution(t *testing.T) {
	source := NewProperty("Scale", float32(1))
	inherited := NewInheritedProperty("InheritedScale", source)

	root, a, b := newNode("root"), newNode("a"), newNode("b")
	root.RegisterDependency(source)
	a.RegisterDependency(inherited)
	b.RegisterDependency(inherited)
	source.SetValue(root, 2)

	root.RegisterChild(&a.Element)
	a.RegisterChild(&b.Element)

	assert.Equal(t, float32(2), inherited.Value(b))
	anc, ok := inherited.Ancestor(b)
	require.True(t, ok)
	assert.Same(t, root, anc)

	root.DetachChild(&a.Element)
	assert.Equal(t, float32(1), inherited.Value(b))
	assert.Equal(t, float32(1), inherited.Value(a))
	_, ok = inherited.Ancestor(a)
	assert.False(t, ok)
}

func TestInheritedReparentingUpdatesDescendants(t *testing.T) {
	source := NewProperty("Scale", float32(1))
	inherited := NewInheritedProperty("InheritedScale", source)

	w1, w2 := newNode("w1"), newNode("w2")
	w1.RegisterDependency(source)
	w2.RegisterDependency(source)
	source.SetValue(w1, 1.5)
	source.SetValue(w2, 3)

	a, b := newNode("a"), newNode("b")
	a.RegisterDependency(inherited)
	b.RegisterDependency(inherited)
	a.RegisterChild(&b.Element)
	w1.RegisterChild(&a.Element)
	assert.Equal(t, float32(1.5), inherited.Value(b))

	w2.RegisterChild(&a.Element)
	assert.Equal(t, float32(3), inherited.Value(b))
	assert.Empty(t, w1.Children())
}

func TestInheritedNearestOwnerWins(t *testing.T) {
	source := NewProperty("Scale", float32(1))
	inherited := NewInheritedProperty("InheritedScale", source)
	root, mid, leaf := newNode("root"), newNode("mid"), newNode("leaf")
	root.RegisterDependency(source)
	mid.RegisterDependency(source, inherited)
	leaf.RegisterDependency(inherited)
	source.SetValue(root, 2)
	source.SetValue(mid, 4)

	root.RegisterChild(&mid.Element)
	mid.RegisterChild(&leaf.Element)
	assert.Equal(t, float32(2), inherited.Value(mid))
	assert.Equal(t, float32(4), inherited.Value(leaf))
}

func TestInheritedResourceForwardsInvalidation(t *testing.T) {
	dpi := float32(96)
	scale := NewResource("Scale", func(Owner) (float32, error) { return dpi / 96, nil })
	inherited := NewInheritedResource("InheritedScale", scale, 1)
	calls := 0
	measure := NewResource("Measure", func(o Owner) (float32, error) {
		calls++
		return 10 * inherited.Value(o), nil
	}).Bind(inherited)

	window, widget := newNode("window"), newNode("widget")
	window.RegisterDependency(scale)
	widget.RegisterDependency(inherited, measure)

	assert.Equal(t, float32(10), measure.Value(widget))

	window.RegisterChild(&widget.Element)
	assert.False(t, measure.IsValid(widget), "attaching changes the ancestor")
	assert.Equal(t, float32(10), measure.Value(widget))

	dpi = 192
	scale.Invalidate(window)
	assert.False(t, measure.IsValid(widget))
	assert.Equal(t, float32(20), measure.Value(widget))
	assert.Equal(t, 3, calls)
}

func TestInheritedResourceWithoutAncestorUsesFallback(t *testing.T) {
	scale := NewResource("Scale", func(Owner) (float32, error) { return 2, nil })
	inherited := NewInheritedResource("InheritedScale", scale, 1)
	o := newNode("o")
	o.RegisterDependency(inherited)

	v, err := inherited.Get(o)
	require.NoError(t, err)
	assert.Equal(t, float32(1), v)
}

func TestRegisterDependencyResolvesAgainstParent(t *testing.T) {
	source := NewProperty("Scale", float32(1))
	inherited := NewInheritedProperty("InheritedScale", source)
	root, child := newNode("root"), newNode("child")
	root.RegisterDependency(source)
	source.SetValue(root, 5)
	root.RegisterChild(&child.Element)

	child.RegisterDependency(inherited)
	assert.Equal(t, float32(5), inherited.Value(child))
}

func TestRegisterChildDetachesFromOldParent(t *testing.T) {
	p1, p2, c := newNode("p1"), newNode("p2"), newNode("c")
	p1.RegisterChild(&c.Element)
	p2.RegisterChild(&c.Element)

	assert.Empty(t, p1.Children())
	require.Len(t, p2.Children(), 1)
	assert.Same(t, &p2.Element, c.Parent())

	p2.RegisterChild(&c.Element)
	assert.Len(t, p2.Children(), 1)
}

func TestDestroyRemovesOwnerSlots(t *testing.T) {
	p := NewProperty("Width", 0)
	r := NewResource("Measure", func(o Owner) (int, error) { return p.Value(o), nil }).Bind(p)
	parent, o := newNode("parent"), newNode("o")
	o.RegisterDependency(p, r)
	parent.RegisterChild(&o.Element)
	p.SetValue(o, 9)
	_, _ = r.Get(o)
	h := o.Handle()

	o.Destroy()
	assert.True(t, o.Destroyed())
	assert.False(t, h.Alive())
	assert.False(t, p.Registered(o))
	assert.False(t, r.Registered(o))
	assert.Empty(t, parent.Children())
	assert.Nil(t, o.Parent())

	// A new element reusing the slot index does not see the old value.
	fresh := newNode("fresh")
	fresh.RegisterDependency(p)
	assert.Equal(t, 0, p.Value(fresh))
	o.Destroy()
}

func TestDestroyRemovesInReverseOrder(t *testing.T) {
	var order []string
	o := newNode("o")
	o.RegisterDependency(&orderDep{name: "first", log: &order}, &orderDep{name: "second", log: &order})
	o.Destroy()
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestDestroyCascadesToChildren(t *testing.T) {
	p := NewProperty("Width", 0)
	root, child := newNode("root"), newNode("child")
	child.RegisterDependency(p)
	root.RegisterChild(&child.Element)

	root.Destroy()
	assert.True(t, child.Destroyed())
	assert.False(t, p.Registered(child))
}

func TestWalk(t *testing.T) {
	root, a, b, c := newNode("root"), newNode("a"), newNode("b"), newNode("c")
	root.RegisterChild(&a.Element)
	root.RegisterChild(&c.Element)
	a.RegisterChild(&b.Element)

	var names []string
	root.Walk(func(e *Element) bool {
		names = append(names, e.Self().(*node).name)
		return true
	})
	assert.Equal(t, []string{"root", "a", "b", "c"}, names)
}

type orderDep struct {
	Notifier
	name string
	log  *[]string
}

func (d *orderDep) Kind() Kind          { return KindMarker }
func (d *orderDep) RegisterOwner(Owner) {}
func (d *orderDep) RemoveOwner(Owner)   { *d.log = append(*d.log, d.name) }
