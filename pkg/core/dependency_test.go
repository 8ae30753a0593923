package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyOrder(t *testing.T) {
	d := NewMarker("m")
	var order []int
	for i := range 3 {
		d.AddListener(NewListener(func(Notification) { order = append(order, i) }))
	}
	d.Touch(newNode("o"))
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestNotifyIteratesSnapshot(t *testing.T) {
	d := NewMarker("m")
	var calls []string
	late := NewListener(func(Notification) { calls = append(calls, "late") })
	var self *ListenerFunc
	self = NewListener(func(Notification) {
		calls = append(calls, "self")
		d.RemoveListener(self)
		d.AddListener(late)
	})
	second := NewListener(func(Notification) { calls = append(calls, "second") })
	d.AddListener(self)
	d.AddListener(second)

	o := newNode("o")
	d.Touch(o)
	assert.Equal(t, []string{"self", "second"}, calls)

	calls = nil
	d.Touch(o)
	assert.Equal(t, []string{"second", "late"}, calls)
}

func TestRemoveListenerFirstMatch(t *testing.T) {
	d := NewMarker("m")
	count := 0
	l := NewListener(func(Notification) { count++ })
	d.AddListener(l)
	d.AddListener(l)
	require.Equal(t, 2, d.ListenerCount())

	d.RemoveListener(l)
	assert.Equal(t, 1, d.ListenerCount())
	d.Touch(newNode("o"))
	assert.Equal(t, 1, count)

	d.RemoveListener(l)
	d.RemoveListener(l)
	assert.Equal(t, 0, d.ListenerCount())
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "InheritedResource", KindInheritedResource.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
	assert.Equal(t, "ElementRemoved", ElementRemoved.String())
}

func TestNotificationString(t *testing.T) {
	p := NewProperty("Size", 0)
	n := Notification{Type: Updated, Owner: newNode("box"), Source: p}
	assert.Equal(t, "Updated(Size, box)", n.String())
}

func TestHandleReuseBumpsGeneration(t *testing.T) {
	h := NewHandle()
	require.True(t, h.Alive())
	ReleaseHandle(h)
	assert.False(t, h.Alive())

	h2 := NewHandle()
	defer ReleaseHandle(h2)
	assert.Equal(t, h.Index(), h2.Index())
	assert.NotEqual(t, h, h2)
	assert.True(t, h2.Alive())
}
