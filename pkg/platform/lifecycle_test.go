package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLifecycle_Handlers(t *testing.T) {
	l := NewLifecycle()
	assert.True(t, l.IsResumed())

	var got []LifecycleState
	remove := l.AddHandler(func(s LifecycleState) { got = append(got, s) })

	l.setFocused(true)
	l.setFocused(false)
	assert.Equal(t, LifecycleStateInactive, l.State())
	remove()
	l.setFocused(true)
	assert.Equal(t, []LifecycleState{LifecycleStateInactive}, got)
	assert.True(t, l.IsResumed())
}

func TestLifecycle_DetachedIsFinal(t *testing.T) {
	l := NewLifecycle()
	l.update(LifecycleStateDetached)
	l.setFocused(true)
	assert.Equal(t, LifecycleStateDetached, l.State())
}
