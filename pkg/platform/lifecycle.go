package platform

import "sync"

// LifecycleState represents whether the hosted window has input focus.
type LifecycleState string

const (
	// LifecycleStateResumed indicates the window is focused and receiving input.
	LifecycleStateResumed LifecycleState = "resumed"

	// LifecycleStateInactive indicates the window is visible but unfocused.
	LifecycleStateInactive LifecycleState = "inactive"

	// LifecycleStateDetached indicates the window was closed.
	LifecycleStateDetached LifecycleState = "detached"
)

// LifecycleHandler is called when lifecycle state changes.
type LifecycleHandler func(state LifecycleState)

// Lifecycle tracks the focus state of a host window.
type Lifecycle struct {
	mu       sync.RWMutex
	state    LifecycleState
	handlers map[int]LifecycleHandler
	nextID   int
}

// NewLifecycle returns a lifecycle in the resumed state.
func NewLifecycle() *Lifecycle {
	return &Lifecycle{
		state:    LifecycleStateResumed,
		handlers: make(map[int]LifecycleHandler),
	}
}

// State returns the current lifecycle state.
func (l *Lifecycle) State() LifecycleState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// AddHandler registers a handler to be called on lifecycle changes.
// Returns a function that removes the handler.
func (l *Lifecycle) AddHandler(handler LifecycleHandler) func() {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.handlers[id] = handler
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.handlers, id)
		l.mu.Unlock()
	}
}

// IsResumed returns true if the window is focused.
func (l *Lifecycle) IsResumed() bool {
	return l.State() == LifecycleStateResumed
}

// update changes the state and notifies handlers. Detached is final.
func (l *Lifecycle) update(newState LifecycleState) {
	l.mu.Lock()
	if l.state == newState || l.state == LifecycleStateDetached {
		l.mu.Unlock()
		return
	}
	l.state = newState
	handlers := make([]LifecycleHandler, 0, len(l.handlers))
	for _, h := range l.handlers {
		handlers = append(handlers, h)
	}
	l.mu.Unlock()

	for _, h := range handlers {
		h(newState)
	}
}

// setFocused maps a focus sample onto resumed or inactive.
func (l *Lifecycle) setFocused(focused bool) {
	if focused {
		l.update(LifecycleStateResumed)
	} else {
		l.update(LifecycleStateInactive)
	}
}
