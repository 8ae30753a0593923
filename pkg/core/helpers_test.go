package core

import (
	"testing"

	"github.com/go-drift/dwidget/pkg/errors"
)

type node struct {
	Element
	name string
}

func newNode(name string) *node {
	n := &node{name: name}
	n.SetSelf(n)
	return n
}

func (n *node) String() string {
	return n.name
}

// recorder collects notifications.
type recorder struct {
	got []Notification
}

func (r *recorder) OnDependencyUpdated(n Notification) {
	r.got = append(r.got, n)
}

func (r *recorder) types() []NotificationType {
	out := make([]NotificationType, len(r.got))
	for i, n := range r.got {
		out[i] = n.Type
	}
	return out
}

type captureHandler struct {
	errs []*errors.Error
}

func (h *captureHandler) HandleError(err *errors.Error)      { h.errs = append(h.errs, err) }
func (h *captureHandler) HandlePanic(err *errors.PanicError) {}

func captureErrors(t *testing.T) *captureHandler {
	t.Helper()
	h := &captureHandler{}
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return h
}
