// Package errors provides structured error handling for the dwidget toolkit.
//
// The invalidation engine never panics across property or resource
// boundaries. Failures are either returned as typed errors (resource
// initialization), or reported to the global [ErrorHandler] and absorbed
// (per-frame drawing failures, unregistered owners).
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInit indicates a resource or backend initialization failure.
	KindInit
	// KindRender indicates a per-frame drawing failure.
	KindRender
	// KindDevice indicates the render device or surface is unusable.
	KindDevice
	// KindOwner indicates access through an owner that was never registered.
	KindOwner
	// KindBinding indicates an invalid binding between dependencies.
	KindBinding
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates a configuration or scene loading error.
	KindConfig
	// KindScript indicates a script execution error.
	KindScript
)

func (k ErrorKind) String() string {
	switch k {
	case KindInit:
		return "init"
	case KindRender:
		return "render"
	case KindDevice:
		return "device"
	case KindOwner:
		return "owner"
	case KindBinding:
		return "binding"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	case KindScript:
		return "script"
	default:
		return "unknown"
	}
}

// ErrDeviceLost is returned by render backends when the render target must be
// recreated before drawing can continue.
var ErrDeviceLost = errors.New("render device lost")

// Error represents a structured error reported by the toolkit.
type Error struct {
	// Op is the operation that failed (e.g., "widgets.RenderContent").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ResourceInitError is returned when a resource initializer fails. The
// resource stays invalid for the owner and is retried on the next read.
type ResourceInitError struct {
	// Resource is the name of the resource that failed.
	Resource string
	// Owner is a description of the owner the resource was computed for.
	Owner string
	// Err is the initializer's error.
	Err error
}

func (e *ResourceInitError) Error() string {
	if e.Owner != "" {
		return fmt.Sprintf("initialize %s for %s: %v", e.Resource, e.Owner, e.Err)
	}
	return fmt.Sprintf("initialize %s: %v", e.Resource, e.Err)
}

func (e *ResourceInitError) Unwrap() error {
	return e.Err
}

// OwnerError describes access to a dependency through an owner that has not
// been registered with it.
type OwnerError struct {
	// Dependency is the name of the dependency that was accessed.
	Dependency string
	// Op is the attempted operation (e.g., "SetValue").
	Op string
	// Owner is a description of the owner.
	Owner string
}

func (e *OwnerError) Error() string {
	return fmt.Sprintf("%s.%s: owner %s is not registered", e.Dependency, e.Op, e.Owner)
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "window.HandlePointer").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the toolkit.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}
