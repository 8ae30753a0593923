package errors

import (
	"log/slog"
	"os"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

// Logger returns the toolkit's logger.
func Logger() *slog.Logger {
	return logger.Load()
}

// SetLogger replaces the toolkit's logger. Pass nil to restore a text logger
// on stderr.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	logger.Store(l)
}

// LogHandler is an ErrorHandler that writes errors to the toolkit logger.
type LogHandler struct {
	// Verbose enables stack traces in the output.
	Verbose bool
}

// HandleError logs an Error.
func (h *LogHandler) HandleError(err *Error) {
	if err == nil {
		return
	}
	attrs := []any{"op", err.Op, "kind", err.Kind.String(), "err", err.Err}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, "stack", err.StackTrace)
	}
	Logger().Error("dwidget error", attrs...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	attrs := []any{"value", err.Value}
	if err.Op != "" {
		attrs = append(attrs, "op", err.Op)
	}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, "stack", err.StackTrace)
	}
	Logger().Error("dwidget panic", attrs...)
}
