package errors

import "github.com/charmbracelet/log"

// LogHandler is an ErrorHandler that writes structured log records.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

// HandleError logs an Error.
func (h *LogHandler) HandleError(err *Error) {
	if err == nil {
		return
	}
	fields := []any{"op", err.Op, "kind", err.Kind}
	if err.Node != "" {
		fields = append(fields, "node", err.Node)
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, "stack", err.StackTrace)
	}
	log.Error(err.Err, fields...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	fields := []any{"op", err.Op, "value", err.Value}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, "stack", err.StackTrace)
	}
	log.Error("recovered panic", fields...)
}

// HandleMountError logs a MountError.
func (h *LogHandler) HandleMountError(err *MountError) {
	if err == nil {
		return
	}
	fields := []any{"widget", err.Widget, "node", err.Node}
	if err.Recovered != nil {
		fields = append(fields, "recovered", err.Recovered)
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, "stack", err.StackTrace)
	}
	log.Error("widget mount failed", fields...)
}
