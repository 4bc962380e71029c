// Package errors provides structured error handling for the Lilac toolkit.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindScene indicates a scene graph structure error.
	KindScene
	// KindMount indicates a widget mount failure.
	KindMount
	// KindLayout indicates a layout engine error.
	KindLayout
	// KindState indicates a state bridge error.
	KindState
	// KindEffect indicates an effect scheduler error.
	KindEffect
	// KindConfig indicates a configuration error.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindScene:
		return "scene"
	case KindMount:
		return "mount"
	case KindLayout:
		return "layout"
	case KindState:
		return "state"
	case KindEffect:
		return "effect"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Error represents a structured error in the Lilac toolkit.
type Error struct {
	// Op is the operation that failed (e.g., "frame.MountRoot").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Node is the scene node involved, if applicable.
	Node string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	if e.Node != "" {
		return fmt.Sprintf("%s [%s] node=%s: %v", e.Op, e.Kind, e.Node, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "scope.Attach").
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

// MountError represents a failure while mounting a widget subtree.
type MountError struct {
	// Widget is the type name of the widget that failed.
	Widget string
	// Node is the scene node the widget was being mounted onto.
	Node string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *MountError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic mounting %s on %s: %v", e.Widget, e.Node, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error mounting %s on %s: %v", e.Widget, e.Node, e.Err)
	}
	return fmt.Sprintf("unknown error mounting %s on %s", e.Widget, e.Node)
}

func (e *MountError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by the toolkit.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleMountError is called when a widget mount fails.
	HandleMountError(err *MountError)
}
