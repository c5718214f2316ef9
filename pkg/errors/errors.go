// Package errors provides structured error reporting for lite.
//
// Nothing inside the reactive core is fatal: failures degrade to no-ops and
// sentinel substitution. What this package carries are the faults that come
// from outside the core, such as a panicking effect callback, a template that
// cannot be read, or a store that cannot be opened. Those are reported to a
// swappable global [ErrorHandler] instead of being returned up a call chain
// that has no caller to return to (a frame callback).
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
	// KindInit indicates a failure while mounting a component.
	KindInit
	// KindRender indicates a failure while applying queued updates.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindTemplate indicates a template or style that could not be loaded.
	KindTemplate
	// KindConfig indicates an invalid configuration file.
	KindConfig
	// KindStorage indicates a persistence failure.
	KindStorage
)

func (k ErrorKind) String() string {
	switch k {
	case KindInit:
		return "init"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	case KindTemplate:
		return "template"
	case KindConfig:
		return "config"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// LiteError represents a structured error.
type LiteError struct {
	// Op is the operation that failed (e.g., "component.Mount").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Component is the tag of the component involved, if any.
	Component string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *LiteError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("%s [%s] component=%s: %v", e.Op, e.Kind, e.Component, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *LiteError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "core.flushEffects").
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

// ErrorHandler receives errors reported by lite.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *LiteError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
