// Package errors defines the closed set of failure kinds the synthesis
// engine can raise, modeled after the teacher interpreter's
// InterpreterError/ErrorCategory split but flattened onto the kinds spec.md
// §7 enumerates. There is no textual source language here, so unlike the
// teacher's InterpreterError there is no source position field.
package errors

import "fmt"

// Kind is the closed enumeration of engine failure categories.
type Kind string

const (
	// NoSolution means unification could not solve the accumulated constraints.
	NoSolution Kind = "NoSolution"
	// UnsupportedType means a term outside the supported fragment (list of
	// list, list of function, ...) survived unification.
	UnsupportedType Kind = "UnsupportedType"
	// TypeMismatch means an argument list failed to unify with a callee's
	// input signature.
	TypeMismatch Kind = "TypeMismatch"
	// NoneAsFunArg means the unknown sentinel was passed as an argument to a
	// callee that cannot accept it.
	NoneAsFunArg Kind = "NoneAsFunArg"
	// RuntimeError covers division by zero, head/tail of empty, and similar
	// built-in compute failures.
	RuntimeError Kind = "RuntimeError"
	// UnknownName means a name was not found in any registry.
	UnknownName Kind = "UnknownName"
	// ModeError means an operation was invoked in the wrong façade mode.
	ModeError Kind = "ModeError"
	// InvariantMismatch means a newly produced instruction differs from the
	// one already recorded at the cursor's position.
	InvariantMismatch Kind = "InvariantMismatch"
	// IndexOutOfRange covers list index errors and missing branch-tree
	// children.
	IndexOutOfRange Kind = "IndexOutOfRange"
)

// EngineError is the single error type the engine raises. It carries a Kind,
// a human-readable Message, an optional wrapped cause, and a small bag of
// named values for structured context, mirroring the teacher's
// InterpreterError.Values field.
type EngineError struct {
	Kind    Kind
	Message string
	Values  map[string]string
	Err     error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/As chains.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// New creates an EngineError of the given kind.
func New(kind Kind, message string) *EngineError {
	return &EngineError{Kind: kind, Message: message}
}

// Newf creates an EngineError of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *EngineError {
	return &EngineError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error under the given kind.
func Wrap(kind Kind, err error) *EngineError {
	return &EngineError{Kind: kind, Message: err.Error(), Err: err}
}

// WithValue returns a copy of e with an added (key, value) context entry.
func (e *EngineError) WithValue(key, value string) *EngineError {
	cp := *e
	cp.Values = make(map[string]string, len(e.Values)+1)
	for k, v := range e.Values {
		cp.Values[k] = v
	}
	cp.Values[key] = value
	return &cp
}

// IsKind reports whether err is an *EngineError of the given kind.
func IsKind(err error, kind Kind) bool {
	ee, ok := err.(*EngineError)
	if !ok {
		return false
	}
	return ee.Kind == kind
}
