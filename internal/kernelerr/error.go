// Package kernelerr implements the closed error taxonomy the kernel and its
// plugins raise: a small set of kinds, never extended ad hoc by callers.
package kernelerr

import "fmt"

// Kind is one of the error categories the kernel recognizes. It is never
// swallowed silently; the kernel annotates and re-raises.
type Kind int

const (
	// ConfigurationError signals invalid or missing configuration, raised
	// at composition time. Not recoverable by the core.
	ConfigurationError Kind = iota
	// NotReady signals a plugin whose setup has not completed or failed.
	NotReady
	// ValidationError signals invalid caller input.
	ValidationError
	// IntegrityError signals a pack checksum mismatch or missing file.
	IntegrityError
	// BackendFailure signals an unexpected condition raised by a plugin.
	BackendFailure
	// Cancelled signals cooperative cancellation was observed.
	Cancelled
)

func (k Kind) String() string {
	switch k {
	case ConfigurationError:
		return "configuration_error"
	case NotReady:
		return "not_ready"
	case ValidationError:
		return "validation_error"
	case IntegrityError:
		return "integrity_error"
	case BackendFailure:
		return "backend_failure"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Stage names the pipeline stage an error originated in, when known.
type Stage string

const (
	StagePreprocess Stage = "preprocess"
	StageASR        Stage = "asr"
	StageTextRef    Stage = "textref"
	StageCompare    Stage = "compare"
	StageNone       Stage = ""
)

// Error is the closed sum type every core-raised error wraps into before it
// crosses a package boundary.
type Error struct {
	Kind    Kind
	Stage   Stage
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Stage != StageNone {
		return fmt.Sprintf("%s[%s]: %s", e.Kind, e.Stage, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with no stage context.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error carrying an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithStage returns a copy of e annotated with stage, the way the kernel
// tags a plugin failure with the pipeline stage it occurred in before
// re-raising. It never mutates e.
func (e *Error) WithStage(stage Stage) *Error {
	cp := *e
	cp.Stage = stage
	return &cp
}
