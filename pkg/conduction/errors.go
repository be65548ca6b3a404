package conduction

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned by a stage wraps one of these.
var (
	ErrConfiguration = errors.New("invalid configuration")
	ErrEmptyInput    = errors.New("structure has no sites")
	ErrInvariant     = errors.New("pipeline invariant violated")
)

// Stage names, used in errors, logs and metrics
const (
	StagePrepare   = "prepare"
	StageSupercell = "supercell"
	StageNeighbors = "neighbors"
	StageClassify  = "classify"
	StageAssemble  = "assemble"
	StageRelabel   = "relabel"
	StageAnalyze   = "analyze"
)

// noAtom marks a StageError that is not about a single site
const noAtom = -1

// StageError provides structured error information for a failed stage.
type StageError struct {
	Stage   string // Stage that failed (e.g., "supercell", "classify")
	Atom    int    // Supercell index of the offending site, or -1
	Context string // Additional context
	Cause   error  // Underlying error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	switch {
	case e.Atom != noAtom && e.Context != "":
		return fmt.Sprintf("%s atom %d (%s): %v", e.Stage, e.Atom, e.Context, e.Cause)
	case e.Atom != noAtom:
		return fmt.Sprintf("%s atom %d: %v", e.Stage, e.Atom, e.Cause)
	case e.Context != "":
		return fmt.Sprintf("%s (%s): %v", e.Stage, e.Context, e.Cause)
	default:
		return fmt.Sprintf("%s: %v", e.Stage, e.Cause)
	}
}

// Unwrap returns the underlying cause for error chain support.
func (e *StageError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *StageError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building StageErrors.
type ErrorBuilder struct {
	err StageError
}

// NewError creates a new error builder for the given stage.
func NewError(stage string) *ErrorBuilder {
	return &ErrorBuilder{err: StageError{Stage: stage, Atom: noAtom}}
}

// Atom sets the supercell index the error is about.
func (b *ErrorBuilder) Atom(idx int) *ErrorBuilder {
	b.err.Atom = idx
	return b
}

// Context sets additional context information.
func (b *ErrorBuilder) Context(format string, args ...any) *ErrorBuilder {
	b.err.Context = fmt.Sprintf(format, args...)
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Build returns the constructed StageError.
func (b *ErrorBuilder) Build() *StageError {
	return &b.err
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// configError wraps a validation failure as ErrConfiguration
func configError(cause error) error {
	return NewError("options").Context("%v", cause).Cause(ErrConfiguration).Err()
}

func invariantError(stage, format string, args ...any) error {
	return NewError(stage).Context(format, args...).Cause(ErrInvariant).Err()
}
