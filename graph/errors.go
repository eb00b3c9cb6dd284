package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrNilProperty is returned by SetProperty when the new value is nil.
	// The underlying engine cannot bind NULL property parameters, so the
	// limitation is surfaced explicitly instead of silently ignoring the write.
	ErrNilProperty = errors.New("graph: NULL property values are not supported")
)

// PreconditionError reports caller misuse: an operation invoked on a record
// in the wrong state (re-inserting a persisted node, relating transient
// endpoints, deleting a nonexistent node, mutating an undeclared field).
// These are programming errors, not conditions to retry.
type PreconditionError struct {
	Op     string // operation that was attempted
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("graph: %s: precondition violated: %s", e.Op, e.Reason)
}

// InternalError reports a broken contract between the adapter and the
// database, such as a create statement that did not return the generated
// identity. It indicates a bug, not a recoverable condition.
type InternalError struct {
	Op     string
	Reason string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("graph: %s: internal consistency failure: %s", e.Op, e.Reason)
}

// ValidationError reports a field value that failed the schema's declared
// type or the field's validation hook. Invalid values never reach storage.
type ValidationError struct {
	Label  string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("graph: invalid value for %s.%s: %s", e.Label, e.Field, e.Reason)
}
