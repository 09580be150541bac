package domain

import "errors"

// Sentinel errors shared across the planner packages. Call sites wrap these
// with fmt.Errorf("%w: ...") and the delivery layer classifies with errors.Is.
var (
	// ErrNotFound signals that an operation targeted a nonexistent row or a
	// row in the wrong lifecycle state (e.g. restoring an active item).
	ErrNotFound = errors.New("planner item not found")

	// ErrValidation signals rejected input. No mutation was performed.
	ErrValidation = errors.New("invalid input")

	// ErrConflict signals a duplicate (origin, external_id) insert. Given the
	// lookup-then-insert protocol this indicates a reconciler bug.
	ErrConflict = errors.New("duplicate external item")

	// ErrUpstream signals that the assignment feed was unreachable or returned
	// garbage. It aborts the current sync pass only.
	ErrUpstream = errors.New("assignment feed unavailable")
)
