// Package schederr defines the kind-tagged error type used at the
// scheduling core's validation boundaries (spec.md §7, "Kinds").
package schederr

import "fmt"

// Kind distinguishes the validation failures the scheduling core can
// raise. Kinds are never retried internally; retries, if any, belong to
// the caller's layer.
type Kind string

const (
	// InvalidDuration: a duration string was unparseable, or its total
	// was zero.
	InvalidDuration Kind = "invalid_duration"

	// InvalidSmartInterval: a nonzero duration was not a whole number of
	// minutes in the smart-interval allow-list.
	InvalidSmartInterval Kind = "invalid_smart_interval"

	// InvalidTime: a timestamp string was unparseable, or had an
	// unexpected trailing character.
	InvalidTime Kind = "invalid_time"

	// InconsistentTimeZone: a start and end time disagreed on UTC-ness.
	InconsistentTimeZone Kind = "inconsistent_time_zone"

	// MissingField: a required field was absent from a spec.
	MissingField Kind = "missing_field"

	// InvalidCombination: mutually exclusive or dependent fields were
	// combined incorrectly (relative without precise, explicit
	// start/end without precise, etc).
	InvalidCombination Kind = "invalid_combination"

	// QueueEmpty: Scheduler.NextStartTime was called with no items pending in
	// either queue. Internal only — callers must check emptiness first.
	QueueEmpty Kind = "queue_empty"
)

// Error is a kind-tagged error carrying the operation it occurred in and
// an optional cause. Modeled on CollectorError in
// controlplane/internet-latency-collector/internal/collector/errors.go.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Op, e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New constructs an Error with no wrapped cause.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Wrap constructs an Error wrapping cause.
func Wrap(kind Kind, op, message string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Cause: cause}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if se, ok := err.(*Error); ok {
			e = se
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return e != nil && e.Kind == kind
}
