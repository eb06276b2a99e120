package dispatch

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a dispatch run.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusReceived is the initial status: the trigger arrived, nothing is validated yet.
	StatusReceived

	// StatusValidated means the order passed ingestion.
	StatusValidated

	// StatusWarehouseAssigned means a node was selected for the order.
	StatusWarehouseAssigned

	// StatusSubmitted means a warehouse accepted the order. Final.
	StatusSubmitted

	// StatusDuplicateRejected means the warehouse already held the order id. Final.
	StatusDuplicateRejected

	// StatusFailed means the retry budget ran out on a transient failure. Final.
	StatusFailed

	// StatusAborted means a non-retriable error ended the run. Final.
	StatusAborted
)

var statusNames = map[Status]string{
	StatusReceived:          "received",
	StatusValidated:         "validated",
	StatusWarehouseAssigned: "warehouse_assigned",
	StatusSubmitted:         "submitted",
	StatusDuplicateRejected: "duplicate_rejected",
	StatusFailed:            "failed",
	StatusAborted:           "aborted",
}

// transitions lists the statuses reachable from each non-final status.
var transitions = map[Status][]Status{
	StatusReceived:          {StatusValidated, StatusAborted},
	StatusValidated:         {StatusWarehouseAssigned, StatusFailed, StatusAborted},
	StatusWarehouseAssigned: {StatusSubmitted, StatusDuplicateRejected, StatusFailed, StatusAborted},
}

// ParseStatus converts a status name back to a Status.
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", name))
}

// Statuses returns every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{
		StatusReceived,
		StatusValidated,
		StatusWarehouseAssigned,
		StatusSubmitted,
		StatusDuplicateRejected,
		StatusFailed,
		StatusAborted,
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, "unknown" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsFinal reports whether no further transition is possible.
func (s Status) IsFinal() bool {
	switch s {
	case StatusSubmitted, StatusDuplicateRejected, StatusFailed, StatusAborted:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// transitionTo returns next when the move is allowed.
func (s Status) transitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return s, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("cannot move from %s to %s", s, next),
		)
	}
	return next, nil
}
