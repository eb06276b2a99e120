package dispatch

import (
	"errors"
	"fmt"
)

// Kind classifies a stage failure.
type Kind int

const (
	// KindUnknown is the kind of a nil error.
	KindUnknown Kind = iota

	// KindValidation marks a structurally incomplete order.
	KindValidation

	// KindUnknownRegion marks an order region missing from the registry.
	KindUnknownRegion

	// KindNoAlternateWarehouse marks an unreachable natural node with nothing to fall back to.
	KindNoAlternateWarehouse

	// KindTransient marks a network, timeout or non-duplicate server failure.
	KindTransient

	// KindDuplicateRejected marks a warehouse refusing an order id it already holds.
	KindDuplicateRejected

	// KindInternal marks any failure that carries no kind of its own.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnknownRegion:
		return "unknown_region"
	case KindNoAlternateWarehouse:
		return "no_alternate_warehouse"
	case KindTransient:
		return "transient"
	case KindDuplicateRejected:
		return "duplicate_rejected"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Pipeline stage names carried by Error.
const (
	StageIngest          = "ingest_order"
	StageSelectWarehouse = "select_warehouse"
	StageSubmitOrder     = "submit_order"
)

// Retriable reports whether re-running the failed stage may succeed.
func (k Kind) Retriable() bool {
	return k == KindTransient
}

// Error attaches a Kind and the failing stage to a cause.
type Error struct {
	Kind  Kind
	Stage string
	Cause error
}

func NewError(kind Kind, stage string, cause error) *Error {
	return &Error{Kind: kind, Stage: stage, Cause: cause}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s failed (%s): %v", e.Stage, e.Kind, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf returns the kind carried by err, KindInternal when err has none and
// KindUnknown for nil.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var dispatchErr *Error
	if errors.As(err, &dispatchErr) {
		return dispatchErr.Kind
	}

	return KindInternal
}
