package submission

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind tags an Outcome.
type Kind int

const (
	Unknown Kind = iota
	Success
	DuplicateRejected
	TransientFailure
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case DuplicateRejected:
		return "duplicate_rejected"
	case TransientFailure:
		return "transient_failure"
	default:
		return "unknown"
	}
}

var (
	ErrDuplicateOrder   = errors.New("duplicate order id")
	ErrTransientFailure = errors.New("transient submission failure")
)

// DuplicateOrderError is the error form of a DuplicateRejected outcome.
type DuplicateOrderError struct {
	OrderID string
	NodeID  string
	Detail  string
}

func (e *DuplicateOrderError) Error() string {
	return fmt.Sprintf("%s: %s already exists in %s", ErrDuplicateOrder, e.OrderID, e.NodeID)
}

func (e *DuplicateOrderError) Unwrap() error {
	return ErrDuplicateOrder
}

// TransientError is the error form of a TransientFailure outcome.
type TransientError struct {
	NodeID string
	Cause  error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s to %s: %v", ErrTransientFailure, e.NodeID, e.Cause)
}

// Unwrap exposes both the sentinel and the underlying cause, so callers can
// match ErrTransientFailure as well as context.DeadlineExceeded and friends.
func (e *TransientError) Unwrap() []error {
	return []error{ErrTransientFailure, e.Cause}
}

// Outcome is the result of one submission attempt. It is terminal for the attempt.
type Outcome struct {
	kind       Kind
	orderID    string
	nodeID     string
	statusCode int
	payload    json.RawMessage
	err        error
}

// NewSuccess records a 2xx response and its payload.
func NewSuccess(orderID, nodeID string, statusCode int, payload json.RawMessage) Outcome {
	return Outcome{
		kind:       Success,
		orderID:    orderID,
		nodeID:     nodeID,
		statusCode: statusCode,
		payload:    payload,
	}
}

// NewDuplicateRejected records a warehouse refusing an order id it already holds.
func NewDuplicateRejected(orderID, nodeID string, statusCode int, detail string) Outcome {
	return Outcome{
		kind:       DuplicateRejected,
		orderID:    orderID,
		nodeID:     nodeID,
		statusCode: statusCode,
		err:        &DuplicateOrderError{OrderID: orderID, NodeID: nodeID, Detail: detail},
	}
}

// NewTransientFailure records a retriable failure. statusCode is 0 when no
// response was received.
func NewTransientFailure(orderID, nodeID string, statusCode int, cause error) Outcome {
	return Outcome{
		kind:       TransientFailure,
		orderID:    orderID,
		nodeID:     nodeID,
		statusCode: statusCode,
		err:        &TransientError{NodeID: nodeID, Cause: cause},
	}
}

func (o Outcome) Kind() Kind {
	return o.kind
}

func (o Outcome) OrderID() string {
	return o.orderID
}

func (o Outcome) NodeID() string {
	return o.nodeID
}

// StatusCode is the HTTP status of the response, 0 if none arrived.
func (o Outcome) StatusCode() int {
	return o.statusCode
}

// Payload is the stored order as returned by the warehouse on success.
func (o Outcome) Payload() json.RawMessage {
	return o.payload
}

// Err is nil for Success and a *DuplicateOrderError or *TransientError otherwise.
func (o Outcome) Err() error {
	return o.err
}

func (o Outcome) IsSuccess() bool {
	return o.kind == Success
}
