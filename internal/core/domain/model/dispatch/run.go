package dispatch

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/warehouse"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrRunIsNotConstructed is returned when a Run was not created through NewRun or RestoreRun.
	ErrRunIsNotConstructed = errors.New("Run must be created via NewRun constructor")

	// ErrOrderIsRequired is returned when a status needs an order the run does not have.
	ErrOrderIsRequired = errs.NewValueIsRequiredError("order")
)

// Run is the aggregate root for one order instance in the pipeline.
//
// Run follows these invariants:
//   - id is non-empty and never changes
//   - status only moves along the transitions documented on the package
//   - order is set exactly when the run reaches Validated
//   - warehouseID is set exactly when the run reaches WarehouseAssigned
type Run struct {
	id          string
	order       *order.Order
	status      Status
	warehouseID string
	wasFallback bool
	attempts    int
	lastError   string
	createdAt   time.Time
	updatedAt   time.Time

	isConstructed bool
}

// NewRun creates a run in Received status.
func NewRun(id string) (*Run, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("dispatch id")
	}

	now := time.Now().UTC()
	return &Run{
		id:            id,
		status:        StatusReceived,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreRun rebuilds a run from persistence, checking the same invariants
// the transitions enforce.
func RestoreRun(
	id string,
	o *order.Order,
	status Status,
	warehouseID string,
	wasFallback bool,
	attempts int,
	lastError string,
	createdAt time.Time,
	updatedAt time.Time,
) (*Run, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("dispatch id")
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if o != nil {
		if err := o.Validate(); err != nil {
			return nil, err
		}
	}
	if o == nil && status != StatusReceived && status != StatusAborted {
		return nil, ErrOrderIsRequired
	}
	if warehouseID == "" && (status == StatusWarehouseAssigned || status == StatusSubmitted || status == StatusDuplicateRejected) {
		return nil, errs.NewValueIsRequiredError("warehouse id")
	}
	if attempts < 0 {
		return nil, errs.NewValueIsInvalidError("attempts")
	}

	return &Run{
		id:            id,
		order:         o,
		status:        status,
		warehouseID:   warehouseID,
		wasFallback:   wasFallback,
		attempts:      attempts,
		lastError:     lastError,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the run was built by NewRun or RestoreRun.
func (r *Run) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRunIsNotConstructed
	}
	return nil
}

func (r *Run) ID() string {
	return r.id
}

// Order returns the validated order, nil before the run reaches Validated.
func (r *Run) Order() *order.Order {
	return r.order
}

func (r *Run) Status() Status {
	return r.status
}

// WarehouseID returns the selected node id, empty before WarehouseAssigned.
func (r *Run) WarehouseID() string {
	return r.warehouseID
}

func (r *Run) WasFallback() bool {
	return r.wasFallback
}

// Attempts counts submission attempts.
func (r *Run) Attempts() int {
	return r.attempts
}

// LastError is the most recent failure cause, empty if none.
func (r *Run) LastError() string {
	return r.lastError
}

func (r *Run) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Run) UpdatedAt() time.Time {
	return r.updatedAt
}

func (r *Run) IsFinal() bool {
	return r.status.IsFinal()
}

// MarkValidated attaches the ingested order.
func (r *Run) MarkValidated(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := r.moveTo(StatusValidated); err != nil {
		return err
	}
	r.order = o
	return nil
}

// MarkWarehouseAssigned records the selected node.
func (r *Run) MarkWarehouseAssigned(selection warehouse.SelectionResult) error {
	if err := selection.Node.Validate(); err != nil {
		return err
	}
	if err := r.moveTo(StatusWarehouseAssigned); err != nil {
		return err
	}
	r.warehouseID = selection.Node.ID()
	r.wasFallback = selection.WasFallback
	return nil
}

// RecordAttempt counts one submission attempt and remembers its failure, if any.
func (r *Run) RecordAttempt(cause error) {
	r.attempts++
	if cause != nil {
		r.lastError = cause.Error()
	}
	r.touch()
}

// MarkSubmitted ends the run successfully.
func (r *Run) MarkSubmitted() error {
	if err := r.moveTo(StatusSubmitted); err != nil {
		return err
	}
	r.lastError = ""
	return nil
}

// MarkDuplicateRejected ends the run as a rejected duplicate.
func (r *Run) MarkDuplicateRejected(cause error) error {
	return r.finish(StatusDuplicateRejected, cause)
}

// MarkFailed ends the run after the retry budget is exhausted.
func (r *Run) MarkFailed(cause error) error {
	return r.finish(StatusFailed, cause)
}

// Abort ends the run on a non-retriable error.
func (r *Run) Abort(cause error) error {
	return r.finish(StatusAborted, cause)
}

func (r *Run) finish(status Status, cause error) error {
	if err := r.moveTo(status); err != nil {
		return err
	}
	if cause != nil {
		r.lastError = cause.Error()
	}
	return nil
}

func (r *Run) moveTo(next Status) error {
	if err := r.Validate(); err != nil {
		return err
	}
	status, err := r.status.transitionTo(next)
	if err != nil {
		return err
	}
	r.status = status
	r.touch()
	return nil
}

func (r *Run) touch() {
	r.updatedAt = time.Now().UTC()
}
