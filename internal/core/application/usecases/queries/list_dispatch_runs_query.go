package queries

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

var ErrListDispatchRunsQueryIsNotConstructed = errors.New(
	"ListDispatchRunsQuery must be created via NewListDispatchRunsQuery constructor",
)

// ListDispatchRunsQuery retrieves the most recent dispatch runs, optionally
// only those in one status.
//
// Example:
//
//	query, _ := NewListDispatchRunsQuery(dispatch.StatusFailed, 20)
//	views, err := handler.Handle(ctx, query)
type ListDispatchRunsQuery struct {
	status dispatch.Status
	limit  int

	guard guard.ConstructorGuard
}

// NewListDispatchRunsQuery creates the query. StatusUnknown lists every status
// and a zero limit uses DefaultListLimit.
func NewListDispatchRunsQuery(status dispatch.Status, limit int) (ListDispatchRunsQuery, error) {
	q := ListDispatchRunsQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		q.setStatus(status),
		q.setLimit(limit),
	); err != nil {
		return ListDispatchRunsQuery{}, err
	}

	return q, nil
}

func (q ListDispatchRunsQuery) Validate() error {
	return q.guard.Validate(ErrListDispatchRunsQueryIsNotConstructed)
}

// Status is the filter, StatusUnknown for none.
func (q ListDispatchRunsQuery) Status() dispatch.Status {
	return q.status
}

func (q ListDispatchRunsQuery) Limit() int {
	return q.limit
}

func (q *ListDispatchRunsQuery) setStatus(status dispatch.Status) error {
	if status != dispatch.StatusUnknown {
		if err := status.Validate(); err != nil {
			return err
		}
	}

	q.status = status
	return nil
}

func (q *ListDispatchRunsQuery) setLimit(limit int) error {
	switch {
	case limit == 0:
		limit = DefaultListLimit
	case limit < 0 || limit > MaxListLimit:
		return errs.NewValueIsInvalidErrorWithCause(
			"limit",
			fmt.Errorf("must be between 1 and %d, got %d", MaxListLimit, limit),
		)
	}

	q.limit = limit
	return nil
}
