package queries

import (
	"errors"
	"strings"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetDispatchRunQueryIsNotConstructed = errors.New(
	"GetDispatchRunQuery must be created via NewGetDispatchRunQuery constructor",
)

// GetDispatchRunQuery retrieves one dispatch run by id.
//
// Example:
//
//	query, err := NewGetDispatchRunQuery("2f1c...")
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown dispatch id
//	}
type GetDispatchRunQuery struct {
	id string

	guard guard.ConstructorGuard
}

func NewGetDispatchRunQuery(id string) (GetDispatchRunQuery, error) {
	if strings.TrimSpace(id) == "" {
		return GetDispatchRunQuery{}, errs.NewValueIsRequiredError("dispatch id")
	}

	return GetDispatchRunQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDispatchRunQuery) Validate() error {
	return q.guard.Validate(ErrGetDispatchRunQueryIsNotConstructed)
}

func (q GetDispatchRunQuery) ID() string {
	return q.id
}
