package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrAssignWarehouseCommandIsNotConstructed = errors.New(
	"AssignWarehouseCommand must be created via NewAssignWarehouseCommand constructor",
)

// AssignWarehouseCommand requests a warehouse for an ingested order.
type AssignWarehouseCommand struct {
	order *order.Order

	guard guard.ConstructorGuard
}

func NewAssignWarehouseCommand(o *order.Order) (AssignWarehouseCommand, error) {
	if err := o.Validate(); err != nil {
		return AssignWarehouseCommand{}, err
	}

	return AssignWarehouseCommand{
		order: o,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c AssignWarehouseCommand) Validate() error {
	return c.guard.Validate(ErrAssignWarehouseCommandIsNotConstructed)
}

func (c AssignWarehouseCommand) Order() *order.Order {
	return c.order
}
