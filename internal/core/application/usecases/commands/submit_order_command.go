package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// SubmitOrderCommand requests one submission of an order to the warehouse
// with the given id.
type SubmitOrderCommand struct {
	order       *order.Order
	warehouseID string

	guard guard.ConstructorGuard
}

func NewSubmitOrderCommand(o *order.Order, warehouseID string) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrder(o),
		cmd.setWarehouseID(warehouseID),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return cmd, nil
}

func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

func (c SubmitOrderCommand) Order() *order.Order {
	return c.order
}

func (c SubmitOrderCommand) WarehouseID() string {
	return c.warehouseID
}

func (c *SubmitOrderCommand) setOrder(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	c.order = o
	return nil
}

func (c *SubmitOrderCommand) setWarehouseID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValueIsRequiredError("warehouse id")
	}

	c.warehouseID = id
	return nil
}
