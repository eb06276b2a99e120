package order

import (
	"errors"

	"dispatch/internal/pkg/errs"
)

// Wire names of the order fields. They are shared by the trigger payload and
// the warehouse submission body.
const (
	FieldOrderID      = "order_id"
	FieldCustomerName = "customer_name"
	FieldRegion       = "region"
	FieldTimestamp    = "timestamp"
)

// RequiredFields lists the fields an order cannot be ingested without, in the
// order they are reported.
var RequiredFields = []string{FieldOrderID, FieldCustomerName, FieldRegion}

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order represents a customer order on its way to a warehouse.
//
// Order follows these invariants:
//   - order id, customer name, region and timestamp are non-empty
//   - all fields are fixed at construction; there are no setters
//   - Can only be created through NewOrder
type Order struct {
	// id is the globally unique order identifier and the deduplication key
	id string

	// customerName is the ordering customer's display name
	customerName string

	// region is the registry key of the region-natural warehouse
	region string

	// timestamp is the ISO-8601 time the order was placed
	timestamp string

	// isConstructed ensures the order was created via NewOrder
	isConstructed bool
}

// NewOrder creates a new Order. All validation failures are joined so a
// caller sees every problem at once.
//
// Example:
//
//	o, err := order.NewOrder("o1", "A", "HCM", time.Now().Format(time.RFC3339))
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(id, customerName, region, timestamp string) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerName(customerName),
		o.setRegion(region),
		o.setTimestamp(timestamp),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by order id.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

// ID returns the order id.
func (o *Order) ID() string {
	return o.id
}

// CustomerName returns the customer name.
func (o *Order) CustomerName() string {
	return o.customerName
}

// Region returns the region the order belongs to.
func (o *Order) Region() string {
	return o.region
}

// Timestamp returns the ISO-8601 order time.
func (o *Order) Timestamp() string {
	return o.timestamp
}

func (o *Order) setID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError(FieldOrderID)
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError(FieldCustomerName)
	}
	o.customerName = name
	return nil
}

func (o *Order) setRegion(region string) error {
	if region == "" {
		return errs.NewValueIsRequiredError(FieldRegion)
	}
	o.region = region
	return nil
}

func (o *Order) setTimestamp(timestamp string) error {
	if timestamp == "" {
		return errs.NewValueIsRequiredError(FieldTimestamp)
	}
	o.timestamp = timestamp
	return nil
}
