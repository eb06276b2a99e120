package warehouse

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

var ErrNoAlternateWarehouse = errors.New("no alternate warehouse available")

// UnknownRegionError reports an order region with no node in the registry.
type UnknownRegionError struct {
	Region string
}

func NewUnknownRegionError(region string) *UnknownRegionError {
	return &UnknownRegionError{Region: region}
}

func (e *UnknownRegionError) Error() string {
	return fmt.Sprintf("unknown region %q: no warehouse registered", e.Region)
}

func (e *UnknownRegionError) Unwrap() error {
	return errs.ErrObjectNotFound
}

// NoAlternateWarehouseError reports that the natural node is unreachable and
// the registry holds no other node to fall back to.
type NoAlternateWarehouseError struct {
	NodeID string
	Cause  error
}

func NewNoAlternateWarehouseError(nodeID string, cause error) *NoAlternateWarehouseError {
	return &NoAlternateWarehouseError{NodeID: nodeID, Cause: cause}
}

func (e *NoAlternateWarehouseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s is unhealthy (cause: %v)", ErrNoAlternateWarehouse, e.NodeID, e.Cause)
	}
	return fmt.Sprintf("%s: %s is unhealthy", ErrNoAlternateWarehouse, e.NodeID)
}

func (e *NoAlternateWarehouseError) Unwrap() error {
	return ErrNoAlternateWarehouse
}
