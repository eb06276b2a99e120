package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/warehouse"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// AssignWarehouseCommandHandler selects the warehouse for an order against the
// configured registry and reports probe failures and fallbacks to metrics.
//
// Example:
//
//	handler := NewAssignWarehouseCommandHandler(registry, selector, metrics)
//	cmd, _ := NewAssignWarehouseCommand(o)
//	result, err := handler.Handle(ctx, cmd)
//	if dispatch.KindOf(err) == dispatch.KindUnknownRegion {
//	    // order region has no warehouse
//	}
type AssignWarehouseCommandHandler struct {
	registry warehouse.Registry
	selector services.WarehouseSelector
	metrics  ports.DispatchMetrics
}

func NewAssignWarehouseCommandHandler(
	registry warehouse.Registry,
	selector services.WarehouseSelector,
	metrics ports.DispatchMetrics,
) AssignWarehouseCommandHandler {
	return AssignWarehouseCommandHandler{
		registry: registry,
		selector: selector,
		metrics:  metrics,
	}
}

// Handle returns the selection. Errors carry KindUnknownRegion,
// KindNoAlternateWarehouse or KindInternal.
func (h AssignWarehouseCommandHandler) Handle(
	ctx context.Context,
	cmd AssignWarehouseCommand,
) (warehouse.SelectionResult, error) {
	if err := cmd.Validate(); err != nil {
		return warehouse.SelectionResult{}, dispatch.NewError(dispatch.KindInternal, dispatch.StageSelectWarehouse, err)
	}

	o := cmd.Order()
	result, err := h.selector.Select(ctx, o, h.registry)
	if err != nil {
		var noAlternate *warehouse.NoAlternateWarehouseError
		var unknownRegion *warehouse.UnknownRegionError
		switch {
		case errors.As(err, &noAlternate):
			h.metrics.ObserveHealthProbeFailure(noAlternate.NodeID)
			return warehouse.SelectionResult{}, dispatch.NewError(
				dispatch.KindNoAlternateWarehouse, dispatch.StageSelectWarehouse, err)
		case errors.As(err, &unknownRegion):
			return warehouse.SelectionResult{}, dispatch.NewError(
				dispatch.KindUnknownRegion, dispatch.StageSelectWarehouse, err)
		default:
			return warehouse.SelectionResult{}, dispatch.NewError(
				dispatch.KindInternal, dispatch.StageSelectWarehouse, err)
		}
	}

	if result.WasFallback {
		h.metrics.ObserveHealthProbeFailure(result.Natural.ID())
		h.metrics.ObserveFallback(o.Region())
	}

	return result, nil
}
