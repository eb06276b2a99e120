package services

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/warehouse"
	"dispatch/internal/core/ports"
)

// DefaultHealthProbeTimeout bounds a single health probe.
const DefaultHealthProbeTimeout = 3 * time.Second

// WarehouseSelector chooses the warehouse node for an order.
//
// Selection algorithm:
//   - Resolve the order region in the registry; an unknown region fails fast
//   - Probe the resolved node's health within the probe timeout
//   - Healthy: return it, no other node is contacted
//   - Unhealthy: pick uniformly among every other node and mark the result
//     as a fallback; with no other node the selection fails
//   - Caller context done during the health check: return its error, no fallback
//
// Example usage:
//
//	selector := NewWarehouseSelector(client, NewRandomizer(), 3*time.Second, logger)
//	result, err := selector.Select(ctx, order, registry)
//	if err != nil {
//	    // *warehouse.UnknownRegionError or *warehouse.NoAlternateWarehouseError
//	    return err
//	}
//	if result.WasFallback {
//	    // natural node was down, result.Node is an alternate
//	}
type WarehouseSelector struct {
	prober       ports.HealthProber
	random       Randomizer
	probeTimeout time.Duration
	logger       *slog.Logger
}

// NewWarehouseSelector creates a selector. A nil random uses NewRandomizer, a
// non-positive probeTimeout uses DefaultHealthProbeTimeout.
func NewWarehouseSelector(
	prober ports.HealthProber,
	random Randomizer,
	probeTimeout time.Duration,
	logger *slog.Logger,
) WarehouseSelector {
	if random == nil {
		random = NewRandomizer()
	}
	if probeTimeout <= 0 {
		probeTimeout = DefaultHealthProbeTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	return WarehouseSelector{
		prober:       prober,
		random:       random,
		probeTimeout: probeTimeout,
		logger:       logger.With("component", "warehouse_selector"),
	}
}

// Select returns the node the order should be submitted to. Health probe
// failures never surface as errors; they only drive the fallback branch.
func (s WarehouseSelector) Select(
	ctx context.Context,
	o *order.Order,
	registry warehouse.Registry,
) (warehouse.SelectionResult, error) {
	if err := o.Validate(); err != nil {
		return warehouse.SelectionResult{}, err
	}
	if err := registry.Validate(); err != nil {
		return warehouse.SelectionResult{}, err
	}

	natural, ok := registry.Lookup(o.Region())
	if !ok {
		return warehouse.SelectionResult{}, warehouse.NewUnknownRegionError(o.Region())
	}

	probeErr := s.probe(ctx, natural)
	if probeErr == nil {
		s.logger.InfoContext(ctx, "Warehouse assigned",
			"order_id", o.ID(), "warehouse", natural.ID())
		return warehouse.SelectionResult{Node: natural, Natural: natural}, nil
	}

	// A health check cut short by the caller says nothing about the node.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return warehouse.SelectionResult{}, ctxErr
	}

	s.logger.WarnContext(ctx, "Warehouse health check failed",
		"order_id", o.ID(), "warehouse", natural.ID(), "error", probeErr)

	alternates := registry.Alternates(natural.ID())
	if len(alternates) == 0 {
		return warehouse.SelectionResult{}, warehouse.NewNoAlternateWarehouseError(natural.ID(), probeErr)
	}

	chosen := alternates[s.random.IntN(len(alternates))]
	s.logger.InfoContext(ctx, "Fallback warehouse assigned",
		"order_id", o.ID(), "natural", natural.ID(), "warehouse", chosen.ID())

	return warehouse.SelectionResult{
		Node:        chosen,
		WasFallback: true,
		Natural:     natural,
		ProbeError:  probeErr,
	}, nil
}

func (s WarehouseSelector) probe(ctx context.Context, node warehouse.Node) error {
	probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()

	return s.prober.ProbeHealth(probeCtx, node)
}
