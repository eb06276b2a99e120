package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/submission"
	"dispatch/internal/core/domain/model/warehouse"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// SubmitOrderCommandHandler resolves the assigned warehouse in the registry
// and performs one submission attempt.
//
// Example:
//
//	handler := NewSubmitOrderCommandHandler(registry, submitter, metrics, logger)
//	cmd, _ := NewSubmitOrderCommand(o, "HCM")
//	outcome, err := handler.Handle(ctx, cmd)
//	if dispatch.KindOf(err).Retriable() {
//	    // try again later
//	}
type SubmitOrderCommandHandler struct {
	registry  warehouse.Registry
	submitter services.OrderSubmitter
	metrics   ports.DispatchMetrics
	logger    *slog.Logger
}

func NewSubmitOrderCommandHandler(
	registry warehouse.Registry,
	submitter services.OrderSubmitter,
	metrics ports.DispatchMetrics,
	logger *slog.Logger,
) SubmitOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return SubmitOrderCommandHandler{
		registry:  registry,
		submitter: submitter,
		metrics:   metrics,
		logger:    logger.With("component", "order_submitter"),
	}
}

// Handle returns the outcome of the attempt. A DuplicateRejected outcome comes
// with a KindDuplicateRejected error and a TransientFailure one with a
// KindTransient error.
func (h SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (submission.Outcome, error) {
	if err := cmd.Validate(); err != nil {
		return submission.Outcome{}, dispatch.NewError(dispatch.KindInternal, dispatch.StageSubmitOrder, err)
	}

	node, ok := h.registry.Lookup(cmd.WarehouseID())
	if !ok {
		return submission.Outcome{}, dispatch.NewError(
			dispatch.KindInternal,
			dispatch.StageSubmitOrder,
			errs.NewObjectNotFoundError("warehouse", cmd.WarehouseID()),
		)
	}

	o := cmd.Order()
	outcome, err := h.submitter.Submit(ctx, o, node)
	if err != nil {
		return submission.Outcome{}, dispatch.NewError(dispatch.KindInternal, dispatch.StageSubmitOrder, err)
	}

	h.metrics.ObserveSubmission(node.ID(), outcome.Kind())

	switch outcome.Kind() {
	case submission.Success:
		h.logger.InfoContext(ctx, "Order submitted",
			"order_id", o.ID(), "warehouse", node.ID(), "status_code", outcome.StatusCode())
		return outcome, nil

	case submission.DuplicateRejected:
		h.logger.WarnContext(ctx, "Duplicate order rejected",
			"order_id", o.ID(), "warehouse", node.ID())
		return outcome, dispatch.NewError(dispatch.KindDuplicateRejected, dispatch.StageSubmitOrder, outcome.Err())

	default:
		h.logger.WarnContext(ctx, "Order submission failed",
			"order_id", o.ID(), "warehouse", node.ID(), "status_code", outcome.StatusCode(), "error", outcome.Err())
		return outcome, dispatch.NewError(dispatch.KindTransient, dispatch.StageSubmitOrder, outcome.Err())
	}
}
