// Package orchestrator runs the dispatch pipeline for one order instance:
// ingest, select a warehouse, submit. Each status change is recorded on the
// dispatch run; a run that reaches a final status is published and counted.
//
// Stages that fail with a retriable error are re-run after the retry policy
// delay until the attempt budget is spent. Ingestion is never re-run and
// later stages reuse the already ingested order.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/submission"
	"dispatch/internal/core/domain/model/warehouse"
	"dispatch/internal/core/ports"

	"github.com/google/uuid"
)

// TriggerRequest starts one dispatch run.
type TriggerRequest struct {
	// DispatchID identifies the run. An empty id is replaced by a random UUID.
	DispatchID string

	// Conf is the raw order payload. Nil or empty requests a diagnostic order.
	Conf map[string]any
}

// Orchestrator sequences the pipeline stages.
//
// Example:
//
//	orch := orchestrator.New(ingest, assign, submit, save, publisher, metrics,
//	    orchestrator.DefaultRetryPolicy(), logger)
//	defer orch.Shutdown()
//
//	run, err := orch.Start(ctx, orchestrator.TriggerRequest{Conf: payload})
//	// run.Status() == dispatch.StatusReceived, the pipeline continues in the background
type Orchestrator struct {
	ingest    commands.IngestOrderCommandHandler
	assign    commands.AssignWarehouseCommandHandler
	submit    commands.SubmitOrderCommandHandler
	save      commands.SaveDispatchRunCommandHandler
	publisher ports.OutcomePublisher
	metrics   ports.DispatchMetrics
	policy    RetryPolicy
	logger    *slog.Logger

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func New(
	ingest commands.IngestOrderCommandHandler,
	assign commands.AssignWarehouseCommandHandler,
	submit commands.SubmitOrderCommandHandler,
	save commands.SaveDispatchRunCommandHandler,
	publisher ports.OutcomePublisher,
	metrics ports.DispatchMetrics,
	policy RetryPolicy,
	logger *slog.Logger,
) (*Orchestrator, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	baseCtx, cancel := context.WithCancel(context.Background())

	return &Orchestrator{
		ingest:    ingest,
		assign:    assign,
		submit:    submit,
		save:      save,
		publisher: publisher,
		metrics:   metrics,
		policy:    policy,
		logger:    logger.With("component", "orchestrator"),
		baseCtx:   baseCtx,
		cancel:    cancel,
	}, nil
}

// Start records a new run and executes the pipeline in the background. The
// returned run is in StatusReceived. A reused dispatch id fails with an error
// matching errs.ErrObjectAlreadyExists and starts nothing.
func (o *Orchestrator) Start(ctx context.Context, req TriggerRequest) (*dispatch.Run, error) {
	run, err := o.createRun(ctx, req)
	if err != nil {
		return nil, err
	}

	// The pipeline outlives the trigger request; only Shutdown stops it.
	snapshot := *run
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		_ = o.execute(o.baseCtx, run, req.Conf)
	}()

	return &snapshot, nil
}

// Run records a new run and executes the pipeline before returning. The
// error is the failure that ended the run, nil when the order was submitted.
func (o *Orchestrator) Run(ctx context.Context, req TriggerRequest) (*dispatch.Run, error) {
	run, err := o.createRun(ctx, req)
	if err != nil {
		return nil, err
	}

	return run, o.execute(ctx, run, req.Conf)
}

// Wait blocks until every run started with Start has finished.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// Shutdown cancels pending retry delays of background runs and waits for them.
func (o *Orchestrator) Shutdown() {
	o.cancel()
	o.wg.Wait()
}

func (o *Orchestrator) createRun(ctx context.Context, req TriggerRequest) (*dispatch.Run, error) {
	id := req.DispatchID
	if id == "" {
		id = uuid.NewString()
	}

	run, err := dispatch.NewRun(id)
	if err != nil {
		return nil, err
	}

	cmd, err := commands.NewCreateDispatchRunCommand(run)
	if err != nil {
		return nil, err
	}
	if err = o.save.Handle(ctx, cmd); err != nil {
		return nil, err
	}

	o.logger.InfoContext(ctx, "Dispatch run received", "dispatch_id", id)
	return run, nil
}

func (o *Orchestrator) execute(ctx context.Context, run *dispatch.Run, conf map[string]any) error {
	ingested, err := o.ingest.Handle(ctx, commands.NewIngestOrderCommand(conf))
	if err != nil {
		return o.finish(ctx, run, err)
	}
	if err = run.MarkValidated(ingested); err != nil {
		return o.finish(ctx, run, dispatch.NewError(dispatch.KindInternal, dispatch.StageIngest, err))
	}
	if err = o.persist(ctx, run); err != nil {
		return o.finish(ctx, run, dispatch.NewError(dispatch.KindInternal, dispatch.StageIngest, err))
	}

	selection, err := o.selectWarehouse(ctx, ingested)
	if err != nil {
		return o.finish(ctx, run, err)
	}
	if err = run.MarkWarehouseAssigned(selection); err != nil {
		return o.finish(ctx, run, dispatch.NewError(dispatch.KindInternal, dispatch.StageSelectWarehouse, err))
	}
	if err = o.persist(ctx, run); err != nil {
		return o.finish(ctx, run, dispatch.NewError(dispatch.KindInternal, dispatch.StageSelectWarehouse, err))
	}

	return o.finish(ctx, run, o.submitOrder(ctx, run, ingested))
}

func (o *Orchestrator) selectWarehouse(ctx context.Context, ingested *order.Order) (warehouse.SelectionResult, error) {
	cmd, err := commands.NewAssignWarehouseCommand(ingested)
	if err != nil {
		return warehouse.SelectionResult{}, dispatch.NewError(dispatch.KindInternal, dispatch.StageSelectWarehouse, err)
	}

	var selection warehouse.SelectionResult
	err = o.withRetry(ctx, dispatch.StageSelectWarehouse, func() error {
		var stageErr error
		selection, stageErr = o.assign.Handle(ctx, cmd)
		return stageErr
	})

	return selection, err
}

func (o *Orchestrator) submitOrder(ctx context.Context, run *dispatch.Run, ingested *order.Order) error {
	cmd, err := commands.NewSubmitOrderCommand(ingested, run.WarehouseID())
	if err != nil {
		return dispatch.NewError(dispatch.KindInternal, dispatch.StageSubmitOrder, err)
	}

	return o.withRetry(ctx, dispatch.StageSubmitOrder, func() error {
		outcome, stageErr := o.submit.Handle(ctx, cmd)
		if outcome.Kind() == submission.Unknown && stageErr != nil {
			return stageErr
		}

		run.RecordAttempt(stageErr)
		if persistErr := o.persist(ctx, run); persistErr != nil {
			return dispatch.NewError(dispatch.KindInternal, dispatch.StageSubmitOrder, persistErr)
		}
		return stageErr
	})
}

// withRetry runs attempt until it succeeds, fails with a non-retriable kind or
// the policy budget is spent. The last error is returned.
func (o *Orchestrator) withRetry(ctx context.Context, stage string, attempt func() error) error {
	var err error
	for n := 1; n <= o.policy.MaxAttempts; n++ {
		err = attempt()
		if err == nil || !dispatch.KindOf(err).Retriable() {
			return err
		}
		if n == o.policy.MaxAttempts {
			break
		}

		o.logger.WarnContext(ctx, "Stage failed, retrying",
			"stage", stage, "attempt", n, "max_attempts", o.policy.MaxAttempts,
			"delay", o.policy.Delay, "error", err)

		if waitErr := o.policy.wait(ctx); waitErr != nil {
			o.logger.WarnContext(ctx, "Retry abandoned", "stage", stage, "error", waitErr)
			// Failed is reserved for a spent budget; an abandoned run is aborted.
			return dispatch.NewError(dispatch.KindInternal, stage,
				fmt.Errorf("retry abandoned after attempt %d of %d: %w (last error: %v)",
					n, o.policy.MaxAttempts, waitErr, err))
		}
	}

	return err
}

// finish moves the run to the final status matching stageErr, records it and
// announces it.
func (o *Orchestrator) finish(ctx context.Context, run *dispatch.Run, stageErr error) error {
	var transitionErr error
	switch kind := dispatch.KindOf(stageErr); kind {
	case dispatch.KindUnknown:
		transitionErr = run.MarkSubmitted()
	case dispatch.KindDuplicateRejected:
		transitionErr = run.MarkDuplicateRejected(stageErr)
	case dispatch.KindTransient:
		transitionErr = run.MarkFailed(stageErr)
	default:
		transitionErr = run.Abort(stageErr)
	}
	if transitionErr != nil {
		o.logger.ErrorContext(ctx, "Dispatch run transition failed",
			"dispatch_id", run.ID(), "status", run.Status(), "error", transitionErr)
		return transitionErr
	}

	// The final record is written even when the pipeline context was cancelled.
	// A failed write still leaves the run final in memory, published and counted.
	finalCtx := context.WithoutCancel(ctx)
	persistErr := o.persist(finalCtx, run)

	if err := o.publisher.PublishOutcome(finalCtx, run); err != nil {
		o.logger.ErrorContext(finalCtx, "Dispatch outcome publishing failed",
			"dispatch_id", run.ID(), "error", err)
	}
	o.metrics.ObserveRun(run.Status())

	attrs := []any{
		"dispatch_id", run.ID(),
		"status", run.Status().String(),
		"warehouse", run.WarehouseID(),
		"was_fallback", run.WasFallback(),
		"attempts", run.Attempts(),
	}
	if stageErr != nil {
		o.logger.WarnContext(finalCtx, "Dispatch run ended", append(attrs, "error", stageErr)...)
	} else {
		o.logger.InfoContext(finalCtx, "Dispatch run ended", attrs...)
	}

	if persistErr != nil {
		return errors.Join(stageErr, persistErr)
	}
	return stageErr
}

func (o *Orchestrator) persist(ctx context.Context, run *dispatch.Run) error {
	cmd, err := commands.NewUpdateDispatchRunCommand(run)
	if err != nil {
		return err
	}

	if err = o.save.Handle(ctx, cmd); err != nil {
		o.logger.ErrorContext(ctx, "Dispatch run update failed",
			"dispatch_id", run.ID(), "status", run.Status().String(), "error", err)
		return err
	}

	return nil
}
