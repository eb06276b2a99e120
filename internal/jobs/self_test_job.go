package jobs

import (
	"context"
	"log/slog"
	"sync"

	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/orchestrator"

	"github.com/robfig/cron/v3"
)

// DispatchRunner executes one dispatch run to completion.
type DispatchRunner interface {
	Run(ctx context.Context, req orchestrator.TriggerRequest) (*dispatch.Run, error)
}

// SelfTestJob triggers a diagnostic dispatch run on a cron schedule. The run
// carries no payload, so the pipeline makes up a test order and pushes it
// through selection and submission like any other order.
type SelfTestJob struct {
	runner   DispatchRunner
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// NewSelfTestJob creates the job. The schedule uses six fields (seconds
// first) or a descriptor such as "@every 15m".
func NewSelfTestJob(runner DispatchRunner, schedule string, logger *slog.Logger) *SelfTestJob {
	ctx, cancel := context.WithCancel(context.Background())

	return &SelfTestJob{
		runner:   runner,
		schedule: schedule,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "self_test_job"),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start schedules the job. A tick is skipped while the previous run is still
// in progress.
func (j *SelfTestJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.runOnce(j.ctx) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(j.ctx, "Self-test job started", "schedule", j.schedule)
	return nil
}

// Stop cancels a run in progress and waits for it to return.
func (j *SelfTestJob) Stop() {
	j.once.Do(func() {
		j.cancel()
		<-j.cron.Stop().Done()
		j.logger.InfoContext(context.Background(), "Self-test job stopped")
	})
}

func (j *SelfTestJob) runOnce(ctx context.Context) {
	run, err := j.runner.Run(ctx, orchestrator.TriggerRequest{})
	if run == nil {
		j.logger.ErrorContext(ctx, "Self-test dispatch could not start", "error", err)
		return
	}

	if err != nil {
		j.logger.WarnContext(ctx, "Self-test dispatch did not submit",
			"dispatch_id", run.ID(),
			"status", run.Status().String(),
			"error", err,
		)
		return
	}

	j.logger.InfoContext(ctx, "Self-test dispatch submitted",
		"dispatch_id", run.ID(),
		"warehouse_id", run.WarehouseID(),
	)
}
