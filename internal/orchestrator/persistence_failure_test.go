package orchestrator_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/ports"
	"dispatch/internal/orchestrator"

	"github.com/prometheus/client_golang/prometheus"
)

var errConnectionReset = errors.New("connection reset by peer")

// failingUpdateUoWFactory fails the failOn-th Update across every unit of work
// it creates. Everything else reaches the wrapped factory.
type failingUpdateUoWFactory struct {
	inner   ports.UnitOfWorkFactory
	failOn  int32
	updates atomic.Int32
}

func (f *failingUpdateUoWFactory) Create() ports.UnitOfWork {
	return &failingUpdateUoW{UnitOfWork: f.inner.Create(), factory: f}
}

type failingUpdateUoW struct {
	ports.UnitOfWork
	factory *failingUpdateUoWFactory
}

func (u *failingUpdateUoW) DispatchRunRepository() ports.DispatchRunRepository {
	return &failingUpdateRepository{
		DispatchRunRepository: u.UnitOfWork.DispatchRunRepository(),
		factory:               u.factory,
	}
}

type failingUpdateRepository struct {
	ports.DispatchRunRepository
	factory *failingUpdateUoWFactory
}

func (r *failingUpdateRepository) Update(ctx context.Context, run *dispatch.Run) error {
	if r.factory.updates.Add(1) == r.factory.failOn {
		return errConnectionReset
	}
	return r.DispatchRunRepository.Update(ctx, run)
}

func (s *OrchestratorTestSuite) useFailingUpdate(failOn int32) {
	s.orch.Shutdown()
	s.reg = prometheus.NewRegistry()
	s.uowFactory = &failingUpdateUoWFactory{inner: s.uowFactory, failOn: failOn}
	s.orch = s.newOrchestrator(orchestrator.RetryPolicy{MaxAttempts: 3, Delay: time.Millisecond})
}

func healthyOrderRequest(id string) orchestrator.TriggerRequest {
	return orchestrator.TriggerRequest{
		DispatchID: id,
		Conf: map[string]any{
			"order_id":      "o1",
			"customer_name": "A",
			"region":        "HCM",
			"timestamp":     "2024-01-01T00:00:00Z",
		},
	}
}

func (s *OrchestratorTestSuite) TestStoreFailureAfterValidationAbortsRun() {
	s.useFailingUpdate(1)

	run, err := s.orch.Run(s.T().Context(), healthyOrderRequest("store-validated"))

	s.Require().ErrorIs(err, errConnectionReset)
	s.Equal(dispatch.KindInternal, dispatch.KindOf(err))
	s.Equal(dispatch.StatusAborted, run.Status())
	s.True(run.IsFinal())

	s.Equal(dispatch.StatusAborted, s.storedRun("store-validated").Status())
	s.Equal(int32(0), s.hcm.healthCalls.Load())
	s.Equal(int32(0), s.hcm.orderCalls.Load())
	s.Len(s.publisher.Published(), 1)
	s.InDelta(1, s.runsTotal(dispatch.StatusAborted), 0)
}

func (s *OrchestratorTestSuite) TestStoreFailureAfterAssignmentAbortsRun() {
	s.useFailingUpdate(2)

	run, err := s.orch.Run(s.T().Context(), healthyOrderRequest("store-assigned"))

	s.Require().ErrorIs(err, errConnectionReset)
	s.Equal(dispatch.StatusAborted, run.Status())

	stored := s.storedRun("store-assigned")
	s.Equal(dispatch.StatusAborted, stored.Status())
	s.Equal("HCM", stored.WarehouseID())
	s.Equal(int32(1), s.hcm.healthCalls.Load())
	s.Equal(int32(0), s.hcm.orderCalls.Load())
	s.Len(s.publisher.Published(), 1)
}

func (s *OrchestratorTestSuite) TestStoreFailureOfBackgroundRunIsVisible() {
	s.useFailingUpdate(1)

	_, err := s.orch.Start(s.T().Context(), healthyOrderRequest("store-background"))
	s.Require().NoError(err)
	s.orch.Wait()

	s.Equal(dispatch.StatusAborted, s.storedRun("store-background").Status())
	s.Len(s.publisher.Published(), 1)
}

func (s *OrchestratorTestSuite) TestStoreFailureOfFinalRecordStillPublishes() {
	// Updates: validated, assigned, attempt, final.
	s.useFailingUpdate(4)

	run, err := s.orch.Run(s.T().Context(), healthyOrderRequest("store-final"))

	s.Require().ErrorIs(err, errConnectionReset)
	s.Equal(dispatch.StatusSubmitted, run.Status())
	s.Len(s.publisher.Published(), 1)
	s.InDelta(1, s.runsTotal(dispatch.StatusSubmitted), 0)
}
