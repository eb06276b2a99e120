package commands_test

import (
	"context"
	"io"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/submission"
	"dispatch/internal/core/domain/model/warehouse"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockDispatchRunRepository struct{ mock.Mock }

func (m *MockDispatchRunRepository) Add(ctx context.Context, run *dispatch.Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockDispatchRunRepository) Update(ctx context.Context, run *dispatch.Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockDispatchRunRepository) Get(ctx context.Context, id string) (*dispatch.Run, error) {
	args := m.Called(ctx, id)
	if run := args.Get(0); run != nil {
		return run.(*dispatch.Run), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockDispatchRunUoW struct{ mock.Mock }

func (m *MockDispatchRunUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDispatchRunUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDispatchRunUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDispatchRunUoW) DispatchRunRepository() ports.DispatchRunRepository {
	args := m.Called()
	return args.Get(0).(ports.DispatchRunRepository)
}

type MockDispatchRunUoWFactory struct{ mock.Mock }

func (m *MockDispatchRunUoWFactory) Create() commands.DispatchRunUoW {
	args := m.Called()
	return args.Get(0).(commands.DispatchRunUoW)
}

type MockDispatchMetrics struct{ mock.Mock }

func (m *MockDispatchMetrics) ObserveRun(status dispatch.Status) {
	m.Called(status)
}

func (m *MockDispatchMetrics) ObserveHealthProbeFailure(nodeID string) {
	m.Called(nodeID)
}

func (m *MockDispatchMetrics) ObserveFallback(region string) {
	m.Called(region)
}

func (m *MockDispatchMetrics) ObserveSubmission(nodeID string, kind submission.Kind) {
	m.Called(nodeID, kind)
}

type MockWarehouseClient struct{ mock.Mock }

func (m *MockWarehouseClient) ProbeHealth(ctx context.Context, node warehouse.Node) error {
	args := m.Called(ctx, node.ID())
	return args.Error(0)
}

func (m *MockWarehouseClient) SendOrder(
	ctx context.Context,
	node warehouse.Node,
	o *order.Order,
) (ports.WarehouseResponse, error) {
	args := m.Called(ctx, node.ID(), o.ID())
	return args.Get(0).(ports.WarehouseResponse), args.Error(1)
}

func newRegistry() warehouse.Registry {
	r, err := warehouse.ParseRegistry(warehouse.DefaultRegistrySpec)
	if err != nil {
		panic(err)
	}
	return r
}

func newOrder(id, region string) *order.Order {
	o, err := order.NewOrder(id, "A", region, "2024-01-01T00:00:00Z")
	if err != nil {
		panic(err)
	}
	return o
}
