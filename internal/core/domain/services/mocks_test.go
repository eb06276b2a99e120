package services_test

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/warehouse"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockHealthProber struct{ mock.Mock }

func (m *MockHealthProber) ProbeHealth(ctx context.Context, node warehouse.Node) error {
	args := m.Called(ctx, node.ID())
	return args.Error(0)
}

type MockOrderSender struct{ mock.Mock }

func (m *MockOrderSender) SendOrder(
	ctx context.Context,
	node warehouse.Node,
	o *order.Order,
) (ports.WarehouseResponse, error) {
	args := m.Called(ctx, node.ID(), o.ID())
	return args.Get(0).(ports.WarehouseResponse), args.Error(1)
}

// blockingProber waits for the probe deadline, like a node that never answers.
type blockingProber struct{}

func (blockingProber) ProbeHealth(ctx context.Context, _ warehouse.Node) error {
	<-ctx.Done()
	return ctx.Err()
}

func newRegistry(ids ...string) warehouse.Registry {
	nodes := make([]warehouse.Node, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, warehouse.MustNewNode(id, "http://node-"+id+":5000"))
	}
	r, err := warehouse.NewRegistry(nodes...)
	if err != nil {
		panic(err)
	}
	return r
}

func newOrder(id, region string) *order.Order {
	o, err := order.NewOrder(id, "Test Customer", region, "2024-01-01T00:00:00Z")
	if err != nil {
		panic(err)
	}
	return o
}
