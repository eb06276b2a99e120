// Package ports defines the contracts between the dispatch core and the
// infrastructure around it: warehouse nodes, persistence, event publishing
// and metrics. Adapters under internal/adapters implement them.
package ports

import (
	"context"
	"encoding/json"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/warehouse"
)

// HealthProber checks whether a warehouse node is able to take orders.
type HealthProber interface {
	// ProbeHealth returns nil when the node answered its health endpoint with
	// 200, and an error describing the status code, timeout or connection
	// failure otherwise. Implementations must honour ctx cancellation.
	ProbeHealth(ctx context.Context, node warehouse.Node) error
}

// WarehouseResponse is a decoded answer of a node's order endpoint.
type WarehouseResponse struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Body is the raw response body.
	Body json.RawMessage

	// ErrorCode is the structured error code of an error body, if any.
	ErrorCode string

	// ErrorDetail is the free-text error detail of an error body, if any.
	ErrorDetail string
}

// OrderSender delivers an order to a warehouse node.
type OrderSender interface {
	// SendOrder posts the order and returns whatever response arrived. A
	// non-nil error means no response was received (timeout, refused
	// connection, broken body); status codes are never turned into errors.
	SendOrder(ctx context.Context, node warehouse.Node, o *order.Order) (WarehouseResponse, error)
}

// WarehouseClient is the full two-endpoint WarehouseService contract.
type WarehouseClient interface {
	HealthProber
	OrderSender
}
