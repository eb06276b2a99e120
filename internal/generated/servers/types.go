// Package servers holds the HTTP contract of the dispatch API described by
// api/openapi.yml: request and response types, the ServerInterface the
// inbound adapter implements and the echo wrapper that binds parameters.
// The layout follows oapi-codegen's echo server output.
package servers

import (
	"time"
)

const (
	BasicAuthScopes = "basicAuth.Scopes"
)

// Defines values for ListDispatchesParamsStatus.
const (
	ListDispatchesParamsStatusReceived          ListDispatchesParamsStatus = "received"
	ListDispatchesParamsStatusValidated         ListDispatchesParamsStatus = "validated"
	ListDispatchesParamsStatusWarehouseAssigned ListDispatchesParamsStatus = "warehouse_assigned"
	ListDispatchesParamsStatusSubmitted         ListDispatchesParamsStatus = "submitted"
	ListDispatchesParamsStatusDuplicateRejected ListDispatchesParamsStatus = "duplicate_rejected"
	ListDispatchesParamsStatusFailed            ListDispatchesParamsStatus = "failed"
	ListDispatchesParamsStatusAborted           ListDispatchesParamsStatus = "aborted"
)

// DispatchAccepted defines model for DispatchAccepted.
type DispatchAccepted struct {
	DispatchId string `json:"dispatch_id"`
	Status     string `json:"status"`
}

// DispatchRun defines model for DispatchRun.
type DispatchRun struct {
	Attempts    int       `json:"attempts"`
	CreatedAt   time.Time `json:"created_at"`
	DispatchId  string    `json:"dispatch_id"`
	LastError   *string   `json:"last_error,omitempty"`
	Order       *Order    `json:"order,omitempty"`
	Status      string    `json:"status"`
	UpdatedAt   time.Time `json:"updated_at"`
	WarehouseId *string   `json:"warehouse_id,omitempty"`
	WasFallback bool      `json:"was_fallback"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Order defines model for Order.
type Order struct {
	CustomerName string `json:"customer_name"`
	OrderId      string `json:"order_id"`
	Region       string `json:"region"`
	Timestamp    string `json:"timestamp"`
}

// TriggerDispatchRequest defines model for TriggerDispatchRequest.
type TriggerDispatchRequest struct {
	Conf       *map[string]interface{} `json:"conf,omitempty"`
	DispatchId *string                 `json:"dispatch_id,omitempty"`
}

// Warehouse defines model for Warehouse.
type Warehouse struct {
	BaseAddress string `json:"base_address"`
	Id          string `json:"id"`
}

// ListDispatchesParams defines parameters for ListDispatches.
type ListDispatchesParams struct {
	Status *ListDispatchesParamsStatus `form:"status,omitempty" json:"status,omitempty"`
	Limit  *int                        `form:"limit,omitempty" json:"limit,omitempty"`
}

// ListDispatchesParamsStatus defines parameters for ListDispatches.
type ListDispatchesParamsStatus string

// TriggerDispatchJSONRequestBody defines body for TriggerDispatch for application/json ContentType.
type TriggerDispatchJSONRequestBody = TriggerDispatchRequest
