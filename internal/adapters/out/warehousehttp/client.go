// Package warehousehttp implements the warehouse node contract over HTTP/JSON:
// GET {base}/health for liveness and POST {base}/order for submission.
package warehousehttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/warehouse"
	"dispatch/internal/core/ports"
)

const (
	healthPath = "/health"
	orderPath  = "/order"

	maxBodyBytes = 1 << 20
)

var _ ports.WarehouseClient = (*Client)(nil)

// Client talks to warehouse nodes. Timeouts come from the caller's context;
// the underlying http.Client carries none of its own.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a client. A nil httpClient uses a dedicated http.Client
// with the default transport.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{httpClient: httpClient}
}

// orderRequest is the submission body.
type orderRequest struct {
	OrderID      string `json:"order_id"`
	CustomerName string `json:"customer_name"`
	Region       string `json:"region"`
	Timestamp    string `json:"timestamp"`
}

// errorResponse is the error body of a warehouse node. Details carries the
// storage error text on nodes that predate Code.
type errorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details"`
}

// ProbeHealth succeeds only on 200 from the node's health endpoint.
func (c *Client) ProbeHealth(ctx context.Context, node warehouse.Node) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, node.BaseAddress()+healthPath, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// SendOrder posts the order and returns the response whatever its status.
func (c *Client) SendOrder(ctx context.Context, node warehouse.Node, o *order.Order) (ports.WarehouseResponse, error) {
	if err := o.Validate(); err != nil {
		return ports.WarehouseResponse{}, err
	}

	reqBody, err := json.Marshal(orderRequest{
		OrderID:      o.ID(),
		CustomerName: o.CustomerName(),
		Region:       o.Region(),
		Timestamp:    o.Timestamp(),
	})
	if err != nil {
		return ports.WarehouseResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, node.BaseAddress()+orderPath, bytes.NewReader(reqBody))
	if err != nil {
		return ports.WarehouseResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.WarehouseResponse{}, fmt.Errorf("order request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return ports.WarehouseResponse{}, fmt.Errorf("read order response: %w", err)
	}

	result := ports.WarehouseResponse{StatusCode: resp.StatusCode}
	if json.Valid(body) {
		result.Body = json.RawMessage(body)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		result.ErrorCode, result.ErrorDetail = decodeError(body)
	}

	return result, nil
}

// decodeError extracts the code and detail of an error body. A body that is
// not the JSON error shape becomes the detail as is.
func decodeError(body []byte) (string, string) {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err != nil {
		return "", string(bytes.TrimSpace(body))
	}

	detail := e.Details
	if detail == "" {
		detail = e.Error
	}
	return e.Code, detail
}
