package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/submission"
	"dispatch/internal/core/domain/model/warehouse"
	"dispatch/internal/core/ports"
)

const (
	// DefaultSubmitTimeout bounds a single order submission.
	DefaultSubmitTimeout = 5 * time.Second

	// DuplicateOrderErrorCode is the error code a warehouse returns for an
	// order id it already stores.
	DuplicateOrderErrorCode = "DUPLICATE_ORDER_ID"

	// legacyDuplicateDetail marks a uniqueness violation in the error detail of
	// warehouses that predate DuplicateOrderErrorCode.
	legacyDuplicateDetail = "unique constraint"
)

// OrderSubmitter sends orders to warehouse nodes and classifies the answer.
//
// Classification:
//   - 2xx: Success with the response body
//   - 5xx carrying the duplicate code (or the legacy uniqueness detail): DuplicateRejected
//   - anything else, timeouts and connection failures: TransientFailure
type OrderSubmitter struct {
	sender  ports.OrderSender
	timeout time.Duration
}

// NewOrderSubmitter creates a submitter. A non-positive timeout uses DefaultSubmitTimeout.
func NewOrderSubmitter(sender ports.OrderSender, timeout time.Duration) OrderSubmitter {
	if timeout <= 0 {
		timeout = DefaultSubmitTimeout
	}
	return OrderSubmitter{sender: sender, timeout: timeout}
}

// Submit performs one submission attempt. The returned error is only set for
// invalid arguments; every warehouse-side result is an Outcome.
func (s OrderSubmitter) Submit(ctx context.Context, o *order.Order, node warehouse.Node) (submission.Outcome, error) {
	if err := o.Validate(); err != nil {
		return submission.Outcome{}, err
	}
	if err := node.Validate(); err != nil {
		return submission.Outcome{}, err
	}

	submitCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.sender.SendOrder(submitCtx, node, o)
	if err != nil {
		return submission.NewTransientFailure(o.ID(), node.ID(), 0, err), nil
	}

	return classify(o, node, resp), nil
}

func classify(o *order.Order, node warehouse.Node, resp ports.WarehouseResponse) submission.Outcome {
	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return submission.NewSuccess(o.ID(), node.ID(), resp.StatusCode, resp.Body)

	case resp.StatusCode >= http.StatusInternalServerError && isDuplicate(resp):
		return submission.NewDuplicateRejected(o.ID(), node.ID(), resp.StatusCode, resp.ErrorDetail)

	default:
		return submission.NewTransientFailure(o.ID(), node.ID(), resp.StatusCode, responseError(resp))
	}
}

func isDuplicate(resp ports.WarehouseResponse) bool {
	if resp.ErrorCode != "" {
		return resp.ErrorCode == DuplicateOrderErrorCode
	}
	return strings.Contains(strings.ToLower(resp.ErrorDetail), legacyDuplicateDetail)
}

func responseError(resp ports.WarehouseResponse) error {
	detail := resp.ErrorDetail
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}
	return fmt.Errorf("warehouse responded %d: %s", resp.StatusCode, detail)
}
