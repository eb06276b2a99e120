package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	// DiagnosticOrderPrefix starts the id of every generated diagnostic order.
	DiagnosticOrderPrefix = "test_"

	// DiagnosticCustomerName is the customer of every generated diagnostic order.
	DiagnosticCustomerName = "Test Customer"

	diagnosticSuffixLength = 8
)

// IngestOrderCommandHandler turns a trigger payload into an Order.
//
// A present payload is copied verbatim after checking the required fields.
// An absent or empty one yields a diagnostic order in the default region.
//
// Example:
//
//	handler, _ := NewIngestOrderCommandHandler("HCM", time.Now, logger)
//	o, err := handler.Handle(ctx, NewIngestOrderCommand(nil))
//	// o.ID() == "test_1a2b3c4d", o.Region() == "HCM"
type IngestOrderCommandHandler struct {
	defaultRegion string
	now           func() time.Time
	logger        *slog.Logger
}

// NewIngestOrderCommandHandler creates the handler. A nil now uses time.Now.
func NewIngestOrderCommandHandler(
	defaultRegion string,
	now func() time.Time,
	logger *slog.Logger,
) (IngestOrderCommandHandler, error) {
	if strings.TrimSpace(defaultRegion) == "" {
		return IngestOrderCommandHandler{}, errs.NewValueIsRequiredError("default region")
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}

	return IngestOrderCommandHandler{
		defaultRegion: defaultRegion,
		now:           now,
		logger:        logger.With("component", "order_ingestor"),
	}, nil
}

// Handle returns the ingested order. Failures carry dispatch.KindValidation
// and wrap an *order.ValidationError listing the offending fields.
func (h IngestOrderCommandHandler) Handle(ctx context.Context, cmd IngestOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, dispatch.NewError(dispatch.KindInternal, dispatch.StageIngest, err)
	}

	if cmd.IsDiagnostic() {
		o, err := h.diagnosticOrder()
		if err != nil {
			return nil, dispatch.NewError(dispatch.KindInternal, dispatch.StageIngest, err)
		}
		h.logger.InfoContext(ctx, "Diagnostic order generated", "order_id", o.ID(), "region", o.Region())
		return o, nil
	}

	o, err := h.orderFromPayload(cmd.Raw())
	if err != nil {
		h.logger.WarnContext(ctx, "Order rejected", "error", err)
		return nil, dispatch.NewError(dispatch.KindValidation, dispatch.StageIngest, err)
	}

	h.logger.InfoContext(ctx, "Order ingested", "order_id", o.ID(), "region", o.Region())
	return o, nil
}

func (h IngestOrderCommandHandler) diagnosticOrder() (*order.Order, error) {
	id := DiagnosticOrderPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:diagnosticSuffixLength]
	return order.NewOrder(id, DiagnosticCustomerName, h.defaultRegion, h.timestamp())
}

func (h IngestOrderCommandHandler) orderFromPayload(raw map[string]any) (*order.Order, error) {
	fields := make(map[string]string, len(order.RequiredFields)+1)
	validationErr := &order.ValidationError{}

	for _, name := range order.RequiredFields {
		value, state := stringField(raw, name)
		switch state {
		case fieldMissing:
			validationErr.Missing = append(validationErr.Missing, name)
		case fieldInvalid:
			validationErr.Invalid = append(validationErr.Invalid, name)
		default:
			fields[name] = value
		}
	}

	timestamp, state := stringField(raw, order.FieldTimestamp)
	switch state {
	case fieldMissing:
		timestamp = h.timestamp()
	case fieldInvalid:
		validationErr.Invalid = append(validationErr.Invalid, order.FieldTimestamp)
	}

	if len(validationErr.Missing) > 0 || len(validationErr.Invalid) > 0 {
		return nil, validationErr
	}

	return order.NewOrder(
		fields[order.FieldOrderID],
		fields[order.FieldCustomerName],
		fields[order.FieldRegion],
		timestamp,
	)
}

func (h IngestOrderCommandHandler) timestamp() string {
	return h.now().UTC().Format(time.RFC3339)
}

type fieldState int

const (
	fieldPresent fieldState = iota
	fieldMissing
	fieldInvalid
)

// stringField reads a payload field. Absent, null and blank values are
// missing; any non-string value is invalid.
func stringField(raw map[string]any, name string) (string, fieldState) {
	value, ok := raw[name]
	if !ok || value == nil {
		return "", fieldMissing
	}

	s, ok := value.(string)
	if !ok {
		return "", fieldInvalid
	}
	if strings.TrimSpace(s) == "" {
		return "", fieldMissing
	}

	return s, fieldPresent
}
