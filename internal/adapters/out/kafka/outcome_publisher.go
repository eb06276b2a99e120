// Package kafka publishes dispatch outcome events: one message per run that
// reached a final status, keyed by order id so every event of an order lands
// on the same partition.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const eventTypeDispatchOutcome = "dispatch.outcome"

var (
	_ ports.OutcomePublisher = (*OutcomePublisher)(nil)
	_ ports.OutcomePublisher = NopOutcomePublisher{}

	ErrRunIsNotFinal = errors.New("only runs in a final status are published")
)

// MessageWriter is the part of kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OutcomeEvent is the JSON value of an outcome message.
type OutcomeEvent struct {
	EventID     string    `json:"event_id"`
	DispatchID  string    `json:"dispatch_id"`
	OrderID     string    `json:"order_id,omitempty"`
	Region      string    `json:"region,omitempty"`
	Status      string    `json:"status"`
	WarehouseID string    `json:"warehouse_id,omitempty"`
	WasFallback bool      `json:"was_fallback"`
	Attempts    int       `json:"attempts"`
	LastError   string    `json:"last_error,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type OutcomePublisher struct {
	writer MessageWriter
}

// NewOutcomePublisher creates a publisher writing to topic on brokers.
func NewOutcomePublisher(brokers []string, topic string) (*OutcomePublisher, error) {
	if len(brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("kafka brokers")
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("kafka topic")
	}

	return NewOutcomePublisherWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  3,
	}), nil
}

// NewOutcomePublisherWithWriter creates a publisher over an existing writer.
// The writer must have its topic set.
func NewOutcomePublisherWithWriter(writer MessageWriter) *OutcomePublisher {
	return &OutcomePublisher{writer: writer}
}

func (p *OutcomePublisher) PublishOutcome(ctx context.Context, run *dispatch.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}
	if !run.IsFinal() {
		return ErrRunIsNotFinal
	}

	event := OutcomeEvent{
		EventID:     uuid.NewString(),
		DispatchID:  run.ID(),
		Status:      run.Status().String(),
		WarehouseID: run.WarehouseID(),
		WasFallback: run.WasFallback(),
		Attempts:    run.Attempts(),
		LastError:   run.LastError(),
		OccurredAt:  run.UpdatedAt(),
	}

	key := run.ID()
	if o := run.Order(); o != nil {
		event.OrderID = o.ID()
		event.Region = o.Region()
		key = o.ID()
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(eventTypeDispatchOutcome)},
		},
	})
}

// Close flushes pending messages.
func (p *OutcomePublisher) Close() error {
	return p.writer.Close()
}

// NopOutcomePublisher drops every event. It is used when no broker is configured.
type NopOutcomePublisher struct{}

func (NopOutcomePublisher) PublishOutcome(context.Context, *dispatch.Run) error {
	return nil
}
