package commands

import (
	"errors"
	"maps"

	"dispatch/internal/pkg/guard"
)

var ErrIngestOrderCommandIsNotConstructed = errors.New(
	"IngestOrderCommand must be created via NewIngestOrderCommand constructor",
)

// IngestOrderCommand carries the raw trigger payload of one dispatch run.
// An absent or empty payload requests a diagnostic order.
//
// Example:
//
//	cmd := NewIngestOrderCommand(map[string]any{
//	    "order_id":      "o1",
//	    "customer_name": "A",
//	    "region":        "HCM",
//	})
//	o, err := handler.Handle(ctx, cmd)
type IngestOrderCommand struct {
	raw map[string]any

	guard guard.ConstructorGuard
}

// NewIngestOrderCommand copies raw so later changes by the caller do not leak in.
func NewIngestOrderCommand(raw map[string]any) IngestOrderCommand {
	return IngestOrderCommand{
		raw:   maps.Clone(raw),
		guard: guard.NewConstructorGuard(),
	}
}

func (c IngestOrderCommand) Validate() error {
	return c.guard.Validate(ErrIngestOrderCommandIsNotConstructed)
}

// Raw returns a copy of the payload.
func (c IngestOrderCommand) Raw() map[string]any {
	return maps.Clone(c.raw)
}

// IsDiagnostic reports whether the payload is absent or empty.
func (c IngestOrderCommand) IsDiagnostic() bool {
	return len(c.raw) == 0
}
