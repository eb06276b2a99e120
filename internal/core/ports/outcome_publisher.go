package ports

import (
	"context"

	"dispatch/internal/core/domain/model/dispatch"
)

// OutcomePublisher announces runs that reached a final status.
type OutcomePublisher interface {
	PublishOutcome(ctx context.Context, run *dispatch.Run) error
}
