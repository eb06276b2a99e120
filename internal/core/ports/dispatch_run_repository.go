package ports

import (
	"context"

	"dispatch/internal/core/domain/model/dispatch"
)

// DispatchRunRepository defines the persistence contract for dispatch runs.
type DispatchRunRepository interface {
	// Add persists a new run. A run with the same id yields an error matching
	// errs.ErrObjectAlreadyExists.
	Add(ctx context.Context, run *dispatch.Run) error

	// Update persists the current state of an existing run.
	Update(ctx context.Context, run *dispatch.Run) error

	// Get retrieves a run by id, or an error matching errs.ErrObjectNotFound.
	Get(ctx context.Context, id string) (*dispatch.Run, error)
}
