// Package commands contains the operations that move an order through the
// dispatch pipeline and record the resulting dispatch run state.
// Every command is built through its constructor and validated by its handler
// before any side effect happens.
package commands

import (
	"dispatch/internal/core/ports"
)

// Unit of Work types used by the dispatch run command handlers.
//
// Example:
//
//	uow := factory.Create()
//	err := uow.Begin(ctx)
//	defer uow.Rollback(ctx)
//
//	err = uow.DispatchRunRepository().Update(ctx, run)
//	// ...
//
//	err = uow.Commit(ctx)
type (
	// DispatchRunUoW manages transactions for dispatch run changes.
	DispatchRunUoW = ports.UnitOfWork

	// DispatchRunUoWFactory creates new dispatch run unit of work instances.
	DispatchRunUoWFactory = ports.UnitOfWorkFactory
)
