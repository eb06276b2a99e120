package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/pkg/guard"
)

var ErrSaveDispatchRunCommandIsNotConstructed = errors.New(
	"SaveDispatchRunCommand must be created via NewCreateDispatchRunCommand or NewUpdateDispatchRunCommand",
)

// SaveDispatchRunCommand persists the current state of a dispatch run.
// A create command inserts a new record and fails on an existing id; an
// update command overwrites the record of a run that is already stored.
//
// Example:
//
//	run, _ := dispatch.NewRun(uuid.NewString())
//	cmd, _ := NewCreateDispatchRunCommand(run)
//	if err := handler.Handle(ctx, cmd); errors.Is(err, errs.ErrObjectAlreadyExists) {
//	    // the caller reused a dispatch id
//	}
type SaveDispatchRunCommand struct {
	run   *dispatch.Run
	isNew bool

	guard guard.ConstructorGuard
}

func NewCreateDispatchRunCommand(run *dispatch.Run) (SaveDispatchRunCommand, error) {
	return newSaveDispatchRunCommand(run, true)
}

func NewUpdateDispatchRunCommand(run *dispatch.Run) (SaveDispatchRunCommand, error) {
	return newSaveDispatchRunCommand(run, false)
}

func newSaveDispatchRunCommand(run *dispatch.Run, isNew bool) (SaveDispatchRunCommand, error) {
	if err := run.Validate(); err != nil {
		return SaveDispatchRunCommand{}, err
	}

	return SaveDispatchRunCommand{
		run:   run,
		isNew: isNew,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c SaveDispatchRunCommand) Validate() error {
	return c.guard.Validate(ErrSaveDispatchRunCommandIsNotConstructed)
}

func (c SaveDispatchRunCommand) Run() *dispatch.Run {
	return c.run
}

// IsNew reports whether the run is inserted rather than updated.
func (c SaveDispatchRunCommand) IsNew() bool {
	return c.isNew
}
