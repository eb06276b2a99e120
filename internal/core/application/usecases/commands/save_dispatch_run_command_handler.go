package commands

import (
	"context"
)

// SaveDispatchRunCommandHandler writes dispatch runs inside a unit of work.
//
// Example:
//
//	handler := NewSaveDispatchRunCommandHandler(uowFactory)
//	_ = run.MarkValidated(o)
//	cmd, _ := NewUpdateDispatchRunCommand(run)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to record run: %w", err)
//	}
type SaveDispatchRunCommandHandler struct {
	uowFactory DispatchRunUoWFactory
}

func NewSaveDispatchRunCommandHandler(uowFactory DispatchRunUoWFactory) SaveDispatchRunCommandHandler {
	return SaveDispatchRunCommandHandler{uowFactory: uowFactory}
}

func (h SaveDispatchRunCommandHandler) Handle(ctx context.Context, cmd SaveDispatchRunCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DispatchRunRepository()
	if cmd.IsNew() {
		if err := repo.Add(ctx, cmd.Run()); err != nil {
			return err
		}
	} else {
		if err := repo.Update(ctx, cmd.Run()); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
