package queries

import (
	"context"

	"dispatch/internal/core/domain/model/dispatch"

	"gorm.io/gorm"
)

type ListDispatchRunsQueryHandler struct {
	db *gorm.DB
}

func NewListDispatchRunsQueryHandler(db *gorm.DB) ListDispatchRunsQueryHandler {
	return ListDispatchRunsQueryHandler{db: db}
}

// Handle returns the newest runs first. Runs created at the same instant are
// ordered by id.
func (h ListDispatchRunsQueryHandler) Handle(ctx context.Context, query ListDispatchRunsQuery) ([]DispatchRunView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx)
	if query.Status() == dispatch.StatusUnknown {
		tx = tx.Raw(`
			SELECT `+dispatchRunColumns+`
			FROM dispatch_runs
			ORDER BY created_at DESC, id
			LIMIT ?
		`, query.Limit())
	} else {
		tx = tx.Raw(`
			SELECT `+dispatchRunColumns+`
			FROM dispatch_runs
			WHERE status = ?
			ORDER BY created_at DESC, id
			LIMIT ?
		`, query.Status().String(), query.Limit())
	}

	rows, err := tx.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]DispatchRunView, 0)
	for rows.Next() {
		view, scanErr := scanDispatchRunView(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
