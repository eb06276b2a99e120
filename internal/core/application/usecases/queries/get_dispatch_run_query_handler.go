package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetDispatchRunQueryHandler struct {
	db *gorm.DB
}

func NewGetDispatchRunQueryHandler(db *gorm.DB) GetDispatchRunQueryHandler {
	return GetDispatchRunQueryHandler{db: db}
}

// Handle returns the run, or an error matching errs.ErrObjectNotFound.
func (h GetDispatchRunQueryHandler) Handle(ctx context.Context, query GetDispatchRunQuery) (DispatchRunView, error) {
	if err := query.Validate(); err != nil {
		return DispatchRunView{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT `+dispatchRunColumns+`
		FROM dispatch_runs
		WHERE id = ?
	`, query.ID()).Row()

	view, err := scanDispatchRunView(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DispatchRunView{}, errs.NewObjectNotFoundError("dispatch run", query.ID())
		}
		return DispatchRunView{}, err
	}

	return view, nil
}
