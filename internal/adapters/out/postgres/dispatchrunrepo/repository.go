package dispatchrunrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolation pq.ErrorCode = "23505"

type GormDispatchRunRepository struct {
	db *gorm.DB
}

func NewGormDispatchRunRepository(db *gorm.DB) *GormDispatchRunRepository {
	return &GormDispatchRunRepository{db: db}
}

func (r *GormDispatchRunRepository) Add(ctx context.Context, run *dispatch.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	dto := fromDomain(run)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewObjectAlreadyExistsErrorWithCause("dispatch run", run.ID(), err)
		}
		return err
	}

	return nil
}

// Update writes every column, so cleared fields such as the last error are
// persisted too.
func (r *GormDispatchRunRepository) Update(ctx context.Context, run *dispatch.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	dto := fromDomain(run)
	result := r.db.WithContext(ctx).
		Model(&DispatchRunDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("dispatch run", run.ID())
	}

	return nil
}

func (r *GormDispatchRunRepository) Get(ctx context.Context, id string) (*dispatch.Run, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("dispatch id")
	}

	var dto DispatchRunDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("dispatch run", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// isUniqueViolation recognises a duplicate primary key from lib/pq and from
// dialects that translate errors into gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
