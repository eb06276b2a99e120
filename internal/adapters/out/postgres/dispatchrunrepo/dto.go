package dispatchrunrepo

import (
	"time"

	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/order"
)

// DispatchRunDTO is the row of one dispatch run. Order columns are empty
// while the run has not been validated.
type DispatchRunDTO struct {
	ID             string `gorm:"primaryKey;size:128"`
	OrderID        string `gorm:"size:255;index"`
	CustomerName   string `gorm:"size:255"`
	Region         string `gorm:"size:64"`
	OrderTimestamp string `gorm:"size:64"`
	Status         string `gorm:"size:32;index"`
	WarehouseID    string `gorm:"size:64"`
	WasFallback    bool
	Attempts       int
	LastError      string    `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"autoCreateTime:false;index"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime:false"`
}

func (DispatchRunDTO) TableName() string {
	return "dispatch_runs"
}

func fromDomain(run *dispatch.Run) DispatchRunDTO {
	dto := DispatchRunDTO{
		ID:          run.ID(),
		Status:      run.Status().String(),
		WarehouseID: run.WarehouseID(),
		WasFallback: run.WasFallback(),
		Attempts:    run.Attempts(),
		LastError:   run.LastError(),
		CreatedAt:   run.CreatedAt(),
		UpdatedAt:   run.UpdatedAt(),
	}

	if o := run.Order(); o != nil {
		dto.OrderID = o.ID()
		dto.CustomerName = o.CustomerName()
		dto.Region = o.Region()
		dto.OrderTimestamp = o.Timestamp()
	}

	return dto
}

func toDomain(dto DispatchRunDTO) (*dispatch.Run, error) {
	status, err := dispatch.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var o *order.Order
	if dto.OrderID != "" {
		o, err = order.NewOrder(dto.OrderID, dto.CustomerName, dto.Region, dto.OrderTimestamp)
		if err != nil {
			return nil, err
		}
	}

	return dispatch.RestoreRun(
		dto.ID,
		o,
		status,
		dto.WarehouseID,
		dto.WasFallback,
		dto.Attempts,
		dto.LastError,
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
	)
}
