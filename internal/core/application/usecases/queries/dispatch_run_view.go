package queries

import "time"

// DispatchRunView is the read model of one dispatch run.
type DispatchRunView struct {
	ID           string
	Status       string
	OrderID      string
	CustomerName string
	Region       string
	Timestamp    string
	WarehouseID  string
	WasFallback  bool
	Attempts     int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const dispatchRunColumns = `
	id,
	status,
	order_id,
	customer_name,
	region,
	order_timestamp,
	warehouse_id,
	was_fallback,
	attempts,
	last_error,
	created_at,
	updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDispatchRunView(row rowScanner) (DispatchRunView, error) {
	var v DispatchRunView
	err := row.Scan(
		&v.ID,
		&v.Status,
		&v.OrderID,
		&v.CustomerName,
		&v.Region,
		&v.Timestamp,
		&v.WarehouseID,
		&v.WasFallback,
		&v.Attempts,
		&v.LastError,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return DispatchRunView{}, err
	}

	v.CreatedAt = v.CreatedAt.UTC()
	v.UpdatedAt = v.UpdatedAt.UTC()
	return v, nil
}
