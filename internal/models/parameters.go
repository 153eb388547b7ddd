package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SystemParameters is the single row of the system_parameters table.
type SystemParameters struct {
	UnitValue        decimal.Decimal `db:"unit_value"`
	AverageFuelPrice decimal.Decimal `db:"average_fuel_price"`
	LastUpdatedAt    time.Time       `db:"last_updated_at"`
	LastUpdatedBy    string          `db:"last_updated_by"`
}
