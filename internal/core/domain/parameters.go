package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SystemParameters is the current administrator-set configuration used by calculations.
type SystemParameters struct {
	UnitValue        decimal.Decimal `json:"unitValue"`
	AverageFuelPrice decimal.Decimal `json:"averageFuelPrice"`
	UpdatedAt        time.Time       `json:"updatedAt"`
	UpdatedBy        string          `json:"updatedBy"`
}

// HasUnitValue reports whether the unit value is usable for allowance calculations.
func (p SystemParameters) HasUnitValue() bool {
	return p.UnitValue.IsPositive()
}

// HasFuelPrice reports whether the fuel price is usable for displacement calculations.
func (p SystemParameters) HasFuelPrice() bool {
	return p.AverageFuelPrice.IsPositive()
}
