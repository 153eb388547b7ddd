package dto

import "github.com/shopspring/decimal"

// UpdateParametersRequest replaces the current system parameters.
type UpdateParametersRequest struct {
	UnitValue        decimal.Decimal `json:"unitValue" binding:"required"`
	AverageFuelPrice decimal.Decimal `json:"averageFuelPrice" binding:"required"`
}
