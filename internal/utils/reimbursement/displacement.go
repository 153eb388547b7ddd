package reimbursement

import (
	"github.com/SscSPs/travel_allowance_app/internal/apperrors"
	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var ten = decimal.NewFromInt(10)

// ComputeDisplacement prices a round trip at one fuel liter per ten kilometres.
// roundTripKm must already be doubled from the one-way road distance.
func ComputeDisplacement(destination string, fuelPrice, roundTripKm decimal.Decimal) (domain.DisplacementResult, error) {
	if !fuelPrice.IsPositive() {
		return domain.DisplacementResult{}, apperrors.NewConfigurationError("averageFuelPrice")
	}
	if roundTripKm.IsNegative() {
		return domain.DisplacementResult{}, apperrors.NewValidationFailedError("round trip distance cannot be negative")
	}

	return domain.DisplacementResult{
		Destination: destination,
		RoundTripKm: roundTripKm.Round(1),
		FuelPrice:   fuelPrice,
		Indemnity:   roundTripKm.Div(ten).Mul(fuelPrice).Round(2),
	}, nil
}

// RoundTrip doubles a one-way distance.
func RoundTrip(oneWayKm decimal.Decimal) decimal.Decimal {
	return oneWayKm.Mul(decimal.NewFromInt(2))
}

// ZeroIndemnity keeps the distance and fuel figures but clears the amount owed.
// It applies to every transport mode other than the requester's own vehicle.
func ZeroIndemnity(r domain.DisplacementResult) domain.DisplacementResult {
	r.Indemnity = decimal.Zero
	r.IndemnityZeroed = true
	return r
}
