package reimbursement_test

import (
	"testing"

	"github.com/SscSPs/travel_allowance_app/internal/apperrors"
	"github.com/SscSPs/travel_allowance_app/internal/utils/reimbursement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDisplacement(t *testing.T) {
	tests := []struct {
		name      string
		km        string
		fuel      string
		wantKm    string
		indemnity string
	}{
		{"reference example", "120.0", "5.50", "120.0", "66.00"},
		{"distance rounded to one decimal", "123.456", "5.50", "123.5", "67.90"},
		{"zero distance is a genuine zero", "0", "6.19", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reimbursement.ComputeDisplacement("Curitiba", dec(tt.fuel), dec(tt.km))
			require.NoError(t, err)
			assertDecimal(t, tt.wantKm, got.RoundTripKm)
			assertDecimal(t, tt.indemnity, got.Indemnity)
			assertDecimal(t, tt.fuel, got.FuelPrice)
			assert.False(t, got.IndemnityZeroed)
		})
	}
}

func TestComputeDisplacement_RequiresFuelPrice(t *testing.T) {
	for _, fuel := range []decimal.Decimal{decimal.Zero, dec("-1")} {
		_, err := reimbursement.ComputeDisplacement("Curitiba", fuel, dec("100"))
		assert.ErrorIs(t, err, apperrors.ErrConfiguration)
	}
}

func TestComputeDisplacement_RejectsNegativeDistance(t *testing.T) {
	_, err := reimbursement.ComputeDisplacement("Curitiba", dec("5"), dec("-3"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestZeroIndemnityKeepsFigures(t *testing.T) {
	got, err := reimbursement.ComputeDisplacement("Curitiba", dec("5.50"), reimbursement.RoundTrip(dec("60")))
	require.NoError(t, err)

	zeroed := reimbursement.ZeroIndemnity(got)

	assert.True(t, zeroed.Indemnity.IsZero())
	assert.True(t, zeroed.IndemnityZeroed)
	assertDecimal(t, "120.0", zeroed.RoundTripKm)
	assertDecimal(t, "5.50", zeroed.FuelPrice)
}
