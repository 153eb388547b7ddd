package utils_test

import (
	"testing"

	"github.com/SscSPs/travel_allowance_app/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"36000", "R$ 36.000,00"},
		{"66", "R$ 66,00"},
		{"1234567.891", "R$ 1.234.567,89"},
		{"0.005", "R$ 0,01"},
		{"-12.5", "-R$ 12,50"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.FormatBRL(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatDecimalBR(t *testing.T) {
	assert.Equal(t, "240,0", utils.FormatDecimalBR(decimal.RequireFromString("240"), 1))
	assert.Equal(t, "1.000", utils.FormatDecimalBR(decimal.NewFromInt(1000), 0))
}
