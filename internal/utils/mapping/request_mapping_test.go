package mapping_test

import (
	"testing"
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	"github.com/SscSPs/travel_allowance_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestMappingKeepsOptionalFields(t *testing.T) {
	plate := "ABC1D23"
	region := domain.RegionOther
	d := domain.Request{
		RequestID:      9,
		CaseNumber:     &domain.CaseNumber{SequenceNumber: 12, Year: 2025},
		RequesterID:    "u-1",
		Destination:    "Brasília, DF",
		DepartureAt:    time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
		ReturnAt:       time.Date(2025, 6, 3, 18, 0, 0, 0, time.UTC),
		Transport:      domain.TransportOwnVehicle,
		VehiclePlate:   &plate,
		ExplicitCounts: &domain.AllowanceCounts{HalfDay: 1},
		ExplicitRegion: &region,
		Totals:         domain.NewRequestTotals(decimal.NewFromInt(100), decimal.NewFromInt(10), decimal.NewFromInt(5), decimal.Zero),
		Status:         domain.StatusAdminReview,
	}

	m := mapping.ToModelRequest(d)
	require.NotNil(t, m.SequenceNumber)
	assert.Equal(t, 12, *m.SequenceNumber)
	assert.Nil(t, m.DocumentID)

	back := mapping.ToDomainRequest(m)
	assert.Equal(t, d.CaseNumber, back.CaseNumber)
	assert.Equal(t, d.ExplicitCounts, back.ExplicitCounts)
	assert.Equal(t, d.ExplicitRegion, back.ExplicitRegion)
	assert.Equal(t, "", back.DocumentID)
	assert.True(t, d.Totals.GrandTotal.Equal(back.Totals.GrandTotal))
}

func TestRequestMappingKeepsCalculationParameters(t *testing.T) {
	d := domain.Request{Status: domain.StatusAdminReview}
	d.Totals.UnitValue = decimal.RequireFromString("36.00")
	d.Totals.FuelPrice = decimal.RequireFromString("6.10")

	back := mapping.ToDomainRequest(mapping.ToModelRequest(d))

	assert.True(t, back.Totals.UnitValue.Equal(d.Totals.UnitValue))
	assert.True(t, back.Totals.FuelPrice.Equal(d.Totals.FuelPrice))
}

func TestRequestMappingWithoutCaseNumber(t *testing.T) {
	back := mapping.ToDomainRequest(mapping.ToModelRequest(domain.Request{Status: domain.StatusDraft}))
	assert.Nil(t, back.CaseNumber)
	assert.Nil(t, back.ExplicitCounts)
	assert.Nil(t, back.ExplicitRegion)
}

func TestHistoryMappingFirstRecord(t *testing.T) {
	first := domain.ProcessHistory{RequestID: 1, NewStatus: domain.StatusDraft, ActorID: "u-1"}
	m := mapping.ToModelHistory(first)
	assert.Nil(t, m.PreviousStatus)
	assert.Nil(t, mapping.ToDomainHistory(m).PreviousStatus)
}
