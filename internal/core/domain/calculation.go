package domain

import (
	"github.com/shopspring/decimal"
)

// Region selects which allowance rate table applies to a destination.
type Region string

const (
	RegionLocal Region = "LOCAL"
	RegionOther Region = "OTHER"
)

// IsValid reports whether r is LOCAL or OTHER.
func (r Region) IsValid() bool {
	return r == RegionLocal || r == RegionOther
}

// AllowanceKind is one of the three per-diem tiers.
type AllowanceKind string

const (
	AllowanceWithOvernight    AllowanceKind = "WITH_OVERNIGHT"
	AllowanceWithoutOvernight AllowanceKind = "WITHOUT_OVERNIGHT"
	AllowanceHalfDay          AllowanceKind = "HALF_DAY"
)

// AllowanceKinds lists the tiers in display order.
var AllowanceKinds = []AllowanceKind{AllowanceWithOvernight, AllowanceWithoutOvernight, AllowanceHalfDay}

// AllowanceCounts holds the number of units per tier.
type AllowanceCounts struct {
	WithOvernight    int `json:"withOvernight"`
	WithoutOvernight int `json:"withoutOvernight"`
	HalfDay          int `json:"halfDay"`
}

// Of returns the count for kind.
func (c AllowanceCounts) Of(kind AllowanceKind) int {
	switch kind {
	case AllowanceWithOvernight:
		return c.WithOvernight
	case AllowanceWithoutOvernight:
		return c.WithoutOvernight
	case AllowanceHalfDay:
		return c.HalfDay
	}
	return 0
}

// AllowanceLine is the computed amount for one tier.
type AllowanceLine struct {
	Kind       AllowanceKind   `json:"kind"`
	Count      int             `json:"count"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// AllowanceBreakdown is the result of a per-diem calculation.
type AllowanceBreakdown struct {
	Region    Region          `json:"region"`
	UnitValue decimal.Decimal `json:"unitValue"`
	Lines     []AllowanceLine `json:"lines"`
	Total     decimal.Decimal `json:"total"`
}

// Line returns the line for kind, or a zero line.
func (b AllowanceBreakdown) Line(kind AllowanceKind) AllowanceLine {
	for _, l := range b.Lines {
		if l.Kind == kind {
			return l
		}
	}
	return AllowanceLine{Kind: kind, Multiplier: decimal.Zero, Subtotal: decimal.Zero}
}

// IsZero reports whether nothing is owed.
func (b AllowanceBreakdown) IsZero() bool {
	return b.Total.IsZero()
}

// DisplacementResult is the result of a displacement indemnity calculation.
type DisplacementResult struct {
	Destination     string          `json:"destination"`
	RoundTripKm     decimal.Decimal `json:"roundTripKm"`
	FuelPrice       decimal.Decimal `json:"fuelPrice"`
	Indemnity       decimal.Decimal `json:"indemnity"`
	IndemnityZeroed bool            `json:"indemnityZeroed"`
}

// CalculationResult combines both calculations for a trip.
type CalculationResult struct {
	Allowance             AllowanceBreakdown  `json:"allowance"`
	Displacement          *DisplacementResult `json:"displacement,omitempty"`
	DisplacementAvailable bool                `json:"displacementAvailable"`
	DisplacementError     string              `json:"displacementError,omitempty"`
	TotalToCommit         decimal.Decimal     `json:"totalToCommit"`
}
