package reimbursement

import (
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AllowanceInput holds everything a per-diem calculation depends on.
// UnitValue must already be checked to be positive by the caller.
type AllowanceInput struct {
	Destination    string
	DepartureAt    *time.Time
	ReturnAt       *time.Time
	ExplicitCounts *domain.AllowanceCounts
	ExplicitRegion *domain.Region
	UnitValue      decimal.Decimal
	// Location is where calendar days are counted. Defaults to UTC.
	Location *time.Location
}

// ComputeAllowance returns the per-diem breakdown for a trip.
// Missing inputs or a return before departure give an all-zero breakdown, not an error.
func ComputeAllowance(in AllowanceInput) domain.AllowanceBreakdown {
	region := ResolveRegion(in.Destination, in.ExplicitRegion)

	if in.Destination == "" || in.DepartureAt == nil || in.ReturnAt == nil || in.ReturnAt.Before(*in.DepartureAt) {
		return buildBreakdown(region, domain.AllowanceCounts{}, in.UnitValue)
	}

	counts := InferCounts(*in.DepartureAt, *in.ReturnAt, in.Location)
	if in.ExplicitCounts != nil {
		counts = *in.ExplicitCounts
	}
	return buildBreakdown(region, counts, in.UnitValue)
}

// InferCounts derives unit counts from the inclusive calendar-day span of the trip.
func InferCounts(departure, ret time.Time, loc *time.Location) domain.AllowanceCounts {
	span := CalendarDaySpan(departure, ret, loc)
	switch {
	case span <= 0:
		return domain.AllowanceCounts{}
	case span == 1:
		return domain.AllowanceCounts{WithoutOvernight: 1}
	default:
		return domain.AllowanceCounts{WithOvernight: span - 1, WithoutOvernight: 1}
	}
}

// CalendarDaySpan counts the calendar dates touched by [from, to], both inclusive.
func CalendarDaySpan(from, to time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	if to.Before(from) {
		return 0
	}
	return daysBetween(dateOf(from, loc), dateOf(to, loc)) + 1
}

func dateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func buildBreakdown(region domain.Region, counts domain.AllowanceCounts, unitValue decimal.Decimal) domain.AllowanceBreakdown {
	lines := make([]domain.AllowanceLine, 0, len(domain.AllowanceKinds))
	sum := decimal.Zero
	for _, kind := range domain.AllowanceKinds {
		count := counts.Of(kind)
		if count < 0 {
			count = 0
		}
		mult := Multiplier(region, kind)
		subtotal := decimal.NewFromInt(int64(count)).Mul(mult).Mul(unitValue).Round(2)
		sum = sum.Add(subtotal)
		lines = append(lines, domain.AllowanceLine{
			Kind:       kind,
			Count:      count,
			Multiplier: mult,
			Subtotal:   subtotal,
		})
	}

	return domain.AllowanceBreakdown{
		Region:    region,
		UnitValue: unitValue,
		Lines:     lines,
		Total:     sum.Round(2),
	}
}
