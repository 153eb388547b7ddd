package reimbursement

import (
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
)

const (
	// DefaultDeadlineBusinessDays is the advance notice for trips without air tickets.
	DefaultDeadlineBusinessDays = 5
	// AirTicketDeadlineBusinessDays is the advance notice when air tickets must be bought.
	AirTicketDeadlineBusinessDays = 10
)

// DeadlinePolicy configures how many business days in advance a trip must be requested.
type DeadlinePolicy struct {
	BusinessDays          int
	BusinessDaysAirTicket int
	Location              *time.Location
}

// DefaultDeadlinePolicy returns the standard 5/10 business day policy.
func DefaultDeadlinePolicy(loc *time.Location) DeadlinePolicy {
	return DeadlinePolicy{
		BusinessDays:          DefaultDeadlineBusinessDays,
		BusinessDaysAirTicket: AirTicketDeadlineBusinessDays,
		Location:              loc,
	}
}

// SubmissionDeadline returns the last date on which a trip departing at departure may be submitted.
func (p DeadlinePolicy) SubmissionDeadline(departure time.Time, involvesAirTickets bool, holidays []domain.Holiday) time.Time {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	days := p.BusinessDays
	if involvesAirTickets {
		days = p.BusinessDaysAirTicket
	}

	off := holidaySet(holidays)
	day := dateOf(departure, loc)
	for counted := 0; counted < days; {
		day = day.AddDate(0, 0, -1)
		if isBusinessDay(day, off) {
			counted++
		}
	}
	return day
}

// IsLate reports whether submitting at now misses the deadline for departure.
func (p DeadlinePolicy) IsLate(now, departure time.Time, involvesAirTickets bool, holidays []domain.Holiday) bool {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	deadline := p.SubmissionDeadline(departure, involvesAirTickets, holidays)
	return dateOf(now, loc).After(deadline)
}

// holidaySet keys holidays by their calendar date as stored, without zone conversion.
func holidaySet(holidays []domain.Holiday) map[time.Time]struct{} {
	set := make(map[time.Time]struct{}, len(holidays))
	for _, h := range holidays {
		y, m, d := h.Date.Date()
		set[time.Date(y, m, d, 0, 0, 0, 0, time.UTC)] = struct{}{}
	}
	return set
}

func isBusinessDay(day time.Time, holidays map[time.Time]struct{}) bool {
	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	_, holiday := holidays[day]
	return !holiday
}
