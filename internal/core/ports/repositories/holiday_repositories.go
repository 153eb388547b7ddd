package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
)

// HolidayRepositoryFacade stores the non-business days calendar.
type HolidayRepositoryFacade interface {
	// ListHolidays returns holidays with from <= date <= to, ordered by date.
	ListHolidays(ctx context.Context, from, to time.Time) ([]domain.Holiday, error)
	// SaveHoliday inserts a holiday or renames an existing one on the same date.
	SaveHoliday(ctx context.Context, holiday domain.Holiday) error
}
