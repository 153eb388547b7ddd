package services

import (
	"context"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	"github.com/SscSPs/travel_allowance_app/internal/dto"
)

// HolidaySvcFacade maintains the holiday calendar.
type HolidaySvcFacade interface {
	ListHolidays(ctx context.Context, year int) ([]domain.Holiday, error)
	CreateHoliday(ctx context.Context, req dto.CreateHolidayRequest, actorID string) (*domain.Holiday, error)
}
