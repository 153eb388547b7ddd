package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/apperrors"
	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_allowance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/travel_allowance_app/internal/core/ports/services"
	"github.com/SscSPs/travel_allowance_app/internal/dto"
)

// HolidayService maintains the non-business days calendar.
type HolidayService struct {
	BaseService
	repo     portsrepo.HolidayRepositoryFacade
	location *time.Location
}

// NewHolidayService creates a HolidayService. Dates are read in loc.
func NewHolidayService(repo portsrepo.HolidayRepositoryFacade, roles portssvc.RoleLookup, loc *time.Location) *HolidayService {
	if loc == nil {
		loc = time.UTC
	}
	return &HolidayService{BaseService: BaseService{Roles: roles}, repo: repo, location: loc}
}

// ListHolidays returns the holidays of year ordered by date.
func (s *HolidayService) ListHolidays(ctx context.Context, year int) ([]domain.Holiday, error) {
	if year < 1900 || year > 9999 {
		return nil, apperrors.NewValidationFailedError("year out of range")
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, s.location)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, s.location)
	holidays, err := s.repo.ListHolidays(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list holidays", slog.Int("year", year))
		return nil, err
	}
	return holidays, nil
}

// CreateHoliday adds a holiday, or renames the one already on that date.
func (s *HolidayService) CreateHoliday(ctx context.Context, req dto.CreateHolidayRequest, actorID string) (*domain.Holiday, error) {
	if _, err := s.RequireAdministrator(ctx, actorID); err != nil {
		return nil, err
	}
	date, err := time.ParseInLocation(time.DateOnly, req.Date, s.location)
	if err != nil {
		return nil, apperrors.NewValidationFailedError("date must be formatted as YYYY-MM-DD")
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, apperrors.NewValidationFailedError("description is required")
	}

	holiday := domain.Holiday{Date: date, Description: description}
	if err := s.repo.SaveHoliday(ctx, holiday); err != nil {
		s.LogError(ctx, err, "Failed to save holiday", slog.String("date", req.Date))
		return nil, err
	}
	s.LogInfo(ctx, "Holiday saved", slog.String("date", req.Date), slog.String("actor_id", actorID))
	return &holiday, nil
}

var _ portssvc.HolidaySvcFacade = (*HolidayService)(nil)
