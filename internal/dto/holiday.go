package dto

import (
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
)

// CreateHolidayRequest registers a non-business day.
type CreateHolidayRequest struct {
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
	Description string `json:"description" binding:"required,max=100"`
}

// ListHolidaysParams selects the calendar year to list. Zero means the current year.
type ListHolidaysParams struct {
	Year int `form:"year" binding:"omitempty,min=1900,max=9999"`
}

// HolidayResponse is a holiday with its date in ISO form.
type HolidayResponse struct {
	Date        string `json:"date"`
	Description string `json:"description"`
}

// ToHolidayResponse converts domain.Holiday to DTO.
func ToHolidayResponse(h domain.Holiday) HolidayResponse {
	return HolidayResponse{Date: h.Date.Format(time.DateOnly), Description: h.Description}
}

// ToHolidayResponses converts a list of holidays.
func ToHolidayResponses(holidays []domain.Holiday) []HolidayResponse {
	list := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		list[i] = ToHolidayResponse(h)
	}
	return list
}
