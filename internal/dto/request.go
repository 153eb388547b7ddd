package dto

import (
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Request DTOs ---

// AllowanceCountsInput lets a caller override the automatic day-span inference.
// Setting any field switches the calculation to the supplied counts.
type AllowanceCountsInput struct {
	WithOvernight    *int `json:"withOvernight" binding:"omitempty,min=0"`
	WithoutOvernight *int `json:"withoutOvernight" binding:"omitempty,min=0"`
	HalfDay          *int `json:"halfDay" binding:"omitempty,min=0"`
}

// ToDomain returns nil when no count was supplied.
func (c *AllowanceCountsInput) ToDomain() *domain.AllowanceCounts {
	if c == nil || (c.WithOvernight == nil && c.WithoutOvernight == nil && c.HalfDay == nil) {
		return nil
	}
	deref := func(v *int) int {
		if v == nil {
			return 0
		}
		return *v
	}
	return &domain.AllowanceCounts{
		WithOvernight:    deref(c.WithOvernight),
		WithoutOvernight: deref(c.WithoutOvernight),
		HalfDay:          deref(c.HalfDay),
	}
}

// CreateRequestRequest defines the trip details of a new or edited request.
type CreateRequestRequest struct {
	Purpose                 string                `json:"purpose" binding:"required"`
	Destination             string                `json:"destination" binding:"required"`
	DepartureAt             time.Time             `json:"departureAt" binding:"required"`
	ReturnAt                time.Time             `json:"returnAt" binding:"required,gtefield=DepartureAt"`
	TransportMode           string                `json:"transportMode" binding:"required,transport_mode"`
	VehiclePlate            *string               `json:"vehiclePlate" binding:"omitempty,max=10"`
	InvolvesAirTickets      bool                  `json:"involvesAirTickets"`
	RequestsRegistrationFee bool                  `json:"requestsRegistrationFee"`
	RegistrationFee         *decimal.Decimal      `json:"registrationFee"`
	Counts                  *AllowanceCountsInput `json:"counts"`
	Region                  *string               `json:"region" binding:"omitempty,region"`
}

// ListRequestsParams defines query parameters for listing requests.
type ListRequestsParams struct {
	Status    *string `form:"status" binding:"omitempty,status"`
	All       bool    `form:"all"`
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// RequestResponse defines data returned for a request.
type RequestResponse struct {
	RequestID               int64                   `json:"requestID"`
	CaseNumber              *string                 `json:"caseNumber,omitempty"`
	SequenceNumber          *int                    `json:"sequenceNumber,omitempty"`
	Year                    *int                    `json:"year,omitempty"`
	RequesterID             string                  `json:"requesterID"`
	Purpose                 string                  `json:"purpose"`
	Destination             string                  `json:"destination"`
	DepartureAt             time.Time               `json:"departureAt"`
	ReturnAt                time.Time               `json:"returnAt"`
	TransportMode           domain.TransportMode    `json:"transportMode"`
	VehiclePlate            *string                 `json:"vehiclePlate,omitempty"`
	InvolvesAirTickets      bool                    `json:"involvesAirTickets"`
	RequestsRegistrationFee bool                    `json:"requestsRegistrationFee"`
	ExplicitCounts          *domain.AllowanceCounts `json:"explicitCounts,omitempty"`
	ExplicitRegion          *domain.Region          `json:"explicitRegion,omitempty"`
	Totals                  domain.RequestTotals    `json:"totals"`
	Status                  domain.Status           `json:"status"`
	StatusLabel             string                  `json:"statusLabel"`
	DocumentFolderID        string                  `json:"documentFolderID,omitempty"`
	DocumentID              string                  `json:"documentID,omitempty"`
	CreatedAt               time.Time               `json:"createdAt"`
	LastUpdatedAt           time.Time               `json:"lastUpdatedAt"`
}

// ToRequestResponse converts domain.Request to DTO.
func ToRequestResponse(r *domain.Request) RequestResponse {
	resp := RequestResponse{
		RequestID:               r.RequestID,
		RequesterID:             r.RequesterID,
		Purpose:                 r.Purpose,
		Destination:             r.Destination,
		DepartureAt:             r.DepartureAt,
		ReturnAt:                r.ReturnAt,
		TransportMode:           r.Transport,
		VehiclePlate:            r.VehiclePlate,
		InvolvesAirTickets:      r.InvolvesAirTickets,
		RequestsRegistrationFee: r.RequestsRegistrationFee,
		ExplicitCounts:          r.ExplicitCounts,
		ExplicitRegion:          r.ExplicitRegion,
		Totals:                  r.Totals,
		Status:                  r.Status,
		StatusLabel:             r.Status.Label(),
		DocumentFolderID:        r.DocumentFolderID,
		DocumentID:              r.DocumentID,
		CreatedAt:               r.CreatedAt,
		LastUpdatedAt:           r.LastUpdatedAt,
	}
	if r.CaseNumber != nil {
		cn := r.CaseNumber.String()
		resp.CaseNumber = &cn
		resp.SequenceNumber = &r.CaseNumber.SequenceNumber
		resp.Year = &r.CaseNumber.Year
	}
	return resp
}

// ListRequestsResponse wraps a page of requests.
type ListRequestsResponse struct {
	Requests  []RequestResponse `json:"requests"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToListRequestsResponse converts a page of domain requests.
func ToListRequestsResponse(requests []domain.Request, next *string) ListRequestsResponse {
	list := make([]RequestResponse, len(requests))
	for i := range requests {
		list[i] = ToRequestResponse(&requests[i])
	}
	return ListRequestsResponse{Requests: list, NextToken: next}
}
