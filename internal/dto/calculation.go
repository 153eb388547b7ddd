package dto

import (
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PreviewCalculationRequest defines the inputs of a calculation preview.
type PreviewCalculationRequest struct {
	Destination        string                `json:"destination" binding:"required"`
	DepartureAt        time.Time             `json:"departureAt" binding:"required"`
	ReturnAt           time.Time             `json:"returnAt" binding:"required"`
	TransportMode      string                `json:"transportMode" binding:"omitempty,transport_mode"`
	InvolvesAirTickets bool                  `json:"involvesAirTickets"`
	Counts             *AllowanceCountsInput `json:"counts"`
	Region             *string               `json:"region" binding:"omitempty,region"`
}

// PreviewCalculationResponse is the figures shown before a request is saved.
type PreviewCalculationResponse struct {
	Allowance             domain.AllowanceBreakdown  `json:"allowance"`
	Displacement          *domain.DisplacementResult `json:"displacement,omitempty"`
	DisplacementAvailable bool                       `json:"displacementAvailable"`
	DisplacementError     string                     `json:"displacementError,omitempty"`
	TotalToCommit         decimal.Decimal            `json:"totalToCommit"`
	SubmissionDeadline    string                     `json:"submissionDeadline"`
	Late                  bool                       `json:"late"`
}

// ConfigResponse exposes the data a client needs to explain calculations.
type ConfigResponse struct {
	UnitValue      *decimal.Decimal                                           `json:"unitValue"`
	CapitalCities  []string                                                   `json:"capitalCities"`
	GroupOneCities []string                                                   `json:"groupOneCities"`
	RateTables     map[domain.Region]map[domain.AllowanceKind]decimal.Decimal `json:"rateTables"`
}
