package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransportMode is how the requester travels to the destination.
type TransportMode string

const (
	TransportOwnVehicle      TransportMode = "OWN_VEHICLE"
	TransportOfficialVehicle TransportMode = "OFFICIAL_VEHICLE"
	TransportAir             TransportMode = "AIR"
	TransportBus             TransportMode = "BUS"
	TransportOther           TransportMode = "OTHER"
)

// IsValid reports whether m is a known transport mode.
func (m TransportMode) IsValid() bool {
	switch m {
	case TransportOwnVehicle, TransportOfficialVehicle, TransportAir, TransportBus, TransportOther:
		return true
	}
	return false
}

// Label returns the display name of the transport mode.
func (m TransportMode) Label() string {
	switch m {
	case TransportOwnVehicle:
		return "Veículo Próprio"
	case TransportOfficialVehicle:
		return "Veículo Oficial"
	case TransportAir:
		return "Transporte Aéreo"
	case TransportBus:
		return "Transporte Rodoviário (Ônibus)"
	case TransportOther:
		return "Outro"
	}
	return string(m)
}

// CaseNumber is the human facing identifier of a submitted Request, unique per year.
type CaseNumber struct {
	SequenceNumber int `json:"sequenceNumber"`
	Year           int `json:"year"`
}

func (n CaseNumber) String() string {
	return fmt.Sprintf("%d-%d", n.SequenceNumber, n.Year)
}

// Request is a trip reimbursement case.
type Request struct {
	RequestID   int64         `json:"requestID"`
	CaseNumber  *CaseNumber   `json:"caseNumber,omitempty"`
	RequesterID string        `json:"requesterID"`
	Purpose     string        `json:"purpose"`
	Destination string        `json:"destination"`
	DepartureAt time.Time     `json:"departureAt"`
	ReturnAt    time.Time     `json:"returnAt"`
	Transport   TransportMode `json:"transportMode"`
	// VehiclePlate is only kept for TransportOwnVehicle.
	VehiclePlate            *string `json:"vehiclePlate,omitempty"`
	InvolvesAirTickets      bool    `json:"involvesAirTickets"`
	RequestsRegistrationFee bool    `json:"requestsRegistrationFee"`
	// ExplicitCounts overrides the automatic day-span inference when set.
	ExplicitCounts *AllowanceCounts `json:"explicitCounts,omitempty"`
	ExplicitRegion *Region          `json:"explicitRegion,omitempty"`

	Totals RequestTotals `json:"totals"`
	Status Status        `json:"status"`

	DocumentFolderID string `json:"documentFolderID,omitempty"`
	DocumentID       string `json:"documentID,omitempty"`

	AuditFields
}

// RequestTotals holds the money figures persisted by a calculation pass.
type RequestTotals struct {
	TotalDistanceKm     decimal.Decimal `json:"totalDistanceKm"`
	AllowanceTotal      decimal.Decimal `json:"allowanceTotal"`
	DisplacementTotal   decimal.Decimal `json:"displacementTotal"`
	RegistrationFee     decimal.Decimal `json:"registrationFee"`
	GrandTotal          decimal.Decimal `json:"grandTotal"`
	DisplacementMissing bool            `json:"displacementMissing"`
	// UnitValue and FuelPrice are the parameters the figures were computed with.
	UnitValue decimal.Decimal `json:"unitValue"`
	FuelPrice decimal.Decimal `json:"fuelPrice"`
}

// NewRequestTotals derives the grand total. The registration fee is tracked apart and never summed in.
func NewRequestTotals(distanceKm, allowance, displacement, registrationFee decimal.Decimal) RequestTotals {
	return RequestTotals{
		TotalDistanceKm:   distanceKm,
		AllowanceTotal:    allowance,
		DisplacementTotal: displacement,
		RegistrationFee:   registrationFee,
		GrandTotal:        allowance.Add(displacement).Round(2),
	}
}

// IsOwnedBy reports whether userID is the requester of r.
func (r Request) IsOwnedBy(userID string) bool {
	return r.RequesterID == userID
}

// UsesOwnVehicle reports whether the displacement indemnity applies.
func (r Request) UsesOwnVehicle() bool {
	return r.Transport == TransportOwnVehicle
}
