package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request is the row stored in the requests table.
type Request struct {
	RequestID               int64           `db:"request_id"`
	SequenceNumber          *int            `db:"sequence_number"`
	CaseYear                *int            `db:"case_year"`
	RequesterID             string          `db:"requester_id"`
	Purpose                 string          `db:"purpose"`
	Destination             string          `db:"destination"`
	DepartureAt             time.Time       `db:"departure_at"`
	ReturnAt                time.Time       `db:"return_at"`
	TransportMode           string          `db:"transport_mode"`
	VehiclePlate            *string         `db:"vehicle_plate"`
	InvolvesAirTickets      bool            `db:"involves_air_tickets"`
	RequestsRegistrationFee bool            `db:"requests_registration_fee"`
	CountWithOvernight      *int            `db:"count_with_overnight"`
	CountWithoutOvernight   *int            `db:"count_without_overnight"`
	CountHalfDay            *int            `db:"count_half_day"`
	ExplicitRegion          *string         `db:"explicit_region"`
	TotalDistanceKm         decimal.Decimal `db:"total_distance_km"`
	AllowanceTotal          decimal.Decimal `db:"allowance_total"`
	DisplacementTotal       decimal.Decimal `db:"displacement_total"`
	RegistrationFee         decimal.Decimal `db:"registration_fee"`
	GrandTotal              decimal.Decimal `db:"grand_total"`
	DisplacementMissing     bool            `db:"displacement_missing"`
	UnitValue               decimal.Decimal `db:"unit_value"`
	FuelPrice               decimal.Decimal `db:"fuel_price"`
	Status                  string          `db:"status"`
	DocumentFolderID        *string         `db:"document_folder_id"`
	DocumentID              *string         `db:"document_id"`
	AuditFields
}

// ProcessHistory is the row stored in the process_history table.
type ProcessHistory struct {
	HistoryID      int64     `db:"history_id"`
	RequestID      int64     `db:"request_id"`
	PreviousStatus *string   `db:"previous_status"`
	NewStatus      string    `db:"new_status"`
	ActorID        string    `db:"actor_id"`
	Note           string    `db:"note"`
	CreatedAt      time.Time `db:"created_at"`
}
