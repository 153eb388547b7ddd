package mapping

import (
	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	"github.com/SscSPs/travel_allowance_app/internal/models"
)

// ToModelRequest converts a domain Request to a model Request
func ToModelRequest(d domain.Request) models.Request {
	m := models.Request{
		RequestID:               d.RequestID,
		RequesterID:             d.RequesterID,
		Purpose:                 d.Purpose,
		Destination:             d.Destination,
		DepartureAt:             d.DepartureAt,
		ReturnAt:                d.ReturnAt,
		TransportMode:           string(d.Transport),
		VehiclePlate:            d.VehiclePlate,
		InvolvesAirTickets:      d.InvolvesAirTickets,
		RequestsRegistrationFee: d.RequestsRegistrationFee,
		TotalDistanceKm:         d.Totals.TotalDistanceKm,
		AllowanceTotal:          d.Totals.AllowanceTotal,
		DisplacementTotal:       d.Totals.DisplacementTotal,
		RegistrationFee:         d.Totals.RegistrationFee,
		GrandTotal:              d.Totals.GrandTotal,
		DisplacementMissing:     d.Totals.DisplacementMissing,
		UnitValue:               d.Totals.UnitValue,
		FuelPrice:               d.Totals.FuelPrice,
		Status:                  string(d.Status),
		DocumentFolderID:        optionalString(d.DocumentFolderID),
		DocumentID:              optionalString(d.DocumentID),
		AuditFields:             ToModelAuditFields(d.AuditFields),
	}
	if d.CaseNumber != nil {
		seq, year := d.CaseNumber.SequenceNumber, d.CaseNumber.Year
		m.SequenceNumber = &seq
		m.CaseYear = &year
	}
	if d.ExplicitCounts != nil {
		with, without, half := d.ExplicitCounts.WithOvernight, d.ExplicitCounts.WithoutOvernight, d.ExplicitCounts.HalfDay
		m.CountWithOvernight = &with
		m.CountWithoutOvernight = &without
		m.CountHalfDay = &half
	}
	if d.ExplicitRegion != nil {
		region := string(*d.ExplicitRegion)
		m.ExplicitRegion = &region
	}
	return m
}

// ToDomainRequest converts a model Request to a domain Request
func ToDomainRequest(m models.Request) domain.Request {
	d := domain.Request{
		RequestID:               m.RequestID,
		RequesterID:             m.RequesterID,
		Purpose:                 m.Purpose,
		Destination:             m.Destination,
		DepartureAt:             m.DepartureAt,
		ReturnAt:                m.ReturnAt,
		Transport:               domain.TransportMode(m.TransportMode),
		VehiclePlate:            m.VehiclePlate,
		InvolvesAirTickets:      m.InvolvesAirTickets,
		RequestsRegistrationFee: m.RequestsRegistrationFee,
		Totals: domain.RequestTotals{
			TotalDistanceKm:     m.TotalDistanceKm,
			AllowanceTotal:      m.AllowanceTotal,
			DisplacementTotal:   m.DisplacementTotal,
			RegistrationFee:     m.RegistrationFee,
			GrandTotal:          m.GrandTotal,
			DisplacementMissing: m.DisplacementMissing,
			UnitValue:           m.UnitValue,
			FuelPrice:           m.FuelPrice,
		},
		Status:      domain.Status(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.SequenceNumber != nil && m.CaseYear != nil {
		d.CaseNumber = &domain.CaseNumber{SequenceNumber: *m.SequenceNumber, Year: *m.CaseYear}
	}
	if m.CountWithOvernight != nil || m.CountWithoutOvernight != nil || m.CountHalfDay != nil {
		d.ExplicitCounts = &domain.AllowanceCounts{
			WithOvernight:    intOrZero(m.CountWithOvernight),
			WithoutOvernight: intOrZero(m.CountWithoutOvernight),
			HalfDay:          intOrZero(m.CountHalfDay),
		}
	}
	if m.ExplicitRegion != nil {
		region := domain.Region(*m.ExplicitRegion)
		d.ExplicitRegion = &region
	}
	if m.DocumentFolderID != nil {
		d.DocumentFolderID = *m.DocumentFolderID
	}
	if m.DocumentID != nil {
		d.DocumentID = *m.DocumentID
	}
	return d
}

// ToModelHistory converts a domain ProcessHistory to a model ProcessHistory
func ToModelHistory(d domain.ProcessHistory) models.ProcessHistory {
	m := models.ProcessHistory{
		HistoryID: d.HistoryID,
		RequestID: d.RequestID,
		NewStatus: string(d.NewStatus),
		ActorID:   d.ActorID,
		Note:      d.Note,
		CreatedAt: d.Timestamp,
	}
	if d.PreviousStatus != nil {
		prev := string(*d.PreviousStatus)
		m.PreviousStatus = &prev
	}
	return m
}

// ToDomainHistory converts a model ProcessHistory to a domain ProcessHistory
func ToDomainHistory(m models.ProcessHistory) domain.ProcessHistory {
	d := domain.ProcessHistory{
		HistoryID: m.HistoryID,
		RequestID: m.RequestID,
		NewStatus: domain.Status(m.NewStatus),
		ActorID:   m.ActorID,
		Note:      m.Note,
		Timestamp: m.CreatedAt,
	}
	if m.PreviousStatus != nil {
		prev := domain.Status(*m.PreviousStatus)
		d.PreviousStatus = &prev
	}
	return d
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
