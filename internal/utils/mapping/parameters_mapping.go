package mapping

import (
	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	"github.com/SscSPs/travel_allowance_app/internal/models"
)

// ToModelParameters converts domain SystemParameters to the model row.
func ToModelParameters(d domain.SystemParameters) models.SystemParameters {
	return models.SystemParameters{
		UnitValue:        d.UnitValue,
		AverageFuelPrice: d.AverageFuelPrice,
		LastUpdatedAt:    d.UpdatedAt,
		LastUpdatedBy:    d.UpdatedBy,
	}
}

// ToDomainParameters converts the model row to domain SystemParameters.
func ToDomainParameters(m models.SystemParameters) domain.SystemParameters {
	return domain.SystemParameters{
		UnitValue:        m.UnitValue,
		AverageFuelPrice: m.AverageFuelPrice,
		UpdatedAt:        m.LastUpdatedAt,
		UpdatedBy:        m.LastUpdatedBy,
	}
}

// ToDomainDocument converts a documents row.
func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID:     m.DocumentID,
		RequestID:      m.RequestID,
		FileName:       m.FileName,
		ExternalFileID: m.ExternalFileID,
		Kind:           domain.DocumentKind(m.Kind),
		UploadedBy:     m.UploadedBy,
		UploadedAt:     m.UploadedAt,
	}
}

// ToDomainHoliday converts a holidays row.
func ToDomainHoliday(m models.Holiday) domain.Holiday {
	return domain.Holiday{Date: m.HolidayDate, Description: m.Description}
}
