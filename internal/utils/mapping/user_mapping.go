package mapping

import (
	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	"github.com/SscSPs/travel_allowance_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:      d.UserID,
		Name:        d.Name,
		Email:       d.Email,
		IsStaff:     d.IsStaff,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User and its role names to a domain User
func ToDomainUser(m models.User, roles []string) domain.User {
	d := domain.User{
		UserID:      m.UserID,
		Name:        m.Name,
		Email:       m.Email,
		IsStaff:     m.IsStaff,
		Roles:       make([]domain.Role, 0, len(roles)),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	for _, r := range roles {
		d.Roles = append(d.Roles, domain.Role(r))
	}
	return d
}
