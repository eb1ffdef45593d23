package mapping

import (
	"github.com/SscSPs/athena_ledger/internal/core/domain"
	"github.com/SscSPs/athena_ledger/internal/models"
)

// ToModelAuditFields converts a domain AuditFields to a model AuditFields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
		Version:       d.Version,
	}
}

// ToDomainAuditFields converts a model AuditFields to a domain AuditFields
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
		Version:       m.Version,
	}
}

// ToModelScope splits a scope into its nullable owner columns.
func ToModelScope(s domain.Scope) (organizationID, userID *string) {
	if s.OrganizationID != "" {
		org := s.OrganizationID
		return &org, nil
	}
	user := s.UserID
	return nil, &user
}

// ToDomainScope rebuilds a scope from its owner columns.
func ToDomainScope(organizationID, userID *string) domain.Scope {
	var s domain.Scope
	if organizationID != nil {
		s.OrganizationID = *organizationID
	}
	if userID != nil {
		s.UserID = *userID
	}
	return s
}
