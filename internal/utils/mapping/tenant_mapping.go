package mapping

import (
	"github.com/nyumbani/property_ledger/internal/core/domain"
	"github.com/nyumbani/property_ledger/internal/models"
)

// ToModelTenant converts a domain Tenant to a model Tenant
func ToModelTenant(d domain.Tenant) models.Tenant {
	return models.Tenant{
		TenantID:            d.TenantID.String(),
		Name:                d.Name,
		Status:              string(d.Status),
		DefaultCurrencyCode: d.DefaultCurrencyCode,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTenant converts a model Tenant to a domain Tenant
func ToDomainTenant(m models.Tenant) domain.Tenant {
	return domain.Tenant{
		TenantID:            domain.TenantID(m.TenantID),
		Name:                m.Name,
		Status:              domain.TenantStatus(m.Status),
		DefaultCurrencyCode: m.DefaultCurrencyCode,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}
