package domain

// TenantStatus is the lifecycle state of a tenant.
type TenantStatus string

const (
	TenantActive   TenantStatus = "ACTIVE"
	TenantDisabled TenantStatus = "DISABLED"
)

// Tenant is a property-management organisation. Every account, entry and
// statement is owned by exactly one tenant.
type Tenant struct {
	TenantID            TenantID     `json:"tenantID"`
	Name                string       `json:"name"`
	Status              TenantStatus `json:"status"`
	DefaultCurrencyCode string       `json:"defaultCurrencyCode"`
	AuditFields
}

// IsActive reports whether the tenant may own new ledger activity.
func (t *Tenant) IsActive() bool {
	return t.Status == TenantActive
}
