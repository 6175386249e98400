package models

// Tenant is the DB shape of a property-management organisation.
type Tenant struct {
	TenantID            string `db:"tenant_id"`
	Name                string `db:"name"`
	Status              string `db:"status"`
	DefaultCurrencyCode string `db:"default_currency_code"`
	AuditFields
}
