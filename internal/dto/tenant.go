package dto

import (
	"time"

	"github.com/nyumbani/property_ledger/internal/core/domain"
)

// CreateTenantRequest defines the data needed to register a tenant.
type CreateTenantRequest struct {
	Name                string `json:"name" binding:"required"`
	DefaultCurrencyCode string `json:"defaultCurrencyCode" binding:"required,currencycode"`
}

// UpdateTenantRequest defines the data allowed for updating a tenant.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateTenantRequest struct {
	Name   *string `json:"name"`
	Status *string `json:"status" binding:"omitempty,oneof=ACTIVE DISABLED"`
}

// TenantResponse defines the data returned for a tenant.
type TenantResponse struct {
	TenantID            string    `json:"tenantID"`
	Name                string    `json:"name"`
	Status              string    `json:"status"`
	DefaultCurrencyCode string    `json:"defaultCurrencyCode"`
	CreatedAt           time.Time `json:"createdAt"`
	CreatedBy           string    `json:"createdBy"`
	LastUpdatedAt       time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy       string    `json:"lastUpdatedBy"`
}

// ToTenantResponse converts a domain.Tenant to TenantResponse DTO
func ToTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		TenantID:            t.TenantID.String(),
		Name:                t.Name,
		Status:              string(t.Status),
		DefaultCurrencyCode: t.DefaultCurrencyCode,
		CreatedAt:           t.CreatedAt,
		CreatedBy:           t.CreatedBy,
		LastUpdatedAt:       t.LastUpdatedAt,
		LastUpdatedBy:       t.LastUpdatedBy,
	}
}

// ToListTenantResponse converts a slice of domain.Tenant to TenantResponse DTOs
func ToListTenantResponse(tenants []domain.Tenant) []TenantResponse {
	res := make([]TenantResponse, len(tenants))
	for i, t := range tenants {
		res[i] = ToTenantResponse(&t)
	}
	return res
}

// ListTenantsParams defines query parameters for listing tenants.
type ListTenantsParams struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}
