package services

import (
	"context"

	"github.com/nyumbani/property_ledger/internal/core/domain"
	"github.com/nyumbani/property_ledger/internal/dto"
)

// TenantReaderSvc defines read operations for tenant data
type TenantReaderSvc interface {
	// GetTenantByID retrieves a specific tenant by its unique identifier.
	GetTenantByID(ctx context.Context, tenantID domain.TenantID) (*domain.Tenant, error)

	// ListTenants retrieves a paginated list of tenants.
	ListTenants(ctx context.Context, limit int, offset int) ([]domain.Tenant, error)
}

// TenantWriterSvc defines write operations for tenant data
type TenantWriterSvc interface {
	// CreateTenant registers a new tenant.
	CreateTenant(ctx context.Context, req dto.CreateTenantRequest, userID string) (*domain.Tenant, error)

	// UpdateTenant updates a tenant's name or status.
	UpdateTenant(ctx context.Context, tenantID domain.TenantID, req dto.UpdateTenantRequest, userID string) (*domain.Tenant, error)
}

// TenantSvcFacade combines all tenant-related service interfaces
type TenantSvcFacade interface {
	TenantReaderSvc
	TenantWriterSvc
}
