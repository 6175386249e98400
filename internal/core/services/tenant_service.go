package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nyumbani/property_ledger/internal/apperrors"
	"github.com/nyumbani/property_ledger/internal/core/domain"
	portsrepo "github.com/nyumbani/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/nyumbani/property_ledger/internal/core/ports/services"
	"github.com/nyumbani/property_ledger/internal/dto"
)

// tenantService manages the tenant registry.
type tenantService struct {
	BaseService
	tenantRepo   portsrepo.TenantRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
}

// NewTenantService creates a new TenantService.
func NewTenantService(tenantRepo portsrepo.TenantRepositoryFacade, currencyRepo portsrepo.CurrencyReader) portssvc.TenantSvcFacade {
	return &tenantService{
		tenantRepo:   tenantRepo,
		currencyRepo: currencyRepo,
	}
}

var _ portssvc.TenantSvcFacade = (*tenantService)(nil)

// CreateTenant registers a new tenant with its default currency.
func (s *tenantService) CreateTenant(ctx context.Context, req dto.CreateTenantRequest, userID string) (*domain.Tenant, error) {
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.DefaultCurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCurrency, req.DefaultCurrencyCode)
		}
		return nil, fmt.Errorf("failed to look up currency %s: %w", req.DefaultCurrencyCode, err)
	}

	now := time.Now().UTC()
	tenant := domain.Tenant{
		TenantID:            domain.NewTenantID(),
		Name:                req.Name,
		Status:              domain.TenantActive,
		DefaultCurrencyCode: req.DefaultCurrencyCode,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.tenantRepo.SaveTenant(ctx, tenant); err != nil {
		s.LogError(ctx, err, "Failed to save tenant")
		return nil, fmt.Errorf("failed to save tenant: %w", err)
	}

	s.LogInfo(ctx, "Tenant created", slog.String("tenant_id", tenant.TenantID.String()))
	return &tenant, nil
}

// GetTenantByID retrieves a specific tenant.
func (s *tenantService) GetTenantByID(ctx context.Context, tenantID domain.TenantID) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find tenant", slog.String("tenant_id", tenantID.String()))
		}
		return nil, fmt.Errorf("failed to find tenant %s: %w", tenantID, err)
	}
	return tenant, nil
}

// ListTenants retrieves a page of tenants.
func (s *tenantService) ListTenants(ctx context.Context, limit int, offset int) ([]domain.Tenant, error) {
	if limit <= 0 {
		limit = 20
	}
	tenants, err := s.tenantRepo.ListTenants(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tenants")
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	return tenants, nil
}

// UpdateTenant updates a tenant's name or status.
func (s *tenantService) UpdateTenant(ctx context.Context, tenantID domain.TenantID, req dto.UpdateTenantRequest, userID string) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to find tenant %s: %w", tenantID, err)
	}

	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.Status != nil {
		tenant.Status = domain.TenantStatus(*req.Status)
	}
	now := time.Now().UTC()
	tenant.LastUpdatedAt = now
	tenant.LastUpdatedBy = userID

	if err := s.tenantRepo.UpdateTenant(ctx, *tenant); err != nil {
		s.LogError(ctx, err, "Failed to update tenant", slog.String("tenant_id", tenantID.String()))
		return nil, fmt.Errorf("failed to update tenant %s: %w", tenantID, err)
	}

	s.LogInfo(ctx, "Tenant updated", slog.String("tenant_id", tenantID.String()))
	return tenant, nil
}
