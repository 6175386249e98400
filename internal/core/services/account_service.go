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

// Sentinels wrap the shared taxonomy so handlers map them to the right
// HTTP status.
var (
	ErrTenantNotActive = fmt.Errorf("%w: tenant is not active", apperrors.ErrValidation)
	ErrUnknownCurrency = fmt.Errorf("%w: currency is not registered", apperrors.ErrValidation)
	ErrBadAccountType  = fmt.Errorf("%w: unknown account type", apperrors.ErrValidation)
)

// accountService manages the account lifecycle.
type accountService struct {
	BaseService
	accountRepo  portsrepo.AccountRepositoryFacade
	tenantRepo   portsrepo.TenantReader
	currencyRepo portsrepo.CurrencyReader
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, tenantRepo portsrepo.TenantReader, currencyRepo portsrepo.CurrencyReader) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:  accountRepo,
		tenantRepo:   tenantRepo,
		currencyRepo: currencyRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account after validating the tenant is active
// and the currency is registered. Accounts open ACTIVE with a zero balance.
func (s *accountService) CreateAccount(ctx context.Context, tenantID domain.TenantID, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if !domain.ValidAccountType(req.AccountType) {
		return nil, fmt.Errorf("%w: %q", ErrBadAccountType, req.AccountType)
	}

	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to find tenant %s: %w", tenantID, err)
	}
	if !tenant.IsActive() {
		return nil, fmt.Errorf("%w: %s", ErrTenantNotActive, tenantID)
	}

	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCurrency, req.CurrencyCode)
		}
		return nil, fmt.Errorf("failed to look up currency %s: %w", req.CurrencyCode, err)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:    domain.NewAccountID(),
		TenantID:     tenantID,
		Name:         req.Name,
		AccountType:  req.AccountType,
		Status:       domain.AccountActive,
		CurrencyCode: req.CurrencyCode,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("tenant_id", tenantID.String()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID.String()),
		slog.String("tenant_id", tenantID.String()),
		slog.String("account_type", string(account.AccountType)),
	)
	return &account, nil
}

// GetAccountByID retrieves a specific account.
func (s *accountService) GetAccountByID(ctx context.Context, tenantID domain.TenantID, accountID domain.AccountID) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID.String()))
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// ListAccounts retrieves a page of a tenant's accounts.
func (s *accountService) ListAccounts(ctx context.Context, tenantID domain.TenantID, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("tenant_id", tenantID.String()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// FreezeAccount blocks transactions on an account, recording the reason.
func (s *accountService) FreezeAccount(ctx context.Context, tenantID domain.TenantID, accountID domain.AccountID, reason string, userID string) (*domain.Account, error) {
	return s.updateStatus(ctx, tenantID, accountID, func(acc *domain.Account, now time.Time) error {
		return acc.Freeze(reason, userID, now)
	}, "Account frozen")
}

// UnfreezeAccount returns a frozen account to active.
func (s *accountService) UnfreezeAccount(ctx context.Context, tenantID domain.TenantID, accountID domain.AccountID, userID string) (*domain.Account, error) {
	return s.updateStatus(ctx, tenantID, accountID, func(acc *domain.Account, now time.Time) error {
		return acc.Unfreeze(userID, now)
	}, "Account unfrozen")
}

// CloseAccount terminates a zero-balance account. Closing is permanent.
func (s *accountService) CloseAccount(ctx context.Context, tenantID domain.TenantID, accountID domain.AccountID, userID string) (*domain.Account, error) {
	return s.updateStatus(ctx, tenantID, accountID, func(acc *domain.Account, now time.Time) error {
		return acc.Close(userID, now)
	}, "Account closed")
}

// updateStatus loads the account, applies the transition and persists it.
func (s *accountService) updateStatus(ctx context.Context, tenantID domain.TenantID, accountID domain.AccountID, transition func(*domain.Account, time.Time) error, logMsg string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	if err := transition(account, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := s.accountRepo.UpdateAccountStatus(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account status", slog.String("account_id", accountID.String()))
		return nil, fmt.Errorf("failed to update account %s: %w", accountID, err)
	}

	s.LogInfo(ctx, logMsg, slog.String("account_id", accountID.String()), slog.String("status", string(account.Status)))
	return account, nil
}
