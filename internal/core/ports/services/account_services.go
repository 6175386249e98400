package services

import (
	"context"

	"github.com/nyumbani/property_ledger/internal/core/domain"
	"github.com/nyumbani/property_ledger/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, tenantID domain.TenantID, accountID domain.AccountID) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts for a given tenant.
	ListAccounts(ctx context.Context, tenantID domain.TenantID, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account after validating the tenant is
	// active and the currency is registered.
	CreateAccount(ctx context.Context, tenantID domain.TenantID, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// FreezeAccount blocks transactions on an account, recording the reason.
	FreezeAccount(ctx context.Context, tenantID domain.TenantID, accountID domain.AccountID, reason string, userID string) (*domain.Account, error)

	// UnfreezeAccount returns a frozen account to active.
	UnfreezeAccount(ctx context.Context, tenantID domain.TenantID, accountID domain.AccountID, userID string) (*domain.Account, error)

	// CloseAccount terminates a zero-balance account. Closing is permanent.
	CloseAccount(ctx context.Context, tenantID domain.TenantID, accountID domain.AccountID, userID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
