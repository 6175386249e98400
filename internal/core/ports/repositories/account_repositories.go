package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/nyumbani/property_ledger/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, tenantID domain.TenantID, accountID domain.AccountID) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs, keyed by account ID.
	FindAccountsByIDs(ctx context.Context, tenantID domain.TenantID, accountIDs []domain.AccountID) (map[domain.AccountID]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts for a given tenant.
	ListAccounts(ctx context.Context, tenantID domain.TenantID, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountStatus updates the lifecycle status of an account (freeze, unfreeze, close).
	UpdateAccountStatus(ctx context.Context, account domain.Account) error
}

// AccountTransactionSupport defines account operations that run inside an existing
// database transaction, used by the ledger posting flow.
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate retrieves accounts by ID within a transaction,
	// locking the rows (SELECT ... FOR UPDATE) until the transaction completes.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, tenantID domain.TenantID, accountIDs []domain.AccountID) (map[domain.AccountID]domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
