package repositories

import (
	"context"
	"time"

	"github.com/nyumbani/property_ledger/internal/core/domain"
)

// LedgerReader defines read operations for ledger entry data
type LedgerReader interface {
	// FindEntryByID retrieves a specific ledger entry by its unique identifier.
	FindEntryByID(ctx context.Context, tenantID domain.TenantID, entryID domain.EntryID) (*domain.LedgerEntry, error)

	// FindEntriesByJournalID retrieves all entries posted under a single journal ID.
	FindEntriesByJournalID(ctx context.Context, tenantID domain.TenantID, journalID domain.JournalID) ([]domain.LedgerEntry, error)

	// ListEntriesByAccount retrieves a paginated list of entries for a specific account
	// using token-based pagination, newest first.
	// It returns the entries, a token for the next page, and an error.
	ListEntriesByAccount(ctx context.Context, tenantID domain.TenantID, accountID domain.AccountID, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// ListEntriesByAccountInPeriod retrieves all entries for an account whose effective
	// date falls within [periodStart, periodEnd], ordered by effective date then
	// sequence number.
	ListEntriesByAccountInPeriod(ctx context.Context, tenantID domain.TenantID, accountID domain.AccountID, periodStart, periodEnd time.Time) ([]domain.LedgerEntry, error)

	// SumEntriesBefore returns the total debit and credit minor units across all
	// entries for an account with an effective date strictly before the given
	// instant. Both totals are zero when the account has no earlier history.
	SumEntriesBefore(ctx context.Context, tenantID domain.TenantID, accountID domain.AccountID, before time.Time) (totalDebits int64, totalCredits int64, err error)
}

// LedgerWriter defines write operations for ledger entry data
type LedgerWriter interface {
	// PostJournal persists a balanced set of ledger entries atomically, locking the
	// touched accounts, assigning per-account sequence numbers and running balances,
	// and updating account balances within a single database transaction.
	// balanceChanges maps each account to its signed net change in minor units.
	// It returns the persisted entries with sequence numbers and balances filled in.
	PostJournal(ctx context.Context, tenantID domain.TenantID, entries []domain.LedgerEntry, balanceChanges map[domain.AccountID]int64) ([]domain.LedgerEntry, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
// This is a facade for clients that need access to all operations
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
