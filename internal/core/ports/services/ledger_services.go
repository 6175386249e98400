package services

import (
	"context"
	"time"

	"github.com/nyumbani/property_ledger/internal/core/domain"
)

// LedgerReaderSvc defines read operations over posted ledger entries
type LedgerReaderSvc interface {
	// GetJournal retrieves all entries posted under one journal ID.
	GetJournal(ctx context.Context, tenantID domain.TenantID, journalID domain.JournalID) ([]domain.LedgerEntry, error)

	// ListEntriesByAccount retrieves a paginated list of entries for an account,
	// newest first, using token-based pagination.
	ListEntriesByAccount(ctx context.Context, tenantID domain.TenantID, accountID domain.AccountID, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// LedgerWriterSvc defines the posting operations. All writes to the ledger,
// template-built or hand-built, go through PostJournal.
type LedgerWriterSvc interface {
	// PostJournal validates a set of journal lines and posts them atomically,
	// returning the persisted entries with sequence numbers and balances.
	PostJournal(ctx context.Context, tenantID domain.TenantID, lines []domain.JournalLine, effectiveDate time.Time, userID string) ([]domain.LedgerEntry, error)

	// ReverseJournal posts a new journal with every line of the original
	// flipped. The original entries are untouched; history stays append-only.
	ReverseJournal(ctx context.Context, tenantID domain.TenantID, journalID domain.JournalID, userID string) ([]domain.LedgerEntry, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
// This is a facade for clients that need access to all operations
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
