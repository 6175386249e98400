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
	"github.com/nyumbani/property_ledger/internal/utils/accounting"
)

// Sentinels wrap the shared taxonomy so handlers map them to the right
// HTTP status.
var (
	ErrJournalMinAccounts = fmt.Errorf("%w: journal must touch at least two different accounts", apperrors.ErrValidation)
	ErrAccountNotFound    = fmt.Errorf("%w: account", apperrors.ErrNotFound)
	ErrAccountNotActive   = errors.New("account cannot transact")
)

// ledgerService implements the posting protocol over the ledger repository.
type ledgerService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// PostJournal validates and posts a journal. The journal either commits in
// full, with every touched account updated in lockstep, or not at all.
func (s *ledgerService) PostJournal(ctx context.Context, tenantID domain.TenantID, lines []domain.JournalLine, effectiveDate time.Time, userID string) ([]domain.LedgerEntry, error) {
	// Balance invariant first: per currency, debits must equal credits.
	if err := accounting.ValidateJournalBalance(lines); err != nil {
		return nil, err
	}

	accountIDs := uniqueAccountIDs(lines)
	if len(accountIDs) < 2 {
		return nil, fmt.Errorf("%w", ErrJournalMinAccounts)
	}

	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, tenantID, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for journal posting", slog.String("tenant_id", tenantID.String()))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	for _, line := range lines {
		acc, found := accountsMap[line.AccountID]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, line.AccountID)
		}
		if !acc.CanTransact() {
			return nil, fmt.Errorf("%w: %w: account %s is %s", apperrors.ErrStateConflict, ErrAccountNotActive, acc.AccountID, acc.Status)
		}
		if acc.CurrencyCode != line.Amount.Currency {
			return nil, fmt.Errorf("%w: account %s holds %s, line is %s", domain.ErrCurrencyMismatch, acc.AccountID, acc.CurrencyCode, line.Amount.Currency)
		}
	}

	// Net signed delta per account, derived from each account type's
	// normal balance side.
	balanceChanges := make(map[domain.AccountID]int64)
	for _, line := range lines {
		acc := accountsMap[line.AccountID]
		delta, err := accounting.SignedMinorUnits(line.Direction, line.Amount, acc.AccountType)
		if err != nil {
			s.LogError(ctx, err, "Error calculating balance change", slog.String("account_id", line.AccountID.String()))
			return nil, fmt.Errorf("internal error calculating balance changes: %w", err)
		}
		balanceChanges[line.AccountID] += delta
	}

	now := time.Now().UTC()
	journalID := domain.NewJournalID()

	entries := make([]domain.LedgerEntry, len(lines))
	for i, line := range lines {
		entries[i] = domain.LedgerEntry{
			EntryID:       domain.NewEntryID(),
			TenantID:      tenantID,
			AccountID:     line.AccountID,
			JournalID:     journalID,
			EntryType:     line.EntryType,
			Direction:     line.Direction,
			Amount:        line.Amount,
			EffectiveDate: effectiveDate,
			PostedAt:      now,
			Description:   line.Description,
			Metadata:      line.Metadata,
			CreatedBy:     userID,
			// SequenceNumber and BalanceAfter are assigned by the
			// repository under account row locks.
		}
	}

	posted, err := s.ledgerRepo.PostJournal(ctx, tenantID, entries, balanceChanges)
	if err != nil {
		s.LogError(ctx, err, "Failed to post journal", slog.String("tenant_id", tenantID.String()), slog.String("journal_id", journalID.String()))
		return nil, fmt.Errorf("failed to post journal: %w", err)
	}

	s.LogInfo(ctx, "Journal posted",
		slog.String("journal_id", journalID.String()),
		slog.String("tenant_id", tenantID.String()),
		slog.Int("entry_count", len(posted)),
	)
	return posted, nil
}

// ReverseJournal posts a new journal that flips every entry of the original.
// The original entries stay untouched; the reversal links back to them via
// entry metadata.
func (s *ledgerService) ReverseJournal(ctx context.Context, tenantID domain.TenantID, journalID domain.JournalID, userID string) ([]domain.LedgerEntry, error) {
	original, err := s.ledgerRepo.FindEntriesByJournalID(ctx, tenantID, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load journal for reversal", slog.String("journal_id", journalID.String()))
		}
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	if len(original) == 0 {
		return nil, fmt.Errorf("journal %s: %w", journalID, apperrors.ErrNotFound)
	}

	lines, err := accounting.ReversalLines(original)
	if err != nil {
		return nil, err
	}

	// The reversal takes effect on the original journal's effective date so
	// period reports net out.
	posted, err := s.PostJournal(ctx, tenantID, lines, original[0].EffectiveDate, userID)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Journal reversed",
		slog.String("original_journal_id", journalID.String()),
		slog.String("reversing_journal_id", posted[0].JournalID.String()),
	)
	return posted, nil
}

// GetJournal retrieves all entries posted under one journal ID.
func (s *ledgerService) GetJournal(ctx context.Context, tenantID domain.TenantID, journalID domain.JournalID) ([]domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.FindEntriesByJournalID(ctx, tenantID, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("journal %s: %w", journalID, apperrors.ErrNotFound)
	}
	return entries, nil
}

// ListEntriesByAccount retrieves a page of an account's history, newest first.
func (s *ledgerService) ListEntriesByAccount(ctx context.Context, tenantID domain.TenantID, accountID domain.AccountID, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID); err != nil {
		return nil, nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	entries, token, err := s.ledgerRepo.ListEntriesByAccount(ctx, tenantID, accountID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account entries", slog.String("account_id", accountID.String()))
		return nil, nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, token, nil
}

// uniqueAccountIDs returns the distinct account IDs touched by the lines.
func uniqueAccountIDs(lines []domain.JournalLine) []domain.AccountID {
	seen := make(map[domain.AccountID]struct{}, len(lines))
	ids := make([]domain.AccountID, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; ok {
			continue
		}
		seen[line.AccountID] = struct{}{}
		ids = append(ids, line.AccountID)
	}
	return ids
}
