package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nyumbani/property_ledger/internal/apperrors"
	"github.com/nyumbani/property_ledger/internal/core/domain"
	portsrepo "github.com/nyumbani/property_ledger/internal/core/ports/repositories"
	"github.com/nyumbani/property_ledger/internal/models"
	"github.com/nyumbani/property_ledger/internal/utils/accounting"
	"github.com/nyumbani/property_ledger/internal/utils/mapping"
	"github.com/nyumbani/property_ledger/internal/utils/pagination"
)

const entryColumns = `entry_id, tenant_id, account_id, journal_id, entry_type, direction, amount_minor_units, currency_code, balance_after_minor_units, sequence_number, effective_date, posted_at, description, metadata, created_by`

type PgxLedgerRepository struct {
	BaseRepository
	accountRepo *PgxAccountRepository
}

// newPgxLedgerRepository creates a new repository for ledger entry data.
// The account repository is injected so journal posting can lock and update
// account rows inside its own transaction.
func newPgxLedgerRepository(pool *pgxpool.Pool, accountRepo *PgxAccountRepository) *PgxLedgerRepository {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

func scanEntry(row pgx.Row) (*models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.TenantID,
		&m.AccountID,
		&m.JournalID,
		&m.EntryType,
		&m.Direction,
		&m.AmountMinor,
		&m.CurrencyCode,
		&m.BalanceAfterMinor,
		&m.SequenceNumber,
		&m.EffectiveDate,
		&m.PostedAt,
		&m.Description,
		&m.Metadata,
		&m.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// verifyAccountsPostable rejects a posting when any locked account has left
// a transactable state.
func verifyAccountsPostable(accounts map[domain.AccountID]domain.Account) error {
	for accID, acc := range accounts {
		if !acc.CanTransact() {
			return fmt.Errorf("%w: account %s is %s", apperrors.ErrStateConflict, accID, acc.Status)
		}
	}
	return nil
}

// PostJournal persists a balanced journal atomically. Inside one database
// transaction it locks the touched account rows, assigns each entry the
// account's next sequence number and running balance, inserts the entries
// and brings the account projections up to date. Either everything commits
// or nothing does.
func (r *PgxLedgerRepository) PostJournal(ctx context.Context, tenantID domain.TenantID, entries []domain.LedgerEntry, balanceChanges map[domain.AccountID]int64) ([]domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // No-op once the transaction commits

	accountIDs := make([]domain.AccountID, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, tenantID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts for posting: %w", err)
	}
	if len(lockedAccounts) != len(accountIDs) {
		return nil, fmt.Errorf("%w: one or more accounts missing during posting", apperrors.ErrNotFound)
	}
	// The service checked status on an unlocked read; an account may have
	// been frozen or closed since, so re-verify on the locked rows.
	if err := verifyAccountsPostable(lockedAccounts); err != nil {
		return nil, err
	}

	// Per-account running state, seeded from the locked rows.
	runningBalances := make(map[domain.AccountID]int64, len(lockedAccounts))
	nextSequence := make(map[domain.AccountID]uint64, len(lockedAccounts))
	for accID, acc := range lockedAccounts {
		runningBalances[accID] = acc.BalanceMinor
		nextSequence[accID] = uint64(acc.EntryCount) + 1
	}

	insertQuery := `
		INSERT INTO ledger_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	batch := &pgx.Batch{}
	posted := make([]domain.LedgerEntry, len(entries))
	lastEntry := make(map[domain.AccountID]domain.LedgerEntry, len(lockedAccounts))

	for i, entry := range entries {
		acc, ok := lockedAccounts[entry.AccountID]
		if !ok {
			return nil, fmt.Errorf("internal error: account %s not locked during posting", entry.AccountID)
		}

		delta, err := accounting.SignedMinorUnits(entry.Direction, entry.Amount, acc.AccountType)
		if err != nil {
			return nil, fmt.Errorf("failed to sign entry %s: %w", entry.EntryID, err)
		}

		runningBalances[entry.AccountID] += delta
		entry.BalanceAfter = domain.Money{AmountMinor: runningBalances[entry.AccountID], Currency: acc.CurrencyCode}
		entry.SequenceNumber = nextSequence[entry.AccountID]
		nextSequence[entry.AccountID]++

		m, err := mapping.ToModelLedgerEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("failed to map entry %s: %w", entry.EntryID, err)
		}
		batch.Queue(insertQuery,
			m.EntryID,
			m.TenantID,
			m.AccountID,
			m.JournalID,
			m.EntryType,
			m.Direction,
			m.AmountMinor,
			m.CurrencyCode,
			m.BalanceAfterMinor,
			m.SequenceNumber,
			m.EffectiveDate,
			m.PostedAt,
			m.Description,
			m.Metadata,
			m.CreatedBy,
		)

		posted[i] = entry
		lastEntry[entry.AccountID] = entry
	}

	br := tx.SendBatch(ctx, batch)
	for range entries {
		if _, err := br.Exec(); err != nil {
			br.Close()
			if mapped := mapPgError(err); mapped != nil {
				return nil, fmt.Errorf("failed to insert ledger entries: %w", mapped)
			}
			return nil, fmt.Errorf("failed to insert ledger entries: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("failed to close entry insert batch: %w", err)
	}

	if err := r.updateAccountProjections(ctx, tx, tenantID, lockedAccounts, runningBalances, nextSequence, lastEntry); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		if mapped := mapPgError(err); mapped != nil {
			return nil, fmt.Errorf("failed to commit journal: %w", mapped)
		}
		return nil, err
	}
	return posted, nil
}

// updateAccountProjections writes the post-journal balance, entry count and
// last-entry tracking for every touched account. Runs on locked rows.
func (r *PgxLedgerRepository) updateAccountProjections(ctx context.Context, tx pgx.Tx, tenantID domain.TenantID, locked map[domain.AccountID]domain.Account, balances map[domain.AccountID]int64, nextSeq map[domain.AccountID]uint64, lastEntry map[domain.AccountID]domain.LedgerEntry) error {
	query := `
		UPDATE accounts
		SET balance_minor_units = $3, entry_count = $4, last_entry_id = $5, last_entry_at = $6, last_updated_at = $7, last_updated_by = $8
		WHERE tenant_id = $1 AND account_id = $2;
	`
	batch := &pgx.Batch{}
	accountIDs := make([]domain.AccountID, 0, len(locked))
	for accID := range locked {
		last, ok := lastEntry[accID]
		if !ok {
			continue
		}
		batch.Queue(query,
			tenantID.String(),
			accID.String(),
			balances[accID],
			int64(nextSeq[accID]-1),
			last.EntryID.String(),
			last.PostedAt,
			last.PostedAt,
			last.CreatedBy,
		)
		accountIDs = append(accountIDs, accID)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			return fmt.Errorf("failed to update balance for account %s: %w", accountIDs[i], err)
		}
		if ct.RowsAffected() == 0 {
			return fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, accountIDs[i])
		}
	}
	return nil
}

// FindEntryByID retrieves a single entry.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, tenantID domain.TenantID, entryID domain.EntryID) (*domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE tenant_id = $1 AND entry_id = $2;
	`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, tenantID.String(), entryID.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	entry, err := mapping.ToDomainLedgerEntry(*m)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindEntriesByJournalID retrieves all entries posted under one journal.
func (r *PgxLedgerRepository) FindEntriesByJournalID(ctx context.Context, tenantID domain.TenantID, journalID domain.JournalID) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE tenant_id = $1 AND journal_id = $2
		ORDER BY entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID.String(), journalID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for journal %s: %w", journalID, err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// ListEntriesByAccount retrieves a page of an account's entries, newest
// first, using a (posted_at, sequence_number) cursor.
func (r *PgxLedgerRepository) ListEntriesByAccount(ctx context.Context, tenantID domain.TenantID, accountID domain.AccountID, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether another page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE tenant_id = $1 AND account_id = $2
	`
	orderByClause := `ORDER BY posted_at DESC, sequence_number DESC`

	args := []interface{}{tenantID.String(), accountID.String()}
	query := baseQuery

	if nextToken != nil && *nextToken != "" {
		lastPostedAt, lastSequence, decodeErr := pagination.DecodeEntryToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}
		query += ` AND (posted_at, sequence_number) < ($3, $4) `
		args = append(args, lastPostedAt, lastSequence)
	}
	query += orderByClause + fmt.Sprintf(" LIMIT $%d;", len(args)+1)
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries for account %s: %w", accountID, err)
	}
	defer rows.Close()

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, nil, err
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeEntryToken(last.PostedAt, last.SequenceNumber)
		token = &t
	}
	return entries, token, nil
}

// ListEntriesByAccountInPeriod retrieves an account's entries within the
// effective-date window, in statement order.
func (r *PgxLedgerRepository) ListEntriesByAccountInPeriod(ctx context.Context, tenantID domain.TenantID, accountID domain.AccountID, periodStart, periodEnd time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE tenant_id = $1 AND account_id = $2 AND effective_date >= $3 AND effective_date <= $4
		ORDER BY effective_date, sequence_number;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID.String(), accountID.String(), periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries in period for account %s: %w", accountID, err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// SumEntriesBefore totals debit and credit minor units across all entries with
// an effective date strictly before the given instant. Aggregating by effective
// date keeps back-dated postings attributed to the period they belong to,
// regardless of when they were recorded.
func (r *PgxLedgerRepository) SumEntriesBefore(ctx context.Context, tenantID domain.TenantID, accountID domain.AccountID, before time.Time) (int64, int64, error) {
	query := `
		SELECT
			COALESCE(SUM(amount_minor_units) FILTER (WHERE direction = 'DEBIT'), 0),
			COALESCE(SUM(amount_minor_units) FILTER (WHERE direction = 'CREDIT'), 0)
		FROM ledger_entries
		WHERE tenant_id = $1 AND account_id = $2 AND effective_date < $3;
	`
	var totalDebits, totalCredits int64
	err := r.Pool.QueryRow(ctx, query, tenantID.String(), accountID.String(), before).Scan(&totalDebits, &totalCredits)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to sum entries before %s for account %s: %w", before, accountID, err)
	}
	return totalDebits, totalCredits, nil
}

func collectEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	var modelEntries []models.LedgerEntry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		modelEntries = append(modelEntries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}
	return mapping.ToDomainLedgerEntrySlice(modelEntries)
}
