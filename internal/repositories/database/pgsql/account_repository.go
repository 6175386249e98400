package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nyumbani/property_ledger/internal/apperrors"
	"github.com/nyumbani/property_ledger/internal/core/domain"
	portsrepo "github.com/nyumbani/property_ledger/internal/core/ports/repositories"
	"github.com/nyumbani/property_ledger/internal/models"
	"github.com/nyumbani/property_ledger/internal/utils/mapping"
)

const accountColumns = `account_id, tenant_id, name, account_type, status, frozen_reason, currency_code, balance_minor_units, last_entry_id, last_entry_at, entry_count, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.TenantID,
		&m.Name,
		&m.AccountType,
		&m.Status,
		&m.FrozenReason,
		&m.CurrencyCode,
		&m.BalanceMinor,
		&m.LastEntryID,
		&m.LastEntryAt,
		&m.EntryCount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.TenantID,
		m.Name,
		m.AccountType,
		m.Status,
		m.FrozenReason,
		m.CurrencyCode,
		m.BalanceMinor,
		m.LastEntryID,
		m.LastEntryAt,
		m.EntryCount,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if mapped := mapPgError(err); errors.Is(mapped, apperrors.ErrDuplicate) {
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, m.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID within a tenant.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, tenantID domain.TenantID, accountID domain.AccountID) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE tenant_id = $1 AND account_id = $2;
	`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, tenantID.String(), accountID.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	account := mapping.ToDomainAccount(*m)
	return &account, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs, keyed by account ID.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID domain.TenantID, accountIDs []domain.AccountID) (map[domain.AccountID]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[domain.AccountID]domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE tenant_id = $1 AND account_id = ANY($2);
	`
	rows, err := r.Pool.Query(ctx, query, tenantID.String(), accountIDStrings(accountIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	return collectAccountMap(rows)
}

// FindAccountsByIDsForUpdate retrieves accounts by ID within a transaction,
// locking the rows until the transaction completes. Rows are locked in a
// stable order so concurrent journals cannot deadlock on each other.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, tenantID domain.TenantID, accountIDs []domain.AccountID) (map[domain.AccountID]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[domain.AccountID]domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE tenant_id = $1 AND account_id = ANY($2)
		ORDER BY account_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, tenantID.String(), accountIDStrings(accountIDs))
	if err != nil {
		if mapped := mapPgError(err); mapped != nil {
			return nil, fmt.Errorf("failed to lock accounts: %w", mapped)
		}
		return nil, fmt.Errorf("failed to query accounts by IDs for update: %w", err)
	}
	defer rows.Close()

	return collectAccountMap(rows)
}

// ListAccounts retrieves a page of a tenant's accounts ordered by creation time.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, tenantID domain.TenantID, limit int, offset int) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE tenant_id = $1
		ORDER BY created_at DESC, account_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID.String(), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return mapping.ToDomainAccountSlice(accounts), nil
}

// accountStatusUpdateQuery builds the guarded lifecycle update. CLOSED is
// terminal, so no transition may overwrite it, and closing additionally
// requires the balance to still be zero when the update lands. The service
// checks both on an unlocked read; a posting can race in between.
func accountStatusUpdateQuery(target domain.AccountStatus) string {
	query := `
		UPDATE accounts
		SET status = $3, frozen_reason = $4, last_updated_at = $5, last_updated_by = $6
		WHERE tenant_id = $1 AND account_id = $2 AND status <> 'CLOSED'`
	if target == domain.AccountClosed {
		query += ` AND balance_minor_units = 0`
	}
	return query + ";"
}

// UpdateAccountStatus updates the lifecycle fields of an account.
func (r *PgxAccountRepository) UpdateAccountStatus(ctx context.Context, account domain.Account) error {
	ct, err := r.Pool.Exec(ctx, accountStatusUpdateQuery(account.Status),
		account.TenantID.String(),
		account.AccountID.String(),
		string(account.Status),
		account.FrozenReason,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s status: %w", account.AccountID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s status changed concurrently", apperrors.ErrConcurrency, account.AccountID)
	}
	return nil
}

func accountIDStrings(ids []domain.AccountID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func collectAccountMap(rows pgx.Rows) (map[domain.AccountID]domain.Account, error) {
	accountsMap := make(map[domain.AccountID]domain.Account)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		acc := mapping.ToDomainAccount(*m)
		accountsMap[acc.AccountID] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accountsMap, nil
}
