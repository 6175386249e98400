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
	"github.com/nyumbani/property_ledger/internal/utils/pagination"
)

const statementColumns = `statement_id, tenant_id, account_id, statement_type, status, currency_code, period_start, period_end, opening_balance_minor_units, closing_balance_minor_units, total_debits_minor_units, total_credits_minor_units, net_change_minor_units, line_items, summaries, generated_at, sent_at, viewed_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxStatementRepository struct {
	BaseRepository
}

// newPgxStatementRepository creates a new repository for statement data.
func newPgxStatementRepository(pool *pgxpool.Pool) *PgxStatementRepository {
	return &PgxStatementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StatementRepositoryFacade = (*PgxStatementRepository)(nil)

func scanStatement(row pgx.Row) (*models.Statement, error) {
	var m models.Statement
	err := row.Scan(
		&m.StatementID,
		&m.TenantID,
		&m.AccountID,
		&m.StatementType,
		&m.Status,
		&m.CurrencyCode,
		&m.PeriodStart,
		&m.PeriodEnd,
		&m.OpeningMinor,
		&m.ClosingMinor,
		&m.TotalDebits,
		&m.TotalCredits,
		&m.NetChange,
		&m.Lines,
		&m.Summaries,
		&m.GeneratedAt,
		&m.SentAt,
		&m.ViewedAt,
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

// SaveStatement inserts a newly generated statement.
func (r *PgxStatementRepository) SaveStatement(ctx context.Context, statement domain.Statement) error {
	m, err := mapping.ToModelStatement(statement)
	if err != nil {
		return fmt.Errorf("failed to map statement %s: %w", statement.StatementID, err)
	}

	query := `
		INSERT INTO statements (` + statementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.StatementID,
		m.TenantID,
		m.AccountID,
		m.StatementType,
		m.Status,
		m.CurrencyCode,
		m.PeriodStart,
		m.PeriodEnd,
		m.OpeningMinor,
		m.ClosingMinor,
		m.TotalDebits,
		m.TotalCredits,
		m.NetChange,
		m.Lines,
		m.Summaries,
		m.GeneratedAt,
		m.SentAt,
		m.ViewedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if mapped := mapPgError(err); errors.Is(mapped, apperrors.ErrDuplicate) {
			return fmt.Errorf("%w: statement %s already exists", apperrors.ErrDuplicate, m.StatementID)
		}
		return fmt.Errorf("failed to save statement %s: %w", m.StatementID, err)
	}
	return nil
}

// FindStatementByID retrieves a statement by its ID within a tenant.
func (r *PgxStatementRepository) FindStatementByID(ctx context.Context, tenantID domain.TenantID, statementID domain.StatementID) (*domain.Statement, error) {
	query := `
		SELECT ` + statementColumns + `
		FROM statements
		WHERE tenant_id = $1 AND statement_id = $2;
	`
	m, err := scanStatement(r.Pool.QueryRow(ctx, query, tenantID.String(), statementID.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find statement %s: %w", statementID, err)
	}
	statement, err := mapping.ToDomainStatement(*m)
	if err != nil {
		return nil, err
	}
	return &statement, nil
}

// ListStatementsByAccount retrieves a page of an account's statements,
// newest period first, using a period-end cursor.
func (r *PgxStatementRepository) ListStatementsByAccount(ctx context.Context, tenantID domain.TenantID, accountID domain.AccountID, limit int, nextToken *string) ([]domain.Statement, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + statementColumns + `
		FROM statements
		WHERE tenant_id = $1 AND account_id = $2
	`
	orderByClause := `ORDER BY period_end DESC, statement_id DESC`

	args := []interface{}{tenantID.String(), accountID.String()}
	query := baseQuery

	if nextToken != nil && *nextToken != "" {
		lastPeriodEnd, lastStatementID, decodeErr := pagination.DecodeStatementToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}
		// Row comparison keeps statements sharing a period_end from being
		// skipped across page boundaries.
		query += ` AND (period_end, statement_id) < ($3, $4) `
		args = append(args, lastPeriodEnd, lastStatementID)
	}
	query += orderByClause + fmt.Sprintf(" LIMIT $%d;", len(args)+1)
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query statements for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var statements []domain.Statement
	for rows.Next() {
		m, err := scanStatement(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan statement row: %w", err)
		}
		statement, err := mapping.ToDomainStatement(*m)
		if err != nil {
			return nil, nil, err
		}
		statements = append(statements, statement)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating statement rows: %w", err)
	}

	var token *string
	if len(statements) > limit {
		statements = statements[:limit]
		last := statements[len(statements)-1]
		t := pagination.EncodeStatementToken(last.PeriodEnd, last.StatementID.String())
		token = &t
	}
	return statements, token, nil
}

// UpdateStatementStatus updates the delivery lifecycle fields of a statement.
func (r *PgxStatementRepository) UpdateStatementStatus(ctx context.Context, statement domain.Statement) error {
	query := `
		UPDATE statements
		SET status = $3, generated_at = $4, sent_at = $5, viewed_at = $6, last_updated_at = $7, last_updated_by = $8
		WHERE tenant_id = $1 AND statement_id = $2;
	`
	ct, err := r.Pool.Exec(ctx, query,
		statement.TenantID.String(),
		statement.StatementID.String(),
		string(statement.Status),
		statement.GeneratedAt,
		statement.SentAt,
		statement.ViewedAt,
		statement.LastUpdatedAt,
		statement.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update statement %s status: %w", statement.StatementID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("statement %s: %w", statement.StatementID, apperrors.ErrNotFound)
	}
	return nil
}
