package repositories

import (
	"context"

	"github.com/nyumbani/property_ledger/internal/core/domain"
)

// StatementReader defines read operations for statement data
type StatementReader interface {
	// FindStatementByID retrieves a specific statement by its unique identifier.
	FindStatementByID(ctx context.Context, tenantID domain.TenantID, statementID domain.StatementID) (*domain.Statement, error)

	// ListStatementsByAccount retrieves a paginated list of statements for an account
	// using token-based pagination, newest period first.
	ListStatementsByAccount(ctx context.Context, tenantID domain.TenantID, accountID domain.AccountID, limit int, nextToken *string) ([]domain.Statement, *string, error)
}

// StatementWriter defines write operations for statement data
type StatementWriter interface {
	// SaveStatement persists a newly generated statement.
	SaveStatement(ctx context.Context, statement domain.Statement) error

	// UpdateStatementStatus updates the delivery status of a statement.
	UpdateStatementStatus(ctx context.Context, statement domain.Statement) error
}

// StatementRepositoryFacade combines all statement-related repository interfaces
type StatementRepositoryFacade interface {
	StatementReader
	StatementWriter
}
