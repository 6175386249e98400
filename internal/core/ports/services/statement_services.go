package services

import (
	"context"

	"github.com/nyumbani/property_ledger/internal/core/domain"
	"github.com/nyumbani/property_ledger/internal/dto"
)

// StatementReaderSvc defines read operations for statement data
type StatementReaderSvc interface {
	// GetStatementByID retrieves a specific statement by its unique identifier.
	GetStatementByID(ctx context.Context, tenantID domain.TenantID, statementID domain.StatementID) (*domain.Statement, error)

	// ListStatementsByAccount retrieves a paginated list of statements for an
	// account, newest period first, using token-based pagination.
	ListStatementsByAccount(ctx context.Context, tenantID domain.TenantID, accountID domain.AccountID, limit int, nextToken *string) ([]domain.Statement, *string, error)
}

// StatementWriterSvc defines the statement generation and delivery operations
type StatementWriterSvc interface {
	// GenerateStatement replays an account's entries over the requested period
	// into a statement and persists it in GENERATED state.
	GenerateStatement(ctx context.Context, tenantID domain.TenantID, req dto.GenerateStatementRequest, userID string) (*domain.Statement, error)

	// MarkStatementSent records that a generated statement was delivered.
	MarkStatementSent(ctx context.Context, tenantID domain.TenantID, statementID domain.StatementID, userID string) (*domain.Statement, error)

	// MarkStatementViewed records that the recipient opened the statement.
	// Repeated views are idempotent.
	MarkStatementViewed(ctx context.Context, tenantID domain.TenantID, statementID domain.StatementID, userID string) (*domain.Statement, error)
}

// StatementSvcFacade combines all statement-related service interfaces
type StatementSvcFacade interface {
	StatementReaderSvc
	StatementWriterSvc
}
