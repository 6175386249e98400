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
	"github.com/nyumbani/property_ledger/internal/dto"
)

// statementService generates statements by replaying ledger history.
type statementService struct {
	BaseService
	statementRepo portsrepo.StatementRepositoryFacade
	ledgerRepo    portsrepo.LedgerReader
	accountRepo   portsrepo.AccountReader
}

// NewStatementService creates a new StatementService.
func NewStatementService(statementRepo portsrepo.StatementRepositoryFacade, ledgerRepo portsrepo.LedgerReader, accountRepo portsrepo.AccountReader) portssvc.StatementSvcFacade {
	return &statementService{
		statementRepo: statementRepo,
		ledgerRepo:    ledgerRepo,
		accountRepo:   accountRepo,
	}
}

var _ portssvc.StatementSvcFacade = (*statementService)(nil)

// GenerateStatement replays an account's entries over the period into a
// statement and persists it in GENERATED state. Statement balances are kept
// in debit-positive terms: each debit raises the running balance, each
// credit lowers it, whatever the account's normal side.
func (s *statementService) GenerateStatement(ctx context.Context, tenantID domain.TenantID, req dto.GenerateStatementRequest, userID string) (*domain.Statement, error) {
	accountID, err := domain.ParseAccountID(req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if !req.PeriodEnd.After(req.PeriodStart) {
		return nil, fmt.Errorf("%w: period end must be after period start", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	opening, err := s.openingBalance(ctx, account, req.PeriodStart)
	if err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepo.ListEntriesByAccountInPeriod(ctx, tenantID, accountID, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		s.LogError(ctx, err, "Failed to load entries for statement", slog.String("account_id", accountID.String()))
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	builder := domain.NewStatementBuilder(tenantID, accountID, domain.StatementType(req.StatementType), account.CurrencyCode, req.PeriodStart, req.PeriodEnd, opening)
	for _, e := range entries {
		var debit, credit int64
		if e.Direction == domain.Debit {
			debit = e.Amount.AmountMinor
		} else {
			credit = e.Amount.AmountMinor
		}
		if err := builder.AddLineItem(e.EffectiveDate, e.EntryType, e.Description, debit, credit); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	statement, err := builder.Build(userID, now)
	if err != nil {
		return nil, err
	}
	if err := statement.MarkGenerated(userID, now); err != nil {
		return nil, err
	}

	if err := s.statementRepo.SaveStatement(ctx, *statement); err != nil {
		s.LogError(ctx, err, "Failed to save statement", slog.String("account_id", accountID.String()))
		return nil, fmt.Errorf("failed to save statement: %w", err)
	}

	s.LogInfo(ctx, "Statement generated",
		slog.String("statement_id", statement.StatementID.String()),
		slog.String("account_id", accountID.String()),
		slog.Int("line_count", len(statement.Lines)),
	)
	return statement, nil
}

// openingBalance derives the debit-positive balance as of the period start by
// summing every entry with an earlier effective date. Summing by effective
// date, rather than reading a running balance, keeps back-dated postings such
// as reversals out of the periods they precede.
func (s *statementService) openingBalance(ctx context.Context, account *domain.Account, periodStart time.Time) (domain.Money, error) {
	debits, credits, err := s.ledgerRepo.SumEntriesBefore(ctx, account.TenantID, account.AccountID, periodStart)
	if err != nil {
		return domain.Money{}, fmt.Errorf("failed to derive opening balance: %w", err)
	}
	return domain.Money{AmountMinor: debits - credits, Currency: account.CurrencyCode}, nil
}

// GetStatementByID retrieves a specific statement.
func (s *statementService) GetStatementByID(ctx context.Context, tenantID domain.TenantID, statementID domain.StatementID) (*domain.Statement, error) {
	statement, err := s.statementRepo.FindStatementByID(ctx, tenantID, statementID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find statement", slog.String("statement_id", statementID.String()))
		}
		return nil, fmt.Errorf("failed to find statement %s: %w", statementID, err)
	}
	return statement, nil
}

// ListStatementsByAccount retrieves a page of an account's statements.
func (s *statementService) ListStatementsByAccount(ctx context.Context, tenantID domain.TenantID, accountID domain.AccountID, limit int, nextToken *string) ([]domain.Statement, *string, error) {
	statements, token, err := s.statementRepo.ListStatementsByAccount(ctx, tenantID, accountID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list statements", slog.String("account_id", accountID.String()))
		return nil, nil, fmt.Errorf("failed to list statements: %w", err)
	}
	return statements, token, nil
}

// MarkStatementSent records that a generated statement was delivered.
func (s *statementService) MarkStatementSent(ctx context.Context, tenantID domain.TenantID, statementID domain.StatementID, userID string) (*domain.Statement, error) {
	return s.updateStatus(ctx, tenantID, statementID, func(st *domain.Statement, now time.Time) error {
		return st.MarkSent(userID, now)
	}, "Statement marked sent")
}

// MarkStatementViewed records that the recipient opened the statement.
func (s *statementService) MarkStatementViewed(ctx context.Context, tenantID domain.TenantID, statementID domain.StatementID, userID string) (*domain.Statement, error) {
	return s.updateStatus(ctx, tenantID, statementID, func(st *domain.Statement, now time.Time) error {
		return st.MarkViewed(userID, now)
	}, "Statement marked viewed")
}

func (s *statementService) updateStatus(ctx context.Context, tenantID domain.TenantID, statementID domain.StatementID, transition func(*domain.Statement, time.Time) error, logMsg string) (*domain.Statement, error) {
	statement, err := s.statementRepo.FindStatementByID(ctx, tenantID, statementID)
	if err != nil {
		return nil, fmt.Errorf("failed to find statement %s: %w", statementID, err)
	}

	if err := transition(statement, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := s.statementRepo.UpdateStatementStatus(ctx, *statement); err != nil {
		s.LogError(ctx, err, "Failed to update statement status", slog.String("statement_id", statementID.String()))
		return nil, fmt.Errorf("failed to update statement %s: %w", statementID, err)
	}

	s.LogInfo(ctx, logMsg, slog.String("statement_id", statementID.String()), slog.String("status", string(statement.Status)))
	return statement, nil
}
