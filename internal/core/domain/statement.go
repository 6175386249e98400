package domain

import (
	"fmt"
	"time"

	"github.com/nyumbani/property_ledger/internal/apperrors"
)

// StatementType identifies the audience of a statement.
type StatementType string

const (
	AccountStatement  StatementType = "ACCOUNT_STATEMENT"
	CustomerStatement StatementType = "CUSTOMER_STATEMENT"
	OwnerStatement    StatementType = "OWNER_STATEMENT"
)

// StatementStatus is the statement's short forward-only lifecycle.
type StatementStatus string

const (
	StatementDraft     StatementStatus = "DRAFT"
	StatementGenerated StatementStatus = "GENERATED"
	StatementSent      StatementStatus = "SENT"
	StatementViewed    StatementStatus = "VIEWED"
)

// StatementLine is one line of a statement, carrying the running balance
// after the line was applied.
type StatementLine struct {
	Date         time.Time `json:"date"`
	EntryType    EntryType `json:"entryType"`
	Description  string    `json:"description"`
	DebitMinor   int64     `json:"debitMinorUnits"`
	CreditMinor  int64     `json:"creditMinorUnits"`
	BalanceMinor int64     `json:"balanceMinorUnits"`
}

// StatementSummary aggregates statement activity per entry type.
type StatementSummary struct {
	EntryType   EntryType `json:"entryType"`
	DebitMinor  int64     `json:"debitMinorUnits"`
	CreditMinor int64     `json:"creditMinorUnits"`
	LineCount   int       `json:"lineCount"`
}

// Statement is a derived report over a period of ledger activity. It is
// immutable once built; only its status advances afterwards.
type Statement struct {
	StatementID   StatementID        `json:"statementID"`
	TenantID      TenantID           `json:"tenantID"`
	AccountID     AccountID          `json:"accountID"`
	StatementType StatementType      `json:"statementType"`
	Status        StatementStatus    `json:"status"`
	CurrencyCode  string             `json:"currencyCode"`
	PeriodStart   time.Time          `json:"periodStart"`
	PeriodEnd     time.Time          `json:"periodEnd"`
	OpeningMinor  int64              `json:"openingBalanceMinorUnits"`
	ClosingMinor  int64              `json:"closingBalanceMinorUnits"`
	TotalDebits   int64              `json:"totalDebitsMinorUnits"`
	TotalCredits  int64              `json:"totalCreditsMinorUnits"`
	NetChange     int64              `json:"netChangeMinorUnits"`
	Lines         []StatementLine    `json:"lineItems"`
	Summaries     []StatementSummary `json:"summaries"`
	GeneratedAt   *time.Time         `json:"generatedAt,omitempty"`
	SentAt        *time.Time         `json:"sentAt,omitempty"`
	ViewedAt      *time.Time         `json:"viewedAt,omitempty"`
	AuditFields
}

// MarkGenerated advances DRAFT -> GENERATED.
func (s *Statement) MarkGenerated(userID string, now time.Time) error {
	if s.Status != StatementDraft {
		return fmt.Errorf("%w: statement %s is %s, expected DRAFT", apperrors.ErrStateConflict, s.StatementID, s.Status)
	}
	s.Status = StatementGenerated
	s.GeneratedAt = &now
	s.LastUpdatedAt = now
	s.LastUpdatedBy = userID
	return nil
}

// MarkSent advances GENERATED -> SENT.
func (s *Statement) MarkSent(userID string, now time.Time) error {
	if s.Status != StatementGenerated {
		return fmt.Errorf("%w: statement %s is %s, expected GENERATED", apperrors.ErrStateConflict, s.StatementID, s.Status)
	}
	s.Status = StatementSent
	s.SentAt = &now
	s.LastUpdatedAt = now
	s.LastUpdatedBy = userID
	return nil
}

// MarkViewed advances SENT -> VIEWED. Repeated views are a no-op; viewing a
// DRAFT statement is an error.
func (s *Statement) MarkViewed(userID string, now time.Time) error {
	switch s.Status {
	case StatementViewed:
		return nil
	case StatementDraft:
		return fmt.Errorf("%w: statement %s has not been generated", apperrors.ErrStateConflict, s.StatementID)
	}
	s.Status = StatementViewed
	s.ViewedAt = &now
	s.LastUpdatedAt = now
	s.LastUpdatedBy = userID
	return nil
}

// StatementBuilder accumulates line items against a running balance seeded
// by the opening balance. Each debit increases and each credit decreases
// the running balance; Build freezes the totals.
type StatementBuilder struct {
	statement Statement
	running   int64
	built     bool
}

// NewStatementBuilder starts a DRAFT statement for one account and period.
func NewStatementBuilder(tenantID TenantID, accountID AccountID, stmtType StatementType, currency string, periodStart, periodEnd time.Time, opening Money) *StatementBuilder {
	return &StatementBuilder{
		statement: Statement{
			StatementID:   NewStatementID(),
			TenantID:      tenantID,
			AccountID:     accountID,
			StatementType: stmtType,
			Status:        StatementDraft,
			CurrencyCode:  currency,
			PeriodStart:   periodStart,
			PeriodEnd:     periodEnd,
			OpeningMinor:  opening.AmountMinor,
		},
		running: opening.AmountMinor,
	}
}

// AddLineItem appends one line and advances the running balance.
func (b *StatementBuilder) AddLineItem(date time.Time, entryType EntryType, description string, debitMinor, creditMinor int64) error {
	if b.built {
		return fmt.Errorf("%w: statement already built", apperrors.ErrStateConflict)
	}
	if debitMinor < 0 || creditMinor < 0 {
		return fmt.Errorf("%w: line amounts must be non-negative", apperrors.ErrValidation)
	}
	b.running += debitMinor - creditMinor
	b.statement.Lines = append(b.statement.Lines, StatementLine{
		Date:         date,
		EntryType:    entryType,
		Description:  description,
		DebitMinor:   debitMinor,
		CreditMinor:  creditMinor,
		BalanceMinor: b.running,
	})
	return nil
}

// Build computes totals and freezes the statement. The builder cannot be
// reused afterwards.
func (b *StatementBuilder) Build(userID string, now time.Time) (*Statement, error) {
	if b.built {
		return nil, fmt.Errorf("%w: statement already built", apperrors.ErrStateConflict)
	}
	b.built = true

	var totalDebits, totalCredits int64
	summaryIndex := make(map[EntryType]int)
	for _, line := range b.statement.Lines {
		totalDebits += line.DebitMinor
		totalCredits += line.CreditMinor
		i, ok := summaryIndex[line.EntryType]
		if !ok {
			i = len(b.statement.Summaries)
			summaryIndex[line.EntryType] = i
			b.statement.Summaries = append(b.statement.Summaries, StatementSummary{EntryType: line.EntryType})
		}
		b.statement.Summaries[i].DebitMinor += line.DebitMinor
		b.statement.Summaries[i].CreditMinor += line.CreditMinor
		b.statement.Summaries[i].LineCount++
	}

	b.statement.TotalDebits = totalDebits
	b.statement.TotalCredits = totalCredits
	b.statement.NetChange = totalDebits - totalCredits
	b.statement.ClosingMinor = b.statement.OpeningMinor + b.statement.NetChange
	b.statement.AuditFields = AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	stmt := b.statement
	return &stmt, nil
}
