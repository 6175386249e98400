package mapping

import (
	"encoding/json"

	"github.com/nyumbani/property_ledger/internal/core/domain"
	"github.com/nyumbani/property_ledger/internal/models"
)

// ToModelStatement converts a domain Statement to a model Statement.
// Lines and summaries are serialized to JSON since the statement is
// immutable once built.
func ToModelStatement(d domain.Statement) (models.Statement, error) {
	lines, err := json.Marshal(d.Lines)
	if err != nil {
		return models.Statement{}, err
	}
	summaries, err := json.Marshal(d.Summaries)
	if err != nil {
		return models.Statement{}, err
	}
	return models.Statement{
		StatementID:   d.StatementID.String(),
		TenantID:      d.TenantID.String(),
		AccountID:     d.AccountID.String(),
		StatementType: string(d.StatementType),
		Status:        string(d.Status),
		CurrencyCode:  d.CurrencyCode,
		PeriodStart:   d.PeriodStart,
		PeriodEnd:     d.PeriodEnd,
		OpeningMinor:  d.OpeningMinor,
		ClosingMinor:  d.ClosingMinor,
		TotalDebits:   d.TotalDebits,
		TotalCredits:  d.TotalCredits,
		NetChange:     d.NetChange,
		Lines:         lines,
		Summaries:     summaries,
		GeneratedAt:   d.GeneratedAt,
		SentAt:        d.SentAt,
		ViewedAt:      d.ViewedAt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainStatement converts a model Statement to a domain Statement.
func ToDomainStatement(m models.Statement) (domain.Statement, error) {
	var lines []domain.StatementLine
	if len(m.Lines) > 0 {
		if err := json.Unmarshal(m.Lines, &lines); err != nil {
			return domain.Statement{}, err
		}
	}
	var summaries []domain.StatementSummary
	if len(m.Summaries) > 0 {
		if err := json.Unmarshal(m.Summaries, &summaries); err != nil {
			return domain.Statement{}, err
		}
	}
	return domain.Statement{
		StatementID:   domain.StatementID(m.StatementID),
		TenantID:      domain.TenantID(m.TenantID),
		AccountID:     domain.AccountID(m.AccountID),
		StatementType: domain.StatementType(m.StatementType),
		Status:        domain.StatementStatus(m.Status),
		CurrencyCode:  m.CurrencyCode,
		PeriodStart:   m.PeriodStart,
		PeriodEnd:     m.PeriodEnd,
		OpeningMinor:  m.OpeningMinor,
		ClosingMinor:  m.ClosingMinor,
		TotalDebits:   m.TotalDebits,
		TotalCredits:  m.TotalCredits,
		NetChange:     m.NetChange,
		Lines:         lines,
		Summaries:     summaries,
		GeneratedAt:   m.GeneratedAt,
		SentAt:        m.SentAt,
		ViewedAt:      m.ViewedAt,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}, nil
}
