package dto

import (
	"time"

	"github.com/nyumbani/property_ledger/internal/core/domain"
	"github.com/nyumbani/property_ledger/internal/utils"
)

// GenerateStatementRequest defines the data needed to generate a statement.
type GenerateStatementRequest struct {
	AccountID     string    `json:"accountID" binding:"required,uuid"`
	StatementType string    `json:"statementType" binding:"required,oneof=ACCOUNT_STATEMENT CUSTOMER_STATEMENT OWNER_STATEMENT"`
	PeriodStart   time.Time `json:"periodStart" binding:"required"`
	PeriodEnd     time.Time `json:"periodEnd" binding:"required,gtfield=PeriodStart"`
}

// StatementLineResponse is one statement line with display-formatted amounts.
type StatementLineResponse struct {
	Date              time.Time `json:"date"`
	EntryType         string    `json:"entryType"`
	Description       string    `json:"description"`
	DebitMinorUnits   int64     `json:"debitMinorUnits"`
	CreditMinorUnits  int64     `json:"creditMinorUnits"`
	BalanceMinorUnits int64     `json:"balanceMinorUnits"`
	BalanceDisplay    string    `json:"balanceDisplay"`
}

// StatementSummaryResponse aggregates statement activity per entry type.
type StatementSummaryResponse struct {
	EntryType        string `json:"entryType"`
	DebitMinorUnits  int64  `json:"debitMinorUnits"`
	CreditMinorUnits int64  `json:"creditMinorUnits"`
	LineCount        int    `json:"lineCount"`
}

// StatementResponse defines the data returned for a statement.
type StatementResponse struct {
	StatementID              string                     `json:"statementID"`
	TenantID                 string                     `json:"tenantID"`
	AccountID                string                     `json:"accountID"`
	StatementType            string                     `json:"statementType"`
	Status                   string                     `json:"status"`
	CurrencyCode             string                     `json:"currencyCode"`
	PeriodStart              time.Time                  `json:"periodStart"`
	PeriodEnd                time.Time                  `json:"periodEnd"`
	OpeningBalanceMinorUnits int64                      `json:"openingBalanceMinorUnits"`
	ClosingBalanceMinorUnits int64                      `json:"closingBalanceMinorUnits"`
	OpeningBalanceDisplay    string                     `json:"openingBalanceDisplay"`
	ClosingBalanceDisplay    string                     `json:"closingBalanceDisplay"`
	TotalDebitsMinorUnits    int64                      `json:"totalDebitsMinorUnits"`
	TotalCreditsMinorUnits   int64                      `json:"totalCreditsMinorUnits"`
	NetChangeMinorUnits      int64                      `json:"netChangeMinorUnits"`
	Lines                    []StatementLineResponse    `json:"lineItems"`
	Summaries                []StatementSummaryResponse `json:"summaries"`
	GeneratedAt              *time.Time                 `json:"generatedAt,omitempty"`
	SentAt                   *time.Time                 `json:"sentAt,omitempty"`
	ViewedAt                 *time.Time                 `json:"viewedAt,omitempty"`
	CreatedAt                time.Time                  `json:"createdAt"`
	CreatedBy                string                     `json:"createdBy"`
}

// ToStatementResponse converts a domain.Statement to StatementResponse DTO.
// precision is the currency's minor-unit precision, used only for the
// display-formatted amounts.
func ToStatementResponse(s *domain.Statement, precision int) StatementResponse {
	lines := make([]StatementLineResponse, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = StatementLineResponse{
			Date:              l.Date,
			EntryType:         string(l.EntryType),
			Description:       l.Description,
			DebitMinorUnits:   l.DebitMinor,
			CreditMinorUnits:  l.CreditMinor,
			BalanceMinorUnits: l.BalanceMinor,
			BalanceDisplay:    utils.FormatMoney(domain.Money{AmountMinor: l.BalanceMinor, Currency: s.CurrencyCode}, precision),
		}
	}
	summaries := make([]StatementSummaryResponse, len(s.Summaries))
	for i, sm := range s.Summaries {
		summaries[i] = StatementSummaryResponse{
			EntryType:        string(sm.EntryType),
			DebitMinorUnits:  sm.DebitMinor,
			CreditMinorUnits: sm.CreditMinor,
			LineCount:        sm.LineCount,
		}
	}
	return StatementResponse{
		StatementID:              s.StatementID.String(),
		TenantID:                 s.TenantID.String(),
		AccountID:                s.AccountID.String(),
		StatementType:            string(s.StatementType),
		Status:                   string(s.Status),
		CurrencyCode:             s.CurrencyCode,
		PeriodStart:              s.PeriodStart,
		PeriodEnd:                s.PeriodEnd,
		OpeningBalanceMinorUnits: s.OpeningMinor,
		ClosingBalanceMinorUnits: s.ClosingMinor,
		OpeningBalanceDisplay:    utils.FormatMoney(domain.Money{AmountMinor: s.OpeningMinor, Currency: s.CurrencyCode}, precision),
		ClosingBalanceDisplay:    utils.FormatMoney(domain.Money{AmountMinor: s.ClosingMinor, Currency: s.CurrencyCode}, precision),
		TotalDebitsMinorUnits:    s.TotalDebits,
		TotalCreditsMinorUnits:   s.TotalCredits,
		NetChangeMinorUnits:      s.NetChange,
		Lines:                    lines,
		Summaries:                summaries,
		GeneratedAt:              s.GeneratedAt,
		SentAt:                   s.SentAt,
		ViewedAt:                 s.ViewedAt,
		CreatedAt:                s.CreatedAt,
		CreatedBy:                s.CreatedBy,
	}
}

// ListStatementsParams defines query parameters for listing statements.
type ListStatementsParams struct {
	AccountID string  `form:"accountID" binding:"required,uuid"`
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListStatementsResponse wraps a page of statements with the next page token.
type ListStatementsResponse struct {
	Statements []StatementResponse `json:"statements"`
	NextToken  *string             `json:"nextToken,omitempty"`
}
