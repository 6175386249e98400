package models

import "time"

// Statement is the DB shape of a generated statement. Lines and summaries
// are stored as JSONB since a statement is immutable once built.
type Statement struct {
	StatementID   string     `db:"statement_id"`
	TenantID      string     `db:"tenant_id"`
	AccountID     string     `db:"account_id"`
	StatementType string     `db:"statement_type"`
	Status        string     `db:"status"`
	CurrencyCode  string     `db:"currency_code"`
	PeriodStart   time.Time  `db:"period_start"`
	PeriodEnd     time.Time  `db:"period_end"`
	OpeningMinor  int64      `db:"opening_balance_minor_units"`
	ClosingMinor  int64      `db:"closing_balance_minor_units"`
	TotalDebits   int64      `db:"total_debits_minor_units"`
	TotalCredits  int64      `db:"total_credits_minor_units"`
	NetChange     int64      `db:"net_change_minor_units"`
	Lines         []byte     `db:"line_items"` // JSONB
	Summaries     []byte     `db:"summaries"`  // JSONB
	GeneratedAt   *time.Time `db:"generated_at"`
	SentAt        *time.Time `db:"sent_at"`
	ViewedAt      *time.Time `db:"viewed_at"`
	AuditFields
}
