package models

import "time"

// EntryDirection mirrors domain.EntryDirection for DB storage.
type EntryDirection string

// LedgerEntry is the DB shape of one immutable posting. Rows are inserted
// once and never updated or deleted.
type LedgerEntry struct {
	EntryID           string         `db:"entry_id"`
	TenantID          string         `db:"tenant_id"`
	AccountID         string         `db:"account_id"`
	JournalID         string         `db:"journal_id"`
	EntryType         string         `db:"entry_type"`
	Direction         EntryDirection `db:"direction"`
	AmountMinor       int64          `db:"amount_minor_units"`
	CurrencyCode      string         `db:"currency_code"`
	BalanceAfterMinor int64          `db:"balance_after_minor_units"`
	SequenceNumber    uint64         `db:"sequence_number"`
	EffectiveDate     time.Time      `db:"effective_date"`
	PostedAt          time.Time      `db:"posted_at"`
	Description       string         `db:"description"`
	Metadata          []byte         `db:"metadata"` // JSONB
	CreatedBy         string         `db:"created_by"`
}
