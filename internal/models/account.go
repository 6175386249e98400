package models

import "time"

// AccountType mirrors domain.AccountType for DB storage.
type AccountType string

// AccountStatus mirrors domain.AccountStatus for DB storage.
type AccountStatus string

// Account is the DB shape of a ledger account.
type Account struct {
	AccountID    string        `db:"account_id"`
	TenantID     string        `db:"tenant_id"`
	Name         string        `db:"name"`
	AccountType  AccountType   `db:"account_type"`
	Status       AccountStatus `db:"status"`
	FrozenReason string        `db:"frozen_reason"`
	CurrencyCode string        `db:"currency_code"`
	BalanceMinor int64         `db:"balance_minor_units"`
	LastEntryID  *string       `db:"last_entry_id"`
	LastEntryAt  *time.Time    `db:"last_entry_at"`
	EntryCount   int64         `db:"entry_count"`
	AuditFields
}
