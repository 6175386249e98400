package domain

import (
	"fmt"
	"time"

	"github.com/nyumbani/property_ledger/internal/apperrors"
)

// AccountType identifies the party/purpose an account represents. One
// account exists per party/purpose/currency combination within a tenant.
type AccountType string

const (
	CustomerLiability AccountType = "CUSTOMER_LIABILITY"
	CustomerDeposit   AccountType = "CUSTOMER_DEPOSIT"
	OwnerOperating    AccountType = "OWNER_OPERATING"
	OwnerReserve      AccountType = "OWNER_RESERVE"
	PlatformRevenue   AccountType = "PLATFORM_REVENUE"
	PlatformHolding   AccountType = "PLATFORM_HOLDING"
)

// ValidAccountType reports whether t is a known account type.
func ValidAccountType(t AccountType) bool {
	switch t {
	case CustomerLiability, CustomerDeposit, OwnerOperating, OwnerReserve, PlatformRevenue, PlatformHolding:
		return true
	}
	return false
}

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountActive AccountStatus = "ACTIVE"
	AccountFrozen AccountStatus = "FROZEN"
	AccountClosed AccountStatus = "CLOSED"
)

// Account is a ledger account holding a denormalized running balance. The
// balance is the sole mutable projection of the account's immutable entry
// history and is kept in lockstep with it by the posting protocol.
type Account struct {
	AccountID    AccountID     `json:"accountID"`
	TenantID     TenantID      `json:"tenantID"`
	Name         string        `json:"name"`
	AccountType  AccountType   `json:"accountType"`
	Status       AccountStatus `json:"status"`
	FrozenReason string        `json:"frozenReason,omitempty"`
	CurrencyCode string        `json:"currencyCode"`
	BalanceMinor int64         `json:"balanceMinorUnits"`
	LastEntryID  *EntryID      `json:"lastEntryID,omitempty"`
	LastEntryAt  *time.Time    `json:"lastEntryAt,omitempty"`
	EntryCount   int64         `json:"entryCount"`
	AuditFields
}

// Balance returns the running balance as a Money value.
func (a *Account) Balance() Money {
	return Money{AmountMinor: a.BalanceMinor, Currency: a.CurrencyCode}
}

// CanTransact reports whether the account may participate in a journal.
// Only ACTIVE accounts are transactable; the posting protocol checks this
// for every account touched before applying any mutation.
func (a *Account) CanTransact() bool {
	return a.Status == AccountActive
}

// Freeze blocks transactions on the account and records the reason.
// Fails on CLOSED accounts; freezing a frozen account just updates the reason.
func (a *Account) Freeze(reason string, userID string, now time.Time) error {
	if a.Status == AccountClosed {
		return fmt.Errorf("%w: cannot freeze closed account %s", apperrors.ErrStateConflict, a.AccountID)
	}
	a.Status = AccountFrozen
	a.FrozenReason = reason
	a.LastUpdatedAt = now
	a.LastUpdatedBy = userID
	return nil
}

// Unfreeze returns a FROZEN account to ACTIVE.
func (a *Account) Unfreeze(userID string, now time.Time) error {
	if a.Status != AccountFrozen {
		return fmt.Errorf("%w: account %s is %s, expected FROZEN", apperrors.ErrStateConflict, a.AccountID, a.Status)
	}
	a.Status = AccountActive
	a.FrozenReason = ""
	a.LastUpdatedAt = now
	a.LastUpdatedBy = userID
	return nil
}

// Close terminates the account. Only zero-balance accounts may close;
// CLOSED is terminal.
func (a *Account) Close(userID string, now time.Time) error {
	if a.Status == AccountClosed {
		return fmt.Errorf("%w: account %s is already closed", apperrors.ErrStateConflict, a.AccountID)
	}
	if a.BalanceMinor != 0 {
		return fmt.Errorf("%w: account %s has nonzero balance %d", apperrors.ErrStateConflict, a.AccountID, a.BalanceMinor)
	}
	a.Status = AccountClosed
	a.LastUpdatedAt = now
	a.LastUpdatedBy = userID
	return nil
}

// ApplyEntry records the effect of one posted entry: it sets the new
// balance, increments the entry count and tracks the latest entry. Invoked
// only by the posting protocol after the journal has been validated.
func (a *Account) ApplyEntry(newBalance Money, entryID EntryID, postedAt time.Time) error {
	if newBalance.Currency != a.CurrencyCode {
		return fmt.Errorf("%w: balance %s against account currency %s", ErrCurrencyMismatch, newBalance.Currency, a.CurrencyCode)
	}
	a.BalanceMinor = newBalance.AmountMinor
	a.EntryCount++
	a.LastEntryID = &entryID
	a.LastEntryAt = &postedAt
	return nil
}
