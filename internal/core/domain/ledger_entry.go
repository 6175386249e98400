package domain

import "time"

// EntryDirection indicates whether a ledger entry is a debit or a credit.
type EntryDirection string

const (
	Debit  EntryDirection = "DEBIT"
	Credit EntryDirection = "CREDIT"
)

// Opposite returns the reversing direction.
func (d EntryDirection) Opposite() EntryDirection {
	if d == Debit {
		return Credit
	}
	return Debit
}

// EntryType names the business event a ledger entry belongs to.
type EntryType string

const (
	EntryRentCharge        EntryType = "RENT_CHARGE"
	EntryRentPayment       EntryType = "RENT_PAYMENT"
	EntryPlatformFee       EntryType = "PLATFORM_FEE"
	EntryDepositPayment    EntryType = "DEPOSIT_PAYMENT"
	EntryDepositRefund     EntryType = "DEPOSIT_REFUND"
	EntryOwnerDisbursement EntryType = "OWNER_DISBURSEMENT"
	EntryOwnerContribution EntryType = "OWNER_CONTRIBUTION"
	EntryLateFee           EntryType = "LATE_FEE"
	EntryAdjustment        EntryType = "ADJUSTMENT"
	EntryReversal          EntryType = "REVERSAL"
)

// LedgerEntry is one immutable posting against one account. Entries are
// created once and never mutated or deleted; journalID groups the two or
// more entries that together balance.
type LedgerEntry struct {
	EntryID        EntryID           `json:"entryID"`
	TenantID       TenantID          `json:"tenantID"`
	AccountID      AccountID         `json:"accountID"`
	JournalID      JournalID         `json:"journalID"`
	EntryType      EntryType         `json:"entryType"`
	Direction      EntryDirection    `json:"direction"`
	Amount         Money             `json:"amount"`
	BalanceAfter   Money             `json:"balanceAfter"`
	SequenceNumber uint64            `json:"sequenceNumber"` // monotonic per account, starting at 1
	EffectiveDate  time.Time         `json:"effectiveDate"`
	PostedAt       time.Time         `json:"postedAt"`
	Description    string            `json:"description"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	CreatedBy      string            `json:"createdBy"`
}

// JournalLine is one proposed line of a journal before posting. The posting
// protocol turns accepted lines into immutable LedgerEntry records.
type JournalLine struct {
	AccountID   AccountID
	EntryType   EntryType
	Direction   EntryDirection
	Amount      Money
	Description string
	Metadata    map[string]string
}
