package dto

import (
	"fmt"
	"time"

	"github.com/nyumbani/property_ledger/internal/apperrors"
	"github.com/nyumbani/property_ledger/internal/core/domain"
)

// JournalLineRequest is one proposed line of a journal to post.
type JournalLineRequest struct {
	AccountID        string            `json:"accountID" binding:"required,uuid"`
	EntryType        string            `json:"entryType" binding:"required,oneof=RENT_CHARGE RENT_PAYMENT PLATFORM_FEE DEPOSIT_PAYMENT DEPOSIT_REFUND OWNER_DISBURSEMENT OWNER_CONTRIBUTION LATE_FEE ADJUSTMENT REVERSAL"`
	Direction        string            `json:"direction" binding:"required,oneof=DEBIT CREDIT"`
	AmountMinorUnits int64             `json:"amountMinorUnits" binding:"required,gt=0"`
	CurrencyCode     string            `json:"currencyCode" binding:"required,currencycode"`
	Description      string            `json:"description"`
	Metadata         map[string]string `json:"metadata"`
}

// CreateJournalRequest defines the data needed to post a journal.
type CreateJournalRequest struct {
	EffectiveDate time.Time            `json:"effectiveDate" binding:"required"`
	Lines         []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ToJournalLines converts the request lines to domain journal lines,
// parsing and validating the embedded account IDs.
func (r *CreateJournalRequest) ToJournalLines() ([]domain.JournalLine, error) {
	lines := make([]domain.JournalLine, len(r.Lines))
	for i, l := range r.Lines {
		accountID, err := domain.ParseAccountID(l.AccountID)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", apperrors.ErrValidation, i, err)
		}
		amount, err := domain.FromMinorUnits(l.AmountMinorUnits, l.CurrencyCode)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", apperrors.ErrValidation, i, err)
		}
		lines[i] = domain.JournalLine{
			AccountID:   accountID,
			EntryType:   domain.EntryType(l.EntryType),
			Direction:   domain.EntryDirection(l.Direction),
			Amount:      amount,
			Description: l.Description,
			Metadata:    l.Metadata,
		}
	}
	return lines, nil
}

// RentChargeRequest posts a rent charge via the standard template.
type RentChargeRequest struct {
	CustomerLiabilityAccountID string    `json:"customerLiabilityAccountID" binding:"required,uuid"`
	OwnerOperatingAccountID    string    `json:"ownerOperatingAccountID" binding:"required,uuid"`
	AmountMinorUnits           int64     `json:"amountMinorUnits" binding:"required,gt=0"`
	CurrencyCode               string    `json:"currencyCode" binding:"required,currencycode"`
	EffectiveDate              time.Time `json:"effectiveDate" binding:"required"`
	Reference                  string    `json:"reference" binding:"required"`
}

// RentPaymentRequest posts a rent collection with the platform fee split.
type RentPaymentRequest struct {
	CustomerLiabilityAccountID string    `json:"customerLiabilityAccountID" binding:"required,uuid"`
	PlatformHoldingAccountID   string    `json:"platformHoldingAccountID" binding:"required,uuid"`
	PlatformRevenueAccountID   string    `json:"platformRevenueAccountID" binding:"required,uuid"`
	GrossMinorUnits            int64     `json:"grossMinorUnits" binding:"required,gt=0"`
	FeeMinorUnits              int64     `json:"feeMinorUnits" binding:"min=0"`
	CurrencyCode               string    `json:"currencyCode" binding:"required,currencycode"`
	EffectiveDate              time.Time `json:"effectiveDate" binding:"required"`
	Reference                  string    `json:"reference" binding:"required"`
}

// DepositRequest posts a security deposit payment or refund.
type DepositRequest struct {
	CustomerDepositAccountID string    `json:"customerDepositAccountID" binding:"required,uuid"`
	PlatformHoldingAccountID string    `json:"platformHoldingAccountID" binding:"required,uuid"`
	AmountMinorUnits         int64     `json:"amountMinorUnits" binding:"required,gt=0"`
	CurrencyCode             string    `json:"currencyCode" binding:"required,currencycode"`
	EffectiveDate            time.Time `json:"effectiveDate" binding:"required"`
	Reference                string    `json:"reference" binding:"required"`
}

// OwnerTransferRequest posts an owner disbursement or contribution.
type OwnerTransferRequest struct {
	OwnerOperatingAccountID  string    `json:"ownerOperatingAccountID" binding:"required,uuid"`
	PlatformHoldingAccountID string    `json:"platformHoldingAccountID" binding:"required,uuid"`
	AmountMinorUnits         int64     `json:"amountMinorUnits" binding:"required,gt=0"`
	CurrencyCode             string    `json:"currencyCode" binding:"required,currencycode"`
	EffectiveDate            time.Time `json:"effectiveDate" binding:"required"`
	Reference                string    `json:"reference" binding:"required"`
}

// LateFeeRequest posts a late fee via the standard template.
type LateFeeRequest struct {
	CustomerLiabilityAccountID string    `json:"customerLiabilityAccountID" binding:"required,uuid"`
	OwnerOperatingAccountID    string    `json:"ownerOperatingAccountID" binding:"required,uuid"`
	AmountMinorUnits           int64     `json:"amountMinorUnits" binding:"required,gt=0"`
	CurrencyCode               string    `json:"currencyCode" binding:"required,currencycode"`
	EffectiveDate              time.Time `json:"effectiveDate" binding:"required"`
	Reference                  string    `json:"reference" binding:"required"`
}

// EntryResponse defines the data returned for a posted ledger entry.
type EntryResponse struct {
	EntryID                string            `json:"entryID"`
	AccountID              string            `json:"accountID"`
	JournalID              string            `json:"journalID"`
	EntryType              string            `json:"entryType"`
	Direction              string            `json:"direction"`
	AmountMinorUnits       int64             `json:"amountMinorUnits"`
	CurrencyCode           string            `json:"currencyCode"`
	BalanceAfterMinorUnits int64             `json:"balanceAfterMinorUnits"`
	SequenceNumber         uint64            `json:"sequenceNumber"`
	EffectiveDate          time.Time         `json:"effectiveDate"`
	PostedAt               time.Time         `json:"postedAt"`
	Description            string            `json:"description"`
	Metadata               map[string]string `json:"metadata,omitempty"`
	CreatedBy              string            `json:"createdBy"`
}

// ToEntryResponse converts a domain.LedgerEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		EntryID:                e.EntryID.String(),
		AccountID:              e.AccountID.String(),
		JournalID:              e.JournalID.String(),
		EntryType:              string(e.EntryType),
		Direction:              string(e.Direction),
		AmountMinorUnits:       e.Amount.AmountMinor,
		CurrencyCode:           e.Amount.Currency,
		BalanceAfterMinorUnits: e.BalanceAfter.AmountMinor,
		SequenceNumber:         e.SequenceNumber,
		EffectiveDate:          e.EffectiveDate,
		PostedAt:               e.PostedAt,
		Description:            e.Description,
		Metadata:               e.Metadata,
		CreatedBy:              e.CreatedBy,
	}
}

// ToEntryResponses converts a slice of domain.LedgerEntry to []EntryResponse.
func ToEntryResponses(entries []domain.LedgerEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToEntryResponse(&e)
	}
	return responses
}

// JournalResponse defines the combined response for a posted journal.
type JournalResponse struct {
	JournalID string          `json:"journalID"`
	Entries   []EntryResponse `json:"entries"`
}

// ToJournalResponse builds a JournalResponse from posted entries. All
// entries of one journal share the journal ID.
func ToJournalResponse(entries []domain.LedgerEntry) JournalResponse {
	resp := JournalResponse{Entries: ToEntryResponses(entries)}
	if len(entries) > 0 {
		resp.JournalID = entries[0].JournalID.String()
	}
	return resp
}

// ListEntriesParams defines query parameters for listing account entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of entries with the next page token.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}
