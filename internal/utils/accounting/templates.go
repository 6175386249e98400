package accounting

import (
	"fmt"

	"github.com/nyumbani/property_ledger/internal/apperrors"
	"github.com/nyumbani/property_ledger/internal/core/domain"
)

// Journal templates are pure builders producing pre-balanced line sets for
// the standard business events. The posting protocol re-validates the
// balance invariant regardless of which path produced the lines.

// RentChargeAccounts names the accounts a rent charge touches.
type RentChargeAccounts struct {
	CustomerLiability domain.AccountID
	OwnerOperating    domain.AccountID
}

// RentCharge records rent falling due: the customer owes more, the owner is
// owed the same amount.
func RentCharge(acc RentChargeAccounts, amount domain.Money, reference string) ([]domain.JournalLine, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: rent charge amount must be positive", apperrors.ErrValidation)
	}
	meta := map[string]string{"reference": reference}
	return []domain.JournalLine{
		{AccountID: acc.CustomerLiability, EntryType: domain.EntryRentCharge, Direction: domain.Debit, Amount: amount, Description: "Rent charge", Metadata: meta},
		{AccountID: acc.OwnerOperating, EntryType: domain.EntryRentCharge, Direction: domain.Credit, Amount: amount, Description: "Rent charge accrual", Metadata: meta},
	}, nil
}

// RentPaymentAccounts names the accounts a rent payment with fee split touches.
type RentPaymentAccounts struct {
	CustomerLiability domain.AccountID
	PlatformHolding   domain.AccountID
	PlatformRevenue   domain.AccountID
}

// RentPayment records a rent collection with the platform-fee split: the
// gross amount lands in holding and settles the customer's liability, then
// the fee is swept out of holding into platform revenue. Four lines; the
// holding account nets gross minus fee.
func RentPayment(acc RentPaymentAccounts, gross, fee domain.Money, reference string) ([]domain.JournalLine, error) {
	if !gross.IsPositive() {
		return nil, fmt.Errorf("%w: gross amount must be positive", apperrors.ErrValidation)
	}
	if fee.IsNegative() {
		return nil, fmt.Errorf("%w: fee must not be negative", apperrors.ErrValidation)
	}
	if greater, err := fee.IsGreaterThan(gross); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	} else if greater {
		return nil, fmt.Errorf("%w: fee %s exceeds gross %s", apperrors.ErrValidation, fee, gross)
	}
	meta := map[string]string{"reference": reference}
	lines := []domain.JournalLine{
		{AccountID: acc.PlatformHolding, EntryType: domain.EntryRentPayment, Direction: domain.Debit, Amount: gross, Description: "Rent payment received", Metadata: meta},
		{AccountID: acc.CustomerLiability, EntryType: domain.EntryRentPayment, Direction: domain.Credit, Amount: gross, Description: "Rent payment applied", Metadata: meta},
	}
	if fee.IsPositive() {
		lines = append(lines,
			domain.JournalLine{AccountID: acc.PlatformRevenue, EntryType: domain.EntryPlatformFee, Direction: domain.Debit, Amount: fee, Description: "Platform fee earned", Metadata: meta},
			domain.JournalLine{AccountID: acc.PlatformHolding, EntryType: domain.EntryPlatformFee, Direction: domain.Credit, Amount: fee, Description: "Platform fee swept", Metadata: meta},
		)
	}
	return lines, nil
}

// DepositAccounts names the accounts a security-deposit movement touches.
type DepositAccounts struct {
	CustomerDeposit domain.AccountID
	PlatformHolding domain.AccountID
}

// DepositPayment records a security deposit received into holding.
func DepositPayment(acc DepositAccounts, amount domain.Money, reference string) ([]domain.JournalLine, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: deposit amount must be positive", apperrors.ErrValidation)
	}
	meta := map[string]string{"reference": reference}
	return []domain.JournalLine{
		{AccountID: acc.PlatformHolding, EntryType: domain.EntryDepositPayment, Direction: domain.Debit, Amount: amount, Description: "Security deposit received", Metadata: meta},
		{AccountID: acc.CustomerDeposit, EntryType: domain.EntryDepositPayment, Direction: domain.Credit, Amount: amount, Description: "Security deposit held", Metadata: meta},
	}, nil
}

// DepositRefund returns a held security deposit to the customer.
func DepositRefund(acc DepositAccounts, amount domain.Money, reference string) ([]domain.JournalLine, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: refund amount must be positive", apperrors.ErrValidation)
	}
	meta := map[string]string{"reference": reference}
	return []domain.JournalLine{
		{AccountID: acc.CustomerDeposit, EntryType: domain.EntryDepositRefund, Direction: domain.Debit, Amount: amount, Description: "Security deposit released", Metadata: meta},
		{AccountID: acc.PlatformHolding, EntryType: domain.EntryDepositRefund, Direction: domain.Credit, Amount: amount, Description: "Security deposit refunded", Metadata: meta},
	}, nil
}

// OwnerAccounts names the accounts an owner funds movement touches.
type OwnerAccounts struct {
	OwnerOperating  domain.AccountID
	PlatformHolding domain.AccountID
}

// OwnerDisbursement pays accumulated funds out of holding to the owner.
func OwnerDisbursement(acc OwnerAccounts, amount domain.Money, reference string) ([]domain.JournalLine, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: disbursement amount must be positive", apperrors.ErrValidation)
	}
	meta := map[string]string{"reference": reference}
	return []domain.JournalLine{
		{AccountID: acc.OwnerOperating, EntryType: domain.EntryOwnerDisbursement, Direction: domain.Debit, Amount: amount, Description: "Owner disbursement", Metadata: meta},
		{AccountID: acc.PlatformHolding, EntryType: domain.EntryOwnerDisbursement, Direction: domain.Credit, Amount: amount, Description: "Owner disbursement paid out", Metadata: meta},
	}, nil
}

// OwnerContribution records an owner topping up their operating balance.
func OwnerContribution(acc OwnerAccounts, amount domain.Money, reference string) ([]domain.JournalLine, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: contribution amount must be positive", apperrors.ErrValidation)
	}
	meta := map[string]string{"reference": reference}
	return []domain.JournalLine{
		{AccountID: acc.PlatformHolding, EntryType: domain.EntryOwnerContribution, Direction: domain.Debit, Amount: amount, Description: "Owner contribution received", Metadata: meta},
		{AccountID: acc.OwnerOperating, EntryType: domain.EntryOwnerContribution, Direction: domain.Credit, Amount: amount, Description: "Owner contribution", Metadata: meta},
	}, nil
}

// LateFee charges the customer a late fee accruing to the owner. The
// platform's cut, if any, is taken at collection time via the rent-payment
// fee split.
func LateFee(acc RentChargeAccounts, amount domain.Money, reference string) ([]domain.JournalLine, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: late fee amount must be positive", apperrors.ErrValidation)
	}
	meta := map[string]string{"reference": reference}
	return []domain.JournalLine{
		{AccountID: acc.CustomerLiability, EntryType: domain.EntryLateFee, Direction: domain.Debit, Amount: amount, Description: "Late fee", Metadata: meta},
		{AccountID: acc.OwnerOperating, EntryType: domain.EntryLateFee, Direction: domain.Credit, Amount: amount, Description: "Late fee accrual", Metadata: meta},
	}, nil
}

// ReversalLines flips every entry of a posted journal into an opposing line
// set, linking back to the original journal. History stays append-only;
// corrections are new postings.
func ReversalLines(entries []domain.LedgerEntry) ([]domain.JournalLine, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: nothing to reverse", apperrors.ErrValidation)
	}
	lines := make([]domain.JournalLine, len(entries))
	for i, e := range entries {
		lines[i] = domain.JournalLine{
			AccountID:   e.AccountID,
			EntryType:   domain.EntryReversal,
			Direction:   e.Direction.Opposite(),
			Amount:      e.Amount,
			Description: "Reversal of: " + e.Description,
			Metadata: map[string]string{
				"originalJournalID": e.JournalID.String(),
				"originalEntryID":   e.EntryID.String(),
			},
		}
	}
	return lines, nil
}
