package accounting

import (
	"fmt"

	"github.com/nyumbani/property_ledger/internal/apperrors"
	"github.com/nyumbani/property_ledger/internal/core/domain"
)

// NormalSide is the direction that increases an account type's balance.
type NormalSide string

const (
	DebitNormal  NormalSide = "DEBIT"
	CreditNormal NormalSide = "CREDIT"
)

// normalSides pins down the increasing side for every account type.
//
// Within this client-money ledger the platform-side buckets are
// debit-normal: CUSTOMER_LIABILITY is a receivable, PLATFORM_HOLDING is the
// client-money float, and PLATFORM_REVENUE accumulates fees swept out of
// holding. Accounts representing funds owed to third parties (customer
// deposits, owner balances) are credit-normal.
var normalSides = map[domain.AccountType]NormalSide{
	domain.CustomerLiability: DebitNormal,
	domain.PlatformHolding:   DebitNormal,
	domain.PlatformRevenue:   DebitNormal,
	domain.CustomerDeposit:   CreditNormal,
	domain.OwnerOperating:    CreditNormal,
	domain.OwnerReserve:      CreditNormal,
}

// NormalBalanceSide returns the increasing direction for an account type.
func NormalBalanceSide(accountType domain.AccountType) (NormalSide, error) {
	side, ok := normalSides[accountType]
	if !ok {
		return "", fmt.Errorf("unknown account type %q", accountType)
	}
	return side, nil
}

// SignedMinorUnits converts a line amount into a balance delta for the given
// account type: a line on the account's normal side increases the balance,
// the opposite side decreases it.
func SignedMinorUnits(direction domain.EntryDirection, amount domain.Money, accountType domain.AccountType) (int64, error) {
	side, err := NormalBalanceSide(accountType)
	if err != nil {
		return 0, err
	}
	if (side == DebitNormal) == (direction == domain.Debit) {
		return amount.AmountMinor, nil
	}
	return -amount.AmountMinor, nil
}

// ValidateJournalBalance checks the fundamental double-entry invariant: for
// every currency present among the lines, the sum of debit amounts equals
// the sum of credit amounts. It also rejects journals with fewer than two
// lines or non-positive amounts. Nothing is mutated on failure.
func ValidateJournalBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: journal must have at least two lines", apperrors.ErrValidation)
	}

	type sums struct {
		debits  int64
		credits int64
	}
	byCurrency := make(map[string]*sums)

	for i, line := range lines {
		if !line.Amount.IsPositive() {
			return fmt.Errorf("%w: line %d amount must be positive, got %s", apperrors.ErrValidation, i, line.Amount)
		}
		s, ok := byCurrency[line.Amount.Currency]
		if !ok {
			s = &sums{}
			byCurrency[line.Amount.Currency] = s
		}
		switch line.Direction {
		case domain.Debit:
			s.debits += line.Amount.AmountMinor
		case domain.Credit:
			s.credits += line.Amount.AmountMinor
		default:
			return fmt.Errorf("%w: line %d has unknown direction %q", apperrors.ErrValidation, i, line.Direction)
		}
	}

	for currency, s := range byCurrency {
		if s.debits != s.credits {
			return fmt.Errorf("%w: journal does not balance for %s: debits %d, credits %d",
				apperrors.ErrValidation, currency, s.debits, s.credits)
		}
	}
	return nil
}
