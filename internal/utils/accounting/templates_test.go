package accounting_test

import (
	"testing"

	"github.com/nyumbani/property_ledger/internal/apperrors"
	"github.com/nyumbani/property_ledger/internal/core/domain"
	"github.com/nyumbani/property_ledger/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// netChange sums each line's signed effect on the given account for the
// given account type.
func netChange(t *testing.T, lines []domain.JournalLine, accountID domain.AccountID, accountType domain.AccountType) int64 {
	t.Helper()
	var total int64
	for _, line := range lines {
		if line.AccountID != accountID {
			continue
		}
		delta, err := accounting.SignedMinorUnits(line.Direction, line.Amount, accountType)
		require.NoError(t, err)
		total += delta
	}
	return total
}

func TestRentPayment(t *testing.T) {
	acc := accounting.RentPaymentAccounts{
		CustomerLiability: domain.NewAccountID(),
		PlatformHolding:   domain.NewAccountID(),
		PlatformRevenue:   domain.NewAccountID(),
	}

	t.Run("with fee split", func(t *testing.T) {
		// 10,000.00 KES rent with a 500.00 platform fee.
		lines, err := accounting.RentPayment(acc, kes(1000000), kes(50000), "MPESA-XK12")
		require.NoError(t, err)
		require.Len(t, lines, 4)
		require.NoError(t, accounting.ValidateJournalBalance(lines))

		assert.Equal(t, int64(950000), netChange(t, lines, acc.PlatformHolding, domain.PlatformHolding))
		assert.Equal(t, int64(50000), netChange(t, lines, acc.PlatformRevenue, domain.PlatformRevenue))
		assert.Equal(t, int64(-1000000), netChange(t, lines, acc.CustomerLiability, domain.CustomerLiability))

		for _, line := range lines {
			assert.Equal(t, "MPESA-XK12", line.Metadata["reference"])
		}
	})

	t.Run("zero fee omits the sweep", func(t *testing.T) {
		lines, err := accounting.RentPayment(acc, kes(1000000), kes(0), "ref")
		require.NoError(t, err)
		require.Len(t, lines, 2)
		require.NoError(t, accounting.ValidateJournalBalance(lines))
		assert.Equal(t, int64(1000000), netChange(t, lines, acc.PlatformHolding, domain.PlatformHolding))
	})

	t.Run("fee exceeding gross fails", func(t *testing.T) {
		_, err := accounting.RentPayment(acc, kes(100), kes(200), "ref")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("negative fee fails", func(t *testing.T) {
		_, err := accounting.RentPayment(acc, kes(100), kes(-10), "ref")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestRentChargeAndLateFee(t *testing.T) {
	acc := accounting.RentChargeAccounts{
		CustomerLiability: domain.NewAccountID(),
		OwnerOperating:    domain.NewAccountID(),
	}

	for _, template := range []struct {
		name  string
		build func(accounting.RentChargeAccounts, domain.Money, string) ([]domain.JournalLine, error)
	}{
		{name: "rent charge", build: accounting.RentCharge},
		{name: "late fee", build: accounting.LateFee},
	} {
		t.Run(template.name, func(t *testing.T) {
			lines, err := template.build(acc, kes(20000), "ref")
			require.NoError(t, err)
			require.Len(t, lines, 2)
			require.NoError(t, accounting.ValidateJournalBalance(lines))

			// The customer owes more, the owner is owed the same amount.
			assert.Equal(t, int64(20000), netChange(t, lines, acc.CustomerLiability, domain.CustomerLiability))
			assert.Equal(t, int64(20000), netChange(t, lines, acc.OwnerOperating, domain.OwnerOperating))

			_, err = template.build(acc, kes(0), "ref")
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestDepositTemplates(t *testing.T) {
	acc := accounting.DepositAccounts{
		CustomerDeposit: domain.NewAccountID(),
		PlatformHolding: domain.NewAccountID(),
	}

	payment, err := accounting.DepositPayment(acc, kes(50000), "DEP-1")
	require.NoError(t, err)
	require.NoError(t, accounting.ValidateJournalBalance(payment))
	assert.Equal(t, int64(50000), netChange(t, payment, acc.CustomerDeposit, domain.CustomerDeposit))
	assert.Equal(t, int64(50000), netChange(t, payment, acc.PlatformHolding, domain.PlatformHolding))

	refund, err := accounting.DepositRefund(acc, kes(50000), "DEP-1")
	require.NoError(t, err)
	require.NoError(t, accounting.ValidateJournalBalance(refund))
	assert.Equal(t, int64(-50000), netChange(t, refund, acc.CustomerDeposit, domain.CustomerDeposit))
	assert.Equal(t, int64(-50000), netChange(t, refund, acc.PlatformHolding, domain.PlatformHolding))
}

func TestOwnerTemplates(t *testing.T) {
	acc := accounting.OwnerAccounts{
		OwnerOperating:  domain.NewAccountID(),
		PlatformHolding: domain.NewAccountID(),
	}

	disbursement, err := accounting.OwnerDisbursement(acc, kes(70000), "EFT-9")
	require.NoError(t, err)
	require.NoError(t, accounting.ValidateJournalBalance(disbursement))
	assert.Equal(t, int64(-70000), netChange(t, disbursement, acc.OwnerOperating, domain.OwnerOperating))
	assert.Equal(t, int64(-70000), netChange(t, disbursement, acc.PlatformHolding, domain.PlatformHolding))

	contribution, err := accounting.OwnerContribution(acc, kes(70000), "EFT-10")
	require.NoError(t, err)
	require.NoError(t, accounting.ValidateJournalBalance(contribution))
	assert.Equal(t, int64(70000), netChange(t, contribution, acc.OwnerOperating, domain.OwnerOperating))
	assert.Equal(t, int64(70000), netChange(t, contribution, acc.PlatformHolding, domain.PlatformHolding))
}

func TestReversalLines(t *testing.T) {
	journalID := domain.NewJournalID()
	entries := []domain.LedgerEntry{
		{
			EntryID:     domain.NewEntryID(),
			AccountID:   domain.NewAccountID(),
			JournalID:   journalID,
			EntryType:   domain.EntryRentPayment,
			Direction:   domain.Debit,
			Amount:      kes(2000),
			Description: "Rent payment received",
		},
		{
			EntryID:     domain.NewEntryID(),
			AccountID:   domain.NewAccountID(),
			JournalID:   journalID,
			EntryType:   domain.EntryRentPayment,
			Direction:   domain.Credit,
			Amount:      kes(2000),
			Description: "Rent payment applied",
		},
	}

	lines, err := accounting.ReversalLines(entries)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.NoError(t, accounting.ValidateJournalBalance(lines))

	for i, line := range lines {
		assert.Equal(t, entries[i].AccountID, line.AccountID)
		assert.Equal(t, domain.EntryReversal, line.EntryType)
		assert.Equal(t, entries[i].Direction.Opposite(), line.Direction)
		assert.Equal(t, entries[i].Amount, line.Amount)
		assert.Equal(t, journalID.String(), line.Metadata["originalJournalID"])
		assert.Equal(t, entries[i].EntryID.String(), line.Metadata["originalEntryID"])
	}

	_, err = accounting.ReversalLines(nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
