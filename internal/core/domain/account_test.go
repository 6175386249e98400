package domain_test

import (
	"testing"
	"time"

	"github.com/nyumbani/property_ledger/internal/apperrors"
	"github.com/nyumbani/property_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActiveAccount() domain.Account {
	return domain.Account{
		AccountID:    domain.NewAccountID(),
		TenantID:     domain.NewTenantID(),
		Name:         "Unit 4B - Tenant Liability",
		AccountType:  domain.CustomerLiability,
		Status:       domain.AccountActive,
		CurrencyCode: "KES",
	}
}

func TestAccount_CanTransact(t *testing.T) {
	tests := []struct {
		name   string
		status domain.AccountStatus
		want   bool
	}{
		{name: "active account", status: domain.AccountActive, want: true},
		{name: "frozen account", status: domain.AccountFrozen, want: false},
		{name: "closed account", status: domain.AccountClosed, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := newActiveAccount()
			acc.Status = tt.status
			assert.Equal(t, tt.want, acc.CanTransact())
		})
	}
}

func TestAccount_FreezeUnfreeze(t *testing.T) {
	now := time.Now().UTC()
	acc := newActiveAccount()

	require.NoError(t, acc.Freeze("chargeback dispute", "user-1", now))
	assert.Equal(t, domain.AccountFrozen, acc.Status)
	assert.Equal(t, "chargeback dispute", acc.FrozenReason)

	// Freezing again just updates the reason.
	require.NoError(t, acc.Freeze("fraud review", "user-2", now))
	assert.Equal(t, "fraud review", acc.FrozenReason)

	require.NoError(t, acc.Unfreeze("user-1", now))
	assert.Equal(t, domain.AccountActive, acc.Status)
	assert.Empty(t, acc.FrozenReason)
}

func TestAccount_FreezeClosedFails(t *testing.T) {
	acc := newActiveAccount()
	acc.Status = domain.AccountClosed

	err := acc.Freeze("too late", "user-1", time.Now().UTC())
	assert.ErrorIs(t, err, apperrors.ErrStateConflict)
}

func TestAccount_UnfreezeActiveFails(t *testing.T) {
	acc := newActiveAccount()

	err := acc.Unfreeze("user-1", time.Now().UTC())
	assert.ErrorIs(t, err, apperrors.ErrStateConflict)
}

func TestAccount_Close(t *testing.T) {
	now := time.Now().UTC()

	t.Run("zero balance closes", func(t *testing.T) {
		acc := newActiveAccount()
		require.NoError(t, acc.Close("user-1", now))
		assert.Equal(t, domain.AccountClosed, acc.Status)
	})

	t.Run("nonzero balance fails", func(t *testing.T) {
		acc := newActiveAccount()
		acc.BalanceMinor = 150
		err := acc.Close("user-1", now)
		assert.ErrorIs(t, err, apperrors.ErrStateConflict)
		assert.Equal(t, domain.AccountActive, acc.Status)
	})

	t.Run("closed is terminal", func(t *testing.T) {
		acc := newActiveAccount()
		require.NoError(t, acc.Close("user-1", now))
		err := acc.Close("user-1", now)
		assert.ErrorIs(t, err, apperrors.ErrStateConflict)
	})
}

func TestAccount_ApplyEntry(t *testing.T) {
	now := time.Now().UTC()
	acc := newActiveAccount()
	entryID := domain.NewEntryID()

	require.NoError(t, acc.ApplyEntry(domain.Money{AmountMinor: 100000, Currency: "KES"}, entryID, now))
	assert.Equal(t, int64(100000), acc.BalanceMinor)
	assert.Equal(t, int64(1), acc.EntryCount)
	require.NotNil(t, acc.LastEntryID)
	assert.Equal(t, entryID, *acc.LastEntryID)
	require.NotNil(t, acc.LastEntryAt)
	assert.Equal(t, now, *acc.LastEntryAt)

	err := acc.ApplyEntry(domain.Money{AmountMinor: 50, Currency: "USD"}, domain.NewEntryID(), now)
	assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)
	assert.Equal(t, int64(1), acc.EntryCount)
}

func TestValidAccountType(t *testing.T) {
	for _, at := range []domain.AccountType{
		domain.CustomerLiability,
		domain.CustomerDeposit,
		domain.OwnerOperating,
		domain.OwnerReserve,
		domain.PlatformRevenue,
		domain.PlatformHolding,
	} {
		assert.True(t, domain.ValidAccountType(at), string(at))
	}
	assert.False(t, domain.ValidAccountType(domain.AccountType("SAVINGS")))
}
