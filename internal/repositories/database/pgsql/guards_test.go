package pgsql

import (
	"strings"
	"testing"

	"github.com/nyumbani/property_ledger/internal/apperrors"
	"github.com/nyumbani/property_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestVerifyAccountsPostable(t *testing.T) {
	active := domain.Account{AccountID: domain.NewAccountID(), Status: domain.AccountActive}
	frozen := domain.Account{AccountID: domain.NewAccountID(), Status: domain.AccountFrozen}
	closed := domain.Account{AccountID: domain.NewAccountID(), Status: domain.AccountClosed}

	testCases := []struct {
		name     string
		accounts map[domain.AccountID]domain.Account
		wantErr  bool
	}{
		{
			name: "all active",
			accounts: map[domain.AccountID]domain.Account{
				active.AccountID: active,
			},
			wantErr: false,
		},
		{
			name: "one frozen",
			accounts: map[domain.AccountID]domain.Account{
				active.AccountID: active,
				frozen.AccountID: frozen,
			},
			wantErr: true,
		},
		{
			name: "one closed",
			accounts: map[domain.AccountID]domain.Account{
				active.AccountID: active,
				closed.AccountID: closed,
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := verifyAccountsPostable(tc.accounts)
			if tc.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrStateConflict)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAccountStatusUpdateQuery(t *testing.T) {
	closeQuery := accountStatusUpdateQuery(domain.AccountClosed)
	assert.Contains(t, closeQuery, "status <> 'CLOSED'")
	assert.Contains(t, closeQuery, "balance_minor_units = 0")

	freezeQuery := accountStatusUpdateQuery(domain.AccountFrozen)
	assert.Contains(t, freezeQuery, "status <> 'CLOSED'")
	assert.False(t, strings.Contains(freezeQuery, "balance_minor_units"))

	activeQuery := accountStatusUpdateQuery(domain.AccountActive)
	assert.Contains(t, activeQuery, "status <> 'CLOSED'")
	assert.False(t, strings.Contains(activeQuery, "balance_minor_units"))
}
