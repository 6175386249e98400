package domain_test

import (
	"testing"

	"github.com/nyumbani/property_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMinorUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		currency string
		wantErr  bool
	}{
		{name: "valid KES amount", amount: 100000, currency: "KES", wantErr: false},
		{name: "zero amount", amount: 0, currency: "USD", wantErr: false},
		{name: "negative amount", amount: -500, currency: "USD", wantErr: false},
		{name: "lowercase currency", amount: 100, currency: "kes", wantErr: true},
		{name: "too short currency", amount: 100, currency: "KE", wantErr: true},
		{name: "too long currency", amount: 100, currency: "KESH", wantErr: true},
		{name: "empty currency", amount: 100, currency: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := domain.FromMinorUnits(tt.amount, tt.currency)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.amount, m.AmountMinor)
			assert.Equal(t, tt.currency, m.Currency)
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	a := domain.Money{AmountMinor: 1000, Currency: "KES"}
	b := domain.Money{AmountMinor: 300, Currency: "KES"}

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int64(1300), sum.AmountMinor)

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, int64(700), diff.AmountMinor)

	greater, err := a.IsGreaterThan(b)
	require.NoError(t, err)
	assert.True(t, greater)

	assert.Equal(t, int64(-1000), a.Neg().AmountMinor)
	assert.True(t, a.Equals(domain.Money{AmountMinor: 1000, Currency: "KES"}))
	assert.False(t, a.Equals(domain.Money{AmountMinor: 1000, Currency: "USD"}))
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	kes := domain.Money{AmountMinor: 1000, Currency: "KES"}
	usd := domain.Money{AmountMinor: 1000, Currency: "USD"}

	_, err := kes.Add(usd)
	assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)

	_, err = kes.Subtract(usd)
	assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)

	_, err = kes.IsGreaterThan(usd)
	assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)
}

func TestMoney_Predicates(t *testing.T) {
	assert.True(t, domain.Money{AmountMinor: 0, Currency: "KES"}.IsZero())
	assert.True(t, domain.Money{AmountMinor: -1, Currency: "KES"}.IsNegative())
	assert.True(t, domain.Money{AmountMinor: 1, Currency: "KES"}.IsPositive())
	assert.False(t, domain.Money{AmountMinor: -1, Currency: "KES"}.IsPositive())
}
