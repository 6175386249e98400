package domain_test

import (
	"testing"
	"time"

	"github.com/nyumbani/property_ledger/internal/apperrors"
	"github.com/nyumbani/property_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder(openingMinor int64) *domain.StatementBuilder {
	return domain.NewStatementBuilder(
		domain.NewTenantID(),
		domain.NewAccountID(),
		domain.CustomerStatement,
		"KES",
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		domain.Money{AmountMinor: openingMinor, Currency: "KES"},
	)
}

func TestStatementBuilder_RunningBalance(t *testing.T) {
	now := time.Now().UTC()
	b := newTestBuilder(100000)

	date := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, b.AddLineItem(date, domain.EntryRentCharge, "Rent charge", 20000, 0))
	require.NoError(t, b.AddLineItem(date.AddDate(0, 0, 5), domain.EntryRentPayment, "Rent payment applied", 0, 5000))

	stmt, err := b.Build("user-1", now)
	require.NoError(t, err)

	// Opening 1,000.00 plus a 200.00 debit, minus a 50.00 credit.
	assert.Equal(t, int64(100000), stmt.OpeningMinor)
	assert.Equal(t, int64(20000), stmt.TotalDebits)
	assert.Equal(t, int64(5000), stmt.TotalCredits)
	assert.Equal(t, int64(15000), stmt.NetChange)
	assert.Equal(t, int64(115000), stmt.ClosingMinor)

	require.Len(t, stmt.Lines, 2)
	assert.Equal(t, int64(120000), stmt.Lines[0].BalanceMinor)
	assert.Equal(t, int64(115000), stmt.Lines[1].BalanceMinor)

	require.Len(t, stmt.Summaries, 2)
	assert.Equal(t, domain.EntryRentCharge, stmt.Summaries[0].EntryType)
	assert.Equal(t, int64(20000), stmt.Summaries[0].DebitMinor)
	assert.Equal(t, 1, stmt.Summaries[0].LineCount)

	assert.Equal(t, domain.StatementDraft, stmt.Status)
}

func TestStatementBuilder_Guards(t *testing.T) {
	now := time.Now().UTC()
	b := newTestBuilder(0)

	err := b.AddLineItem(now, domain.EntryRentCharge, "negative", -1, 0)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = b.Build("user-1", now)
	require.NoError(t, err)

	// Builder is single-use once built.
	err = b.AddLineItem(now, domain.EntryRentCharge, "after build", 100, 0)
	assert.ErrorIs(t, err, apperrors.ErrStateConflict)
	_, err = b.Build("user-1", now)
	assert.ErrorIs(t, err, apperrors.ErrStateConflict)
}

func TestStatement_StatusTransitions(t *testing.T) {
	now := time.Now().UTC()

	buildStatement := func(t *testing.T) *domain.Statement {
		stmt, err := newTestBuilder(0).Build("user-1", now)
		require.NoError(t, err)
		return stmt
	}

	t.Run("forward path", func(t *testing.T) {
		stmt := buildStatement(t)
		require.NoError(t, stmt.MarkGenerated("user-1", now))
		assert.Equal(t, domain.StatementGenerated, stmt.Status)
		assert.NotNil(t, stmt.GeneratedAt)

		require.NoError(t, stmt.MarkSent("user-1", now))
		assert.Equal(t, domain.StatementSent, stmt.Status)
		assert.NotNil(t, stmt.SentAt)

		require.NoError(t, stmt.MarkViewed("user-2", now))
		assert.Equal(t, domain.StatementViewed, stmt.Status)
		assert.NotNil(t, stmt.ViewedAt)
	})

	t.Run("mark viewed is idempotent", func(t *testing.T) {
		stmt := buildStatement(t)
		require.NoError(t, stmt.MarkGenerated("user-1", now))
		require.NoError(t, stmt.MarkSent("user-1", now))
		require.NoError(t, stmt.MarkViewed("user-2", now))
		firstViewed := stmt.ViewedAt

		require.NoError(t, stmt.MarkViewed("user-2", now.Add(time.Hour)))
		assert.Equal(t, firstViewed, stmt.ViewedAt)
	})

	t.Run("no skipping states", func(t *testing.T) {
		stmt := buildStatement(t)
		assert.ErrorIs(t, stmt.MarkSent("user-1", now), apperrors.ErrStateConflict)
		assert.ErrorIs(t, stmt.MarkViewed("user-1", now), apperrors.ErrStateConflict)

		require.NoError(t, stmt.MarkGenerated("user-1", now))
		assert.ErrorIs(t, stmt.MarkGenerated("user-1", now), apperrors.ErrStateConflict)
	})
}
