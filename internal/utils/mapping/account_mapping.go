package mapping

import (
	"github.com/nyumbani/property_ledger/internal/core/domain"
	"github.com/nyumbani/property_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	m := models.Account{
		AccountID:    d.AccountID.String(),
		TenantID:     d.TenantID.String(),
		Name:         d.Name,
		AccountType:  models.AccountType(d.AccountType),
		Status:       models.AccountStatus(d.Status),
		FrozenReason: d.FrozenReason,
		CurrencyCode: d.CurrencyCode,
		BalanceMinor: d.BalanceMinor,
		LastEntryAt:  d.LastEntryAt,
		EntryCount:   d.EntryCount,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
	if d.LastEntryID != nil {
		id := d.LastEntryID.String()
		m.LastEntryID = &id
	}
	return m
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	d := domain.Account{
		AccountID:    domain.AccountID(m.AccountID),
		TenantID:     domain.TenantID(m.TenantID),
		Name:         m.Name,
		AccountType:  domain.AccountType(m.AccountType),
		Status:       domain.AccountStatus(m.Status),
		FrozenReason: m.FrozenReason,
		CurrencyCode: m.CurrencyCode,
		BalanceMinor: m.BalanceMinor,
		LastEntryAt:  m.LastEntryAt,
		EntryCount:   m.EntryCount,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	if m.LastEntryID != nil {
		id := domain.EntryID(*m.LastEntryID)
		d.LastEntryID = &id
	}
	return d
}

// ToDomainAccountSlice converts a slice of model Accounts to domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
