package mapping

import (
	"encoding/json"

	"github.com/nyumbani/property_ledger/internal/core/domain"
	"github.com/nyumbani/property_ledger/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry.
func ToModelLedgerEntry(d domain.LedgerEntry) (models.LedgerEntry, error) {
	var metadata []byte
	if len(d.Metadata) > 0 {
		var err error
		metadata, err = json.Marshal(d.Metadata)
		if err != nil {
			return models.LedgerEntry{}, err
		}
	}
	return models.LedgerEntry{
		EntryID:           d.EntryID.String(),
		TenantID:          d.TenantID.String(),
		AccountID:         d.AccountID.String(),
		JournalID:         d.JournalID.String(),
		EntryType:         string(d.EntryType),
		Direction:         models.EntryDirection(d.Direction),
		AmountMinor:       d.Amount.AmountMinor,
		CurrencyCode:      d.Amount.Currency,
		BalanceAfterMinor: d.BalanceAfter.AmountMinor,
		SequenceNumber:    d.SequenceNumber,
		EffectiveDate:     d.EffectiveDate,
		PostedAt:          d.PostedAt,
		Description:       d.Description,
		Metadata:          metadata,
		CreatedBy:         d.CreatedBy,
	}, nil
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry.
func ToDomainLedgerEntry(m models.LedgerEntry) (domain.LedgerEntry, error) {
	var metadata map[string]string
	if len(m.Metadata) > 0 {
		if err := json.Unmarshal(m.Metadata, &metadata); err != nil {
			return domain.LedgerEntry{}, err
		}
	}
	return domain.LedgerEntry{
		EntryID:        domain.EntryID(m.EntryID),
		TenantID:       domain.TenantID(m.TenantID),
		AccountID:      domain.AccountID(m.AccountID),
		JournalID:      domain.JournalID(m.JournalID),
		EntryType:      domain.EntryType(m.EntryType),
		Direction:      domain.EntryDirection(m.Direction),
		Amount:         domain.Money{AmountMinor: m.AmountMinor, Currency: m.CurrencyCode},
		BalanceAfter:   domain.Money{AmountMinor: m.BalanceAfterMinor, Currency: m.CurrencyCode},
		SequenceNumber: m.SequenceNumber,
		EffectiveDate:  m.EffectiveDate,
		PostedAt:       m.PostedAt,
		Description:    m.Description,
		Metadata:       metadata,
		CreatedBy:      m.CreatedBy,
	}, nil
}

// ToDomainLedgerEntrySlice converts model entries to domain entries.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) ([]domain.LedgerEntry, error) {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		d, err := ToDomainLedgerEntry(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
