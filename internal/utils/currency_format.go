package utils

import (
	"github.com/nyumbani/property_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatMinorUnits renders an integer minor-unit amount as a major-unit
// decimal string using the currency's precision.
// Example: 1050099 with KES (precision 2) returns "10500.99"
// Example: 1050099 with JPY (precision 0) returns "1050099"
func FormatMinorUnits(amountMinor int64, currency domain.Currency) string {
	return decimal.New(amountMinor, -int32(currency.Precision)).StringFixed(int32(currency.Precision))
}

// FormatMoney renders a Money value with the given precision. Display only;
// ledger arithmetic never leaves integer minor units.
func FormatMoney(m domain.Money, precision int) string {
	return decimal.New(m.AmountMinor, -int32(precision)).StringFixed(int32(precision))
}
