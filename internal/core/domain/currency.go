package domain

// Currency represents a supported currency. Precision is the number of
// minor-unit digits (2 for KES/USD, 0 for JPY) and drives display
// formatting only; ledger arithmetic always stays in minor units.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary key (e.g., "KES")
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Precision    int    `json:"precision"`
	AuditFields
}
