package domain

// Currency represents a supported currency in the domain.
// Currencies are never hard-deleted, only deactivated.
type Currency struct {
	CurrencyCode   string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol         string `json:"symbol"`       // e.g., "$"
	Name           string `json:"name"`         // e.g., "US Dollar"
	IsBaseCurrency bool   `json:"isBaseCurrency"`
	IsActive       bool   `json:"isActive"`
	AuditFields
}
