package dto

import (
	"time"

	"github.com/nyumbani/property_ledger/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name         string             `json:"name" binding:"required"`
	AccountType  domain.AccountType `json:"accountType" binding:"required,oneof=CUSTOMER_LIABILITY CUSTOMER_DEPOSIT OWNER_OPERATING OWNER_RESERVE PLATFORM_REVENUE PLATFORM_HOLDING"`
	CurrencyCode string             `json:"currencyCode" binding:"required,currencycode"`
}

// FreezeAccountRequest carries the reason an account is being frozen.
type FreezeAccountRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID         string               `json:"accountID"`
	TenantID          string               `json:"tenantID"`
	Name              string               `json:"name"`
	AccountType       domain.AccountType   `json:"accountType"`
	Status            domain.AccountStatus `json:"status"`
	FrozenReason      string               `json:"frozenReason,omitempty"`
	CurrencyCode      string               `json:"currencyCode"`
	BalanceMinorUnits int64                `json:"balanceMinorUnits"`
	LastEntryID       *string              `json:"lastEntryID,omitempty"`
	LastEntryAt       *time.Time           `json:"lastEntryAt,omitempty"`
	EntryCount        int64                `json:"entryCount"`
	CreatedAt         time.Time            `json:"createdAt"`
	CreatedBy         string               `json:"createdBy"`
	LastUpdatedAt     time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy     string               `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	resp := AccountResponse{
		AccountID:         acc.AccountID.String(),
		TenantID:          acc.TenantID.String(),
		Name:              acc.Name,
		AccountType:       acc.AccountType,
		Status:            acc.Status,
		FrozenReason:      acc.FrozenReason,
		CurrencyCode:      acc.CurrencyCode,
		BalanceMinorUnits: acc.BalanceMinor,
		LastEntryAt:       acc.LastEntryAt,
		EntryCount:        acc.EntryCount,
		CreatedAt:         acc.CreatedAt,
		CreatedBy:         acc.CreatedBy,
		LastUpdatedAt:     acc.LastUpdatedAt,
		LastUpdatedBy:     acc.LastUpdatedBy,
	}
	if acc.LastEntryID != nil {
		id := acc.LastEntryID.String()
		resp.LastEntryID = &id
	}
	return resp
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
