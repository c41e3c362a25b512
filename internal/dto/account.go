package dto

import (
	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
)

// CreateAccountRequest defines the input for adding a chart-of-accounts
// account to a company.
type CreateAccountRequest struct {
	Name        string `json:"name" binding:"required"`
	AccountType string `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	Description string `json:"description"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string `json:"accountID"`
	CompanyID   string `json:"companyID"`
	Name        string `json:"name"`
	AccountType string `json:"accountType"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(a domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   a.AccountID,
		CompanyID:   a.CompanyID,
		Name:        a.Name,
		AccountType: string(a.AccountType),
		Description: a.Description,
		IsActive:    a.IsActive,
	}
}

// ToAccountResponses converts a slice of accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		responses[i] = ToAccountResponse(a)
	}
	return responses
}
